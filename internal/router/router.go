package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"smart-life-organizer/internal/authz"
	"smart-life-organizer/internal/config"
	"smart-life-organizer/internal/handler"
	"smart-life-organizer/internal/middleware"
)

type Handlers struct {
	Root    *handler.RootHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Content *handler.ContentHandler
}

// New wires the HTTP surface. Path parameters named id accept a numeric id;
// the read-only lookups also accept a username or a slug.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.CORS(middleware.CORSOptions{
		Origins:          cfg.CORSOrigins,
		Methods:          cfg.CORSAllowMethods,
		Headers:          cfg.CORSAllowHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", h.Root.Welcome)
	r.Get("/health", h.Root.Health)

	r.Post("/token", h.Auth.Token)
	r.Post("/refresh_token", h.Auth.Refresh)

	requireAdmin := authMiddleware.Require(authz.Admin)
	requireFresh := authMiddleware.Require(authz.Fresh)

	r.Route("/user", func(user chi.Router) {
		user.Use(authMiddleware.RequireAuth)

		user.With(requireAdmin).Get("/", h.User.List)
		user.With(requireAdmin).Post("/", h.User.Create)
		user.Get("/{id}", h.User.Get)
		user.With(requireAdmin).Delete("/{id}", h.User.Delete)
		user.With(requireFresh).Patch("/{id}/password", h.User.ChangePassword)
		user.Get("/{id}/settings", h.User.Settings)
		user.Patch("/{id}/settings", h.User.PatchSettings)
	})

	r.Route("/content", func(content chi.Router) {
		content.Get("/", h.Content.List)
		content.Get("/{id}", h.Content.Get)
		content.With(authMiddleware.RequireAuth).Post("/", h.Content.Create)
		content.With(authMiddleware.RequireAuth).Patch("/{id}", h.Content.Patch)
		content.With(authMiddleware.RequireAuth).Delete("/{id}", h.Content.Delete)
	})

	return r
}
