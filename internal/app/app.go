package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-life-organizer/internal/config"
	"smart-life-organizer/internal/database"
	"smart-life-organizer/internal/handler"
	"smart-life-organizer/internal/middleware"
	"smart-life-organizer/internal/repository"
	"smart-life-organizer/internal/router"
	"smart-life-organizer/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	contentRepo := repository.NewContentRepository(db)
	slog.Info("database ready")

	logger := slog.Default()
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(cfg, userRepo, hasher, time.Now, logger)
	userService := service.NewUserService(userRepo, settingsRepo, hasher, cfg.DefaultPhoneRegion, logger)
	contentService := service.NewContentService(contentRepo, logger)

	if cfg.SeedAdminEnabled() {
		created, err := userService.SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
		if created {
			slog.Info("seeded initial superuser", "username", cfg.SeedAdminUsername)
		}
	}

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Root:    handler.NewRootHandler(db),
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Content: handler.NewContentHandler(contentService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
