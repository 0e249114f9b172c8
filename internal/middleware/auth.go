package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"smart-life-organizer/internal/authz"
	"smart-life-organizer/internal/model"
)

type authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Principal, error)
}

type contextKey string

const principalContextKey contextKey = "principal"

type AuthMiddleware struct {
	auth authenticator
}

func NewAuthMiddleware(auth authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth resolves the bearer access token and stores the caller in the
// request context. Every failure is answered with the same 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, model.ErrUnauthenticated)
			return
		}

		principal, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			slog.Debug("access token rejected", "error", err, "path", r.URL.Path)
			writeAuthError(w, model.ErrUnauthenticated)
			return
		}

		setLogUser(r.Context(), principal.User.Username)
		ctx := context.WithValue(r.Context(), principalContextKey, &principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require applies a caller-only policy, such as authz.Fresh or authz.Admin,
// after RequireAuth has run.
func (m *AuthMiddleware) Require(policy authz.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())
			if d := policy(principal); !d.Allowed() {
				writeAuthError(w, d.Err())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying p, as RequireAuth would.
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, reason error) {
	switch {
	case errors.Is(reason, model.ErrStaleCredential):
		writeError(w, http.StatusForbidden, "FRESH_TOKEN_REQUIRED", "Fresh login required")
	case errors.Is(reason, model.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not enough permissions")
	default:
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Could not validate credentials")
	}
}
