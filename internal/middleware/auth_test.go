package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-life-organizer/internal/authz"
	"smart-life-organizer/internal/model"
)

type stubAuthenticator map[string]model.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (model.Principal, error) {
	p, ok := s[token]
	if !ok {
		return model.Principal{}, model.ErrTokenExpired
	}
	return p, nil
}

func newTestAuth() *AuthMiddleware {
	return NewAuthMiddleware(stubAuthenticator{
		"alice-fresh": {User: model.User{ID: 1, Username: "alice", IsActive: true}, Fresh: true},
		"alice-stale": {User: model.User{ID: 1, Username: "alice", IsActive: true}},
		"root":        {User: model.User{ID: 3, Username: "root", IsActive: true, Superuser: true}, Fresh: true},
	})
}

func echoPrincipal(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(p.User.Username))
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	handler := newTestAuth().RequireAuth(http.HandlerFunc(echoPrincipal))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic alice-fresh", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer expired", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer alice-fresh", status: http.StatusOK, body: "alice"},
		{name: "scheme is case insensitive", header: "bearer alice-stale", status: http.StatusOK, body: "alice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

				var body model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
				return
			}
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}

func TestRequirePolicy(t *testing.T) {
	t.Parallel()

	auth := newTestAuth()

	tests := []struct {
		name   string
		policy authz.Policy
		token  string
		status int
		code   string
	}{
		{name: "fresh with fresh token", policy: authz.Fresh, token: "alice-fresh", status: http.StatusOK},
		{name: "fresh with refreshed token", policy: authz.Fresh, token: "alice-stale", status: http.StatusForbidden, code: "FRESH_TOKEN_REQUIRED"},
		{name: "admin as user", policy: authz.Admin, token: "alice-fresh", status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "admin as admin", policy: authz.Admin, token: "root", status: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := auth.RequireAuth(auth.Require(tc.policy)(http.HandlerFunc(echoPrincipal)))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				var body model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.code, body.Error.Code)
			}
		})
	}
}

func TestRequireWithoutPrincipal(t *testing.T) {
	t.Parallel()

	handler := newTestAuth().Require(authz.Admin)(http.HandlerFunc(echoPrincipal))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
