package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-life-organizer/internal/model"
	"smart-life-organizer/pkg/apierror"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "authentication", err: model.ErrAuthentication, status: http.StatusUnauthorized, code: "UNAUTHORIZED", message: "Incorrect username or password"},
		{name: "expired token", err: fmt.Errorf("wrap: %w", model.ErrTokenExpired), status: http.StatusUnauthorized, code: "UNAUTHORIZED", message: "Could not validate credentials"},
		{name: "stale credential", err: model.ErrStaleCredential, status: http.StatusForbidden, code: "FRESH_TOKEN_REQUIRED"},
		{name: "forbidden", err: model.ErrForbidden, status: http.StatusForbidden, code: "FORBIDDEN", message: "Not enough permissions"},
		{name: "self delete", err: model.ErrSelfDelete, status: http.StatusForbidden, code: "FORBIDDEN", message: "You can't delete yourself"},
		{name: "password mismatch", err: model.ErrPasswordMismatch, status: http.StatusBadRequest, code: "BAD_REQUEST", message: "Passwords don't match"},
		{name: "user not found", err: model.ErrUserNotFound, status: http.StatusNotFound, code: "NOT_FOUND", message: "User not found"},
		{name: "content not found", err: model.ErrContentNotFound, status: http.StatusNotFound, code: "NOT_FOUND", message: "Content not found"},
		{name: "user has content", err: model.ErrUserHasContent, status: http.StatusConflict, code: "CONFLICT"},
		{name: "api error wins", err: apierror.Wrap(model.ErrForbidden, "FORBIDDEN", "You can't update this user password", http.StatusForbidden), status: http.StatusForbidden, code: "FORBIDDEN", message: "You can't update this user password"},
		{name: "unknown", err: errors.New("disk on fire"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR", message: "Unexpected server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Error.Message)
			}
			assert.NotContains(t, rec.Body.String(), "disk on fire")

			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "valid", body: `{"title":"x"}`},
		{name: "empty body", body: ``, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "malformed", body: `{"title":`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "unknown field", body: `{"title":"x","user_id":7}`, status: http.StatusUnprocessableEntity, code: "UNKNOWN_FIELD"},
		{name: "wrong type", body: `{"title":5}`, status: http.StatusUnprocessableEntity, code: "VALIDATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPatch, "/content/1", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			var patch model.ContentPatch
			err := decodeJSON(rec, req, &patch)
			if tc.status == 0 {
				require.NoError(t, err)
				require.NotNil(t, patch.Title)
				assert.Equal(t, "x", *patch.Title)
				return
			}

			var apiErr *apierror.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.HTTPStatus)
			assert.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestDecodeJSON_UnknownFieldNamesTheField(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPatch, "/user/1/settings", strings.NewReader(`{"user_id":2}`))
	var patch model.SettingsPatch
	err := decodeJSON(httptest.NewRecorder(), req, &patch)

	require.ErrorIs(t, err, model.ErrUnknownField)
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "user_id", apiErr.Details)
}
