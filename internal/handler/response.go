package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/service"
	"smart-life-organizer/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrAuthentication) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Incorrect username or password"
	} else if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrSubjectNotFound) || errors.Is(err, model.ErrUnauthenticated) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Could not validate credentials"
	} else if errors.Is(err, model.ErrStaleCredential) {
		status = http.StatusForbidden
		body.Code = "FRESH_TOKEN_REQUIRED"
		body.Message = "Fresh login required"
	} else if errors.Is(err, model.ErrSelfDelete) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "You can't delete yourself"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Not enough permissions"
	} else if errors.Is(err, model.ErrPasswordMismatch) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Passwords don't match"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrSettingsNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Settings not found"
	} else if errors.Is(err, model.ErrContentNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Content not found"
	} else if errors.Is(err, model.ErrUserAlreadyExists) {
		status = http.StatusUnprocessableEntity
		body.Code = "ALREADY_EXISTS"
		body.Message = "Username already exists"
	} else if errors.Is(err, model.ErrUserHasContent) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "User still owns content"
	} else if errors.Is(err, model.ErrSlugConflict) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "Slug already in use"
	} else if errors.Is(err, model.ErrUnknownField) {
		status = http.StatusUnprocessableEntity
		body.Code = "UNKNOWN_FIELD"
		body.Message = "Unknown field in request body"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, model.ErrorResponse{Error: body})
}

// decodeJSON reads a single JSON object into dst. Fields dst does not
// declare are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		return apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest)
	case errors.As(err, &maxBytesErr):
		return apierror.New("PAYLOAD_TOO_LARGE", "request body too large", "", http.StatusRequestEntityTooLarge)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		unknown := apierror.Wrap(model.ErrUnknownField, "UNKNOWN_FIELD", "Unknown field in request body", http.StatusUnprocessableEntity)
		unknown.Details = strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return unknown
	default:
		return service.ValidationError(err)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, service.ValidationError(fmt.Errorf("%s: must be an integer", name))
	}
	return id, nil
}
