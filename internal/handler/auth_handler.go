package handler

import (
	"net/http"

	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/service"
	"smart-life-organizer/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Token handles the OAuth2 password grant: a form-encoded username and
// password in, a fresh access token and a refresh token out.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid form body", "", http.StatusBadRequest))
		return
	}

	payload := model.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := payload.Validate(); err != nil {
		writeError(w, service.ValidationError(err))
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RefreshRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, service.ValidationError(err))
		return
	}

	tokens, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}
