package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-life-organizer/internal/middleware"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateUserRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.PasswordPatchRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	user, err := h.service.ChangePassword(r.Context(), caller, userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), caller, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

func (h *UserHandler) Settings(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	settings, err := h.service.Settings(r.Context(), caller, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *UserHandler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	settings, err := h.service.PatchSettings(r.Context(), caller, userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
