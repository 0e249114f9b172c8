package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-life-organizer/internal/middleware"
	"smart-life-organizer/internal/model"
	"smart-life-organizer/internal/service"
)

type ContentHandler struct {
	service *service.ContentService
}

func NewContentHandler(service *service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateContentRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	content, err := h.service.Create(r.Context(), caller, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, content)
}

func (h *ContentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	contentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.ContentPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	content, err := h.service.Patch(r.Context(), caller, contentID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	contentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, _ := middleware.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), caller, contentID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}
