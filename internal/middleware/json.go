package middleware

import (
	"encoding/json"
	"net/http"

	"smart-life-organizer/internal/model"
)

func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: &model.APIError{Code: code, Message: message},
	})
}
