package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"smart-life-organizer/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout answers 503 with the usual error envelope once a request runs
// past timeout. The handler's own writes after that point are discarded.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.ErrorResponse{
		Error: &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
