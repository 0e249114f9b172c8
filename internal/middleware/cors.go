package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

type CORSOptions struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}

func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	origins := opts.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	methods := opts.Methods
	if len(methods) == 0 || slices.Contains(methods, "*") {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	}

	headers := opts.Headers
	if len(headers) == 0 {
		headers = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-ID", "WWW-Authenticate"},
		MaxAge:           3600,
		AllowCredentials: opts.AllowCredentials,
	})

	return handler.Handler
}
