package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the configured origins. An empty list allows any origin without credentials.
func CORS(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "X-Cache"},
		MaxAge:         600,
	}
	if len(origins) > 0 {
		opts.AllowCredentials = true
	}

	return cors.New(opts).Handler
}
