package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors wraps handler with the CORS policy of the api server.
func Cors(allowedOrigins []string, handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
		},
	}).Handler(handler)
}
