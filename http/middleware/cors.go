package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS lets pages served from origin call the JSON API.
// Routes using it must handle http.MethodOptions for preflight requests.
//
// With an empty origin, NoopAdapter returns.
func CORS(origin string) Adapter {
	if origin == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
