package middleware

import "net/http"

// An Adapter wraps an http.Handler in behavior common to many routes.
type Adapter func(http.Handler) http.Handler

// Chain wraps handler in adapters so the first adapter sees a request first.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := range adapters {
		handler = adapters[len(adapters)-1-i](handler)
	}

	return handler
}

// NoopAdapter returns the http.Handler it is given.
func NoopAdapter(h http.Handler) http.Handler { return h }
