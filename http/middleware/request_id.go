package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/wayfinder"
)

// RequestIDHeader carries a request's ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestID stashes an ID for the request in its context under wayfinder.RequestIDKey
// and echoes it in the RequestIDHeader of the response.
//
// A UUID the client or a proxy already set in RequestIDHeader is kept;
// otherwise a new one is generated.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), wayfinder.RequestIDKey, id.String())))
		})
	}
}
