package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/logger"
)

// InjectSession puts the visitor's session.Session in the request context under wayfinder.SessionKey.
//
// A cookie the store cannot decode, as after rotating session keys, is logged
// and the visitor starts over with an empty session.
// A nil store injects nothing.
func InjectSession(store session.SessionStorer, log logger.Logger) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil && log != nil {
				log.Warn("starting new session", &logger.LogContext{Error: err, Request: r})
			}

			ctx := context.WithValue(r.Context(), wayfinder.SessionKey, s)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
