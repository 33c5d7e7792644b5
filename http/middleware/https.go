package middleware

import (
	"net/http"

	"github.com/xy-planning-network/wayfinder"
)

// ForceHTTPS permanently redirects plain HTTP requests to HTTPS in deployed environments.
//
// Behind a proxy, the "X-Forwarded-Proto" header says which scheme the visitor used.
func ForceHTTPS(env wayfinder.Environment) Adapter {
	if !env.IsDeployed() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" {
				h.ServeHTTP(w, r)
				return
			}

			target := *r.URL
			target.Scheme = "https"
			target.Host = r.Host
			http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
		})
	}
}
