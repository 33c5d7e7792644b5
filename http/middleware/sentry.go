package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/wayfinder"
)

// ReportPanic recovers panics raised while serving a request and reports them to Sentry.
//
// In development, NoopAdapter returns so panics surface in the terminal.
func ReportPanic(env wayfinder.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler { return sh.Handle(h) }
}
