/*
Package middleware defines an Adapter wrapping an http.Handler
and the adapters every wayfinder request passes through.

ranger chains them in this order:

	middleware.Chain(h,
		middleware.RequestID(),
		middleware.ReportPanic(env),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ForceHTTPS(env),
		middleware.RateLimit(middleware.NewVisitors()),
		metrics.Middleware(),
		middleware.InjectSession(store, log),
	)

The JSON API adds CORS on top.
*/
package middleware
