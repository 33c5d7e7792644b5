package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/logger"
)

// maskedParams never appear in request logs.
var maskedParams = []string{"password", "token"}

// LogRequest logs each request once served: the visitor's IP address, the method and the URI,
// with the request ID, response status and duration in the log context.
//
// Query params like "password" are masked.
// With a nil logger.Logger, NoopAdapter returns.
func LogRequest(l logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			data := map[string]any{"duration": m.Duration.String(), "status": m.Code}
			if id, ok := r.Context().Value(wayfinder.RequestIDKey).(string); ok {
				data["request_id"] = id
			}

			l.Info(requestLine(r), &logger.LogContext{Caller: "middleware.LogRequest", Data: data})
		})
	}
}

// requestLine formats r like "8.8.8.8 GET /result?id=7".
func requestLine(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	wayfinder.Mask(q, maskedParams...)
	if enc := q.Encode(); enc != "" {
		uri += "?" + enc
	}

	line := r.Method + " " + uri
	if ip, ok := r.Context().Value(wayfinder.IpAddrKey).(string); ok && ip != "" {
		line = ip + " " + line
	}

	return line
}
