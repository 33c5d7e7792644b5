package ranger

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
)

const maintRetryAfter = 600

// MaintModeHandler responds to every request with http.StatusServiceUnavailable,
// asking clients to retry in ten minutes.
//
// If the template tmpl/maintenance.tmpl can be found with p, it is rendered as the body.
func MaintModeHandler(p template.Parser, l logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", strconv.Itoa(maintRetryAfter))

		tmpl, err := p.Parse(maintTmpl)
		if err != nil {
			l.Debug("no maintenance template", &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		b := new(bytes.Buffer)
		if err := tmpl.Execute(b, nil); err != nil {
			l.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = b.WriteTo(w)
	}
}
