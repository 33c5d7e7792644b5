package resp

import (
	"net/url"

	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
)

// A ResponderOptFn configures a Responder as NewResponder builds it.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message error pages and GenericErr show in place of session.DefaultErrMsg.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(doer *Responder) { doer.contact = msg }
}

// WithErrTemplate sets the template rendered on its own when a page cannot be.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(doer *Responder) { doer.tmpl.err = fp }
}

// WithLayoutTemplate sets the template Layout wraps pages in.
func WithLayoutTemplate(fp string) ResponderOptFn {
	return func(doer *Responder) { doer.tmpl.layout = fp }
}

func WithLogger(log logger.Logger) ResponderOptFn {
	return func(doer *Responder) { doer.log = log }
}

// WithNotFoundTemplate sets the template NotFound renders within the layout.
func WithNotFoundTemplate(fp string) ResponderOptFn {
	return func(doer *Responder) { doer.tmpl.notFound = fp }
}

func WithParser(p template.Parser) ResponderOptFn {
	return func(doer *Responder) { doer.parser = p }
}

// WithRootUrl sets the URL ToRoot redirects to and the rootUrl template function returns.
// If u is not an absolute URL, http://localhost stands in.
func WithRootUrl(u string) ResponderOptFn {
	root, err := url.ParseRequestURI(u)
	if err != nil || root.Host == "" {
		root = &url.URL{Scheme: "http", Host: "localhost"}
	}

	return func(doer *Responder) { doer.root = root }
}

// WithTitle sets the title pages render with unless Title sets another.
func WithTitle(title string) ResponderOptFn {
	return func(doer *Responder) { doer.title = title }
}
