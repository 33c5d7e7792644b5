package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	jsonContentType = "application/json; charset=UTF-8"

	// frames between a Responder's log call and the handler calling the Responder.
	responderFrames = 1
)

// A Responder writes HTML pages, JSON and redirects in response to HTTP requests.
// An app builds one and shares it across its handlers;
// each response is shaped by the Fn options a handler passes along.
type Responder struct {
	bufs    *sync.Pool
	contact string
	log     logger.Logger
	parser  template.Parser
	root    *url.URL
	title   string

	tmpl struct {
		// err renders on its own when nothing else can.
		err string

		// layout wraps every page.
		layout string

		// notFound renders within layout when nothing matches a request.
		notFound string
	}
}

// NewResponder constructs a *Responder configured by opts.
// Without WithLogger, it logs through a logger.ColorLogger.
func NewResponder(opts ...ResponderOptFn) *Responder {
	doer := &Responder{bufs: &sync.Pool{New: func() any { return new(bytes.Buffer) }}}
	for _, opt := range opts {
		opt(doer)
	}

	if doer.log == nil {
		doer.log = logger.New()
	}

	if sl, ok := doer.log.(logger.SkipLogger); ok {
		doer.log = sl.AddSkip(responderFrames)
	}

	if doer.parser != nil {
		doer.parser.AddFn(template.Nonce())
		doer.parser.AddFn(template.RootUrl(doer.root))
	}

	return doer
}

// A page is what every HTML template renders with.
type page struct {
	Data      any
	Flashes   []session.Flash
	Path      string
	RequestID string
	Title     string
}

func (doer *Responder) newPage(r *http.Request, data any, title string) page {
	p := page{Data: data, Path: r.URL.Path, Title: doer.title}
	if title != "" {
		p.Title = title
	}

	if id, ok := r.Context().Value(wayfinder.RequestIDKey).(string); ok {
		p.RequestID = id
	}

	return p
}

// Err logs err and responds with it in plain text via http.Error,
// for when neither a page nor a redirect can be formed.
// The status code is http.StatusInternalServerError unless Code in opts sets another.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	res, optErr := doer.build(w, r, append(opts, Err(err))...)
	if optErr != nil {
		err = fmt.Errorf("%w: %s", err, optErr)
	}

	code := http.StatusInternalServerError
	if res != nil && res.code != 0 {
		code = res.code
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}

	http.Error(w, msg, code)
}

// Html renders the templates Layout, NotFound and Tmpls collect, executing the first of them,
// with the data Data sets, the title Title sets and the flashes waiting in the session.
//
// Whatever goes wrong renders the error template instead.
func (doer *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	res, err := doer.build(w, r, opts...)
	switch {
	case err != nil:
		return doer.renderErr(w, r, err)
	case doer.parser == nil:
		return doer.renderErr(w, r, fmt.Errorf("%w: no parser configured", ErrBadConfig))
	case len(res.tmpls) == 0:
		return doer.renderErr(w, r, fmt.Errorf("%w: no templates to render", ErrMissingData))
	}

	tmpl, err := doer.parser.Parse(res.tmpls...)
	if err != nil {
		return doer.renderErr(w, r, fmt.Errorf("cannot parse: %w", err))
	}

	p := doer.newPage(r, res.data, res.title)
	switch s, err := doer.Session(r.Context()); {
	case err == nil:
		p.Flashes = s.Flashes(w, r)
	case !errors.Is(err, ErrNotFound):
		return doer.renderErr(w, r, fmt.Errorf("can't retrieve session: %w", err))
	}

	b, release := doer.buffer()
	defer release()

	if err := tmpl.ExecuteTemplate(b, path.Base(res.tmpls[0]), p); err != nil {
		return doer.renderErr(w, r, err)
	}

	return write(w, res.code, htmlContentType, b)
}

// Json responds with the value Data sets, under a "data" key:
//
//	{"data": {"path": "/files", "name": "Files", "title": "Files"}}
//
// The status code is http.StatusOK unless Code sets another.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	res, err := doer.build(w, r, opts...)
	if err != nil {
		return err
	}

	b, release := doer.buffer()
	defer release()

	body := struct {
		Data any `json:"data,omitempty"`
	}{res.data}
	if err := json.NewEncoder(b).Encode(body); err != nil {
		doer.Err(w, r, err)
		return err
	}

	code := res.code
	if code == 0 {
		code = http.StatusOK
	}

	return write(w, code, jsonContentType, b)
}

// Redirect sends the client to the URL Url sets, or else to the root URL.
//
// The status code is http.StatusFound unless Code sets a 3xx.
// Codes in the 4xx range become http.StatusSeeOther, the 5xx range http.StatusTemporaryRedirect.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	res, err := doer.build(w, r, opts...)
	if err != nil {
		return err
	}

	if res.url == nil {
		_ = ToRoot()(*doer, res)
	}

	if res.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	http.Redirect(w, r, res.url.String(), redirectCode(res.code))
	return nil
}

func redirectCode(code int) int {
	switch {
	case code >= http.StatusMultipleChoices && code <= http.StatusPermanentRedirect:
		return code
	case code >= http.StatusInternalServerError:
		return http.StatusTemporaryRedirect
	case code >= http.StatusBadRequest:
		return http.StatusSeeOther
	default:
		return http.StatusFound
	}
}

// Session returns the session.Session middleware.InjectSession stashed in ctx.
//
// Without one, ErrNotFound returns. Something else stashed there returns ErrInvalid.
func (doer Responder) Session(ctx context.Context) (session.Session, error) {
	switch s := ctx.Value(wayfinder.SessionKey).(type) {
	case nil:
		return session.Session{}, fmt.Errorf("%w: no session found with %s", ErrNotFound, wayfinder.SessionKey)
	case session.Session:
		return s, nil
	default:
		return session.Session{}, fmt.Errorf("%w: is not session.Session, is %T", ErrInvalid, s)
	}
}

// build applies opts to a new *Response.
//
// An Fn may depend on what another sets, like Param on Url,
// so failing options are retried as long as each pass lets at least one more succeed.
// Those still failing return their errors joined.
func (doer *Responder) build(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	res := &Response{w: w, r: r}
	for pending := opts; len(pending) > 0; {
		if err := r.Context().Err(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDone, err)
		}

		var failed []Fn
		var errs []error
		for _, opt := range pending {
			if err := opt(*doer, res); err != nil {
				failed = append(failed, opt)
				errs = append(errs, err)
			}
		}

		if len(failed) == len(pending) {
			return res, errors.Join(errs...)
		}

		pending = failed
	}

	return res, nil
}

// renderErr logs err and renders the error template with a message to contact us,
// falling back on plain text if that cannot happen.
func (doer *Responder) renderErr(w http.ResponseWriter, r *http.Request, err error) error {
	doer.log.Error(err.Error(), &logger.LogContext{Error: err, Request: r})

	fail := func(cause error) error {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("%w: %s", cause, err)
	}

	if doer.tmpl.err == "" || doer.parser == nil {
		return fail(fmt.Errorf("%w: no error template provided, encountered while handling", ErrBadConfig))
	}

	tmpl, pErr := doer.parser.Parse(doer.tmpl.err)
	if pErr != nil {
		return fail(pErr)
	}

	b, release := doer.buffer()
	defer release()

	if xErr := tmpl.Execute(b, doer.newPage(r, map[string]any{"Contact": doer.contactMsg()}, "")); xErr != nil {
		return fail(xErr)
	}

	return write(w, http.StatusInternalServerError, htmlContentType, b)
}

func (doer *Responder) contactMsg() string {
	if doer.contact != "" {
		return doer.contact
	}

	return session.DefaultErrMsg
}

// buffer borrows an empty buffer; release returns it.
func (doer *Responder) buffer() (b *bytes.Buffer, release func()) {
	b = doer.bufs.Get().(*bytes.Buffer)
	b.Reset()
	return b, func() { doer.bufs.Put(b) }
}

// write sends b with contentType and, unless it is zero, code.
func write(w http.ResponseWriter, code int, contentType string, b *bytes.Buffer) error {
	w.Header().Set("Content-Type", contentType)
	if code != 0 {
		w.WriteHeader(code)
	}

	_, err := b.WriteTo(w)
	return err
}
