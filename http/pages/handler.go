package pages

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	html "html/template"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/xy-planning-network/wayfinder/http/req"
	"github.com/xy-planning-network/wayfinder/http/resp"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/nav"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTitle is the document title before any navigation sets one.
const DefaultTitle = "wayfinder"

// A Handler serves navigations between the routes of a nav.Table.
type Handler struct {
	afters       []nav.AfterHook
	guards       []nav.Guard
	guardTimeout time.Duration
	log          logger.Logger
	parser       *req.Parser
	rp           *resp.Responder
	table        *nav.Table
	title        string
	tracer       trace.Tracer
}

// An Option configures a *Handler.
type Option func(*Handler)

// WithAfterHooks registers hooks on every nav.Router a *Handler navigates with.
func WithAfterHooks(hooks ...nav.AfterHook) Option {
	return func(h *Handler) {
		h.afters = append(h.afters, hooks...)
	}
}

// WithGuards registers guards on every nav.Router a *Handler navigates with,
// after the title guard.
func WithGuards(guards ...nav.Guard) Option {
	return func(h *Handler) {
		h.guards = append(h.guards, guards...)
	}
}

// WithGuardTimeout sets how long a navigation waits on each guard.
func WithGuardTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.guardTimeout = d
	}
}

// WithLogger sets the logger.Logger a *Handler and its routers log through.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// WithTitle sets the document title before any navigation sets one.
func WithTitle(title string) Option {
	return func(h *Handler) {
		h.title = title
	}
}

// WithTracer sets the trace.Tracer spanning every navigation.
func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = t
	}
}

// NewHandler constructs a *Handler navigating the routes of table
// and responding through rp.
func NewHandler(table *nav.Table, rp *resp.Responder, opts ...Option) *Handler {
	h := &Handler{
		guardTimeout: nav.DefaultGuardTimeout,
		parser:       req.NewParser(),
		rp:           rp,
		table:        table,
		title:        DefaultTitle,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.log == nil {
		h.log = logger.New()
	}

	return h
}

// Table returns the routes h navigates between.
func (h *Handler) Table() *nav.Table { return h.table }

// Router constructs the nav.Router navigating on behalf of a single request.
// The router's history starts at from, unless it is empty.
func (h *Handler) Router(doc nav.Document, from string) (*nav.Router, error) {
	opts := []nav.Option{
		nav.WithDocument(doc),
		nav.WithGuards(h.guards...),
		nav.WithGuardTimeout(h.guardTimeout),
		nav.WithHistory(nav.NewMemoryHistory(from)),
		nav.WithLogger(h.log),
	}
	if h.tracer != nil {
		opts = append(opts, nav.WithTracer(h.tracer))
	}

	r, err := nav.New(h.table, opts...)
	if err != nil {
		return nil, err
	}

	for _, hook := range h.afters {
		r.AfterEach(hook)
	}

	return r, nil
}

// ServeHTTP navigates to the requested URI and renders the view it commits to.
//
// When guards redirect the navigation elsewhere, ServeHTTP redirects the client there.
// Failed navigations render the not found page or the error page
// with the status code matching the failure.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, sErr := h.rp.Session(r.Context())

	var from string
	if sErr == nil {
		if loc, err := s.LastLocation(); err == nil {
			from = loc
		}
	}

	doc := nav.NewMemoryDocument(h.title)
	router, err := h.Router(doc, from)
	if err != nil {
		h.rp.Err(w, r, err)
		return
	}

	requested := r.URL.RequestURI()
	navigation, err := router.Push(r.Context(), requested)
	if err != nil {
		h.handleNavErr(w, r, doc, requested, err)
		return
	}

	if navigation.Redirected && !sameTarget(navigation.To, r.URL) {
		if err := h.rp.Redirect(w, r, resp.Url(navigation.To.String()), resp.Code(http.StatusFound)); err != nil {
			h.rp.Err(w, r, err)
		}
		return
	}

	b := new(bytes.Buffer)
	data := ViewData{To: navigation.To, From: navigation.From}
	if err := navigation.View.Render(b, data); err != nil {
		h.html(w, r,
			resp.Err(fmt.Errorf("cannot render %s: %w", navigation.To.Name(), err)),
			resp.Tmpls(ErrTmpl),
			resp.Contact(""),
		)
		return
	}

	if sErr == nil {
		if err := s.SetLastLocation(w, r, navigation.To.String()); err != nil {
			h.log.Warn("cannot remember location", &logger.LogContext{Error: err, Request: r})
		}
	}

	h.html(w, r,
		resp.Layout(),
		resp.Title(doc.Title()),
		resp.Data(Page{Body: html.HTML(b.String()), Path: navigation.To.Path, Route: navigation.To.Name()}),
	)
}

// sameTarget reports whether loc names what u requested,
// regardless of how u orders or encodes its query.
func sameTarget(loc nav.Location, u *url.URL) bool {
	return loc.Path == u.Path && maps.EqualFunc(loc.Query, u.Query(), slices.Equal[[]string])
}

// handleNavErr responds to a navigation that failed with err.
func (h *Handler) handleNavErr(w http.ResponseWriter, r *http.Request, doc nav.Document, requested string, err error) {
	title := resp.Title(doc.Title())
	switch {
	case errors.Is(err, nav.ErrNotFound):
		h.html(w, r, resp.NotFound(), title, resp.Data(Page{Path: r.URL.Path}))

	case errors.Is(err, nav.ErrAborted):
		h.html(w, r,
			resp.Code(http.StatusForbidden),
			resp.Tmpls(ErrTmpl),
			title,
			resp.Contact(session.NoAccessMsg),
		)

	case errors.Is(err, nav.ErrGuardTimeout):
		h.html(w, r,
			resp.Code(http.StatusGatewayTimeout),
			resp.Tmpls(ErrTmpl),
			title,
			resp.Contact(session.TimeoutMsg),
		)

	case errors.Is(err, nav.ErrSuperseded),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		// NOTE: the client is gone, nobody reads a response
		h.log.Debug("navigation abandoned", &logger.LogContext{
			Data:  map[string]any{"requested": requested},
			Error: err,
		})

	default:
		h.html(w, r,
			resp.Err(err),
			resp.Tmpls(ErrTmpl),
			title,
			resp.Contact(""),
		)
	}
}

func (h *Handler) html(w http.ResponseWriter, r *http.Request, opts ...resp.Fn) {
	if err := h.rp.Html(w, r, opts...); err != nil {
		h.log.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}
