package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/middleware"
	"github.com/xy-planning-network/wayfinder/http/pages"
	"github.com/xy-planning-network/wayfinder/http/resp"
	"github.com/xy-planning-network/wayfinder/http/router"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/metrics"
	"github.com/xy-planning-network/wayfinder/nav"
)

const (
	defaultTitle    = pages.DefaultTitle
	shutdownTimeout = 5 * time.Second
)

// A Ranger manages and exposes all components of a wayfinder app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx          context.Context
	env          wayfinder.Environment
	files        fs.FS
	guards       []nav.Guard
	guardTimeout time.Duration
	handler      *pages.Handler
	l            logger.Logger
	maintMode    bool
	metrics      *metrics.Metrics
	metricsOn    bool
	p            *template.Parse
	registry     *prometheus.Registry
	sessions     session.SessionStorer
	srv          *http.Server
	title        string
	url          *url.URL
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
//
// Once every option is applied, New assembles the components not provided
// and registers the app's routes.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require components assembled from the others.
	// They return an OptFollowup to be called once assembly is done.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", wayfinder.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.assemble(); err != nil {
		return nil, fmt.Errorf("%w: %s", wayfinder.ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", wayfinder.ErrBadConfig, err)
		}
	}

	r.l.Debug("ranger assembled", &logger.LogContext{Data: map[string]any{
		"env":     r.env.String(),
		"metrics": r.metricsOn,
		"title":   r.title,
		"url":     r.url.String(),
	}})

	return r, nil
}

// assemble constructs every component an option did not provide.
func (r *Ranger) assemble() error {
	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	r.p = defaultParser(r.env, r.files)
	r.Responder = defaultResponder(r.l, r.url, r.p, r.title, os.Getenv(ContactUsEnvVar))

	if r.sessions == nil {
		store, err := defaultSessionStore(r.env, r.title, r.l)
		if err != nil {
			return err
		}
		r.sessions = store
	}

	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.ReportPanic(r.env),
		middleware.InjectIPAddress(),
		middleware.LogRequest(r.l),
		middleware.ForceHTTPS(r.env),
		middleware.RateLimit(middleware.NewVisitors()),
	}

	var wraps []pages.LoaderWrapper
	hopts := []pages.Option{
		pages.WithGuards(r.guards...),
		pages.WithGuardTimeout(r.guardTimeout),
		pages.WithLogger(r.l),
		pages.WithTitle(r.title),
	}

	if r.metricsOn {
		r.metrics, r.registry = defaultMetrics()
		mws = append(mws, r.metrics.Middleware())
		wraps = append(wraps, r.metrics.Loader)
		hopts = append(hopts, pages.WithAfterHooks(r.metrics.AfterHook()))
	}

	mws = append(mws, middleware.InjectSession(r.sessions, r.l))

	table, err := pages.Routes(r.p, wraps...)
	if err != nil {
		return err
	}

	r.handler = pages.NewHandler(table, r.Responder, hopts...)
	r.Router = defaultRouter(r.env, r.files, r.l, mws)
	r.routes()

	r.srv = defaultServer(r.ctx)
	r.srv.Handler = r.Router

	return nil
}

// routes registers the app's endpoints on the router.
func (r *Ranger) routes() {
	if r.maintMode {
		r.l.Warn("maintenance mode is on", nil)
		r.CatchAll(MaintModeHandler(r.p, r.l))
		return
	}

	views := make([]router.Route, 0, r.handler.Table().Len())
	for _, route := range r.handler.Table().Routes() {
		views = append(views, router.Route{Name: route.Name, Path: route.Path, Method: http.MethodGet, Handler: r.handler.ServeHTTP})
	}
	r.HandleRoutes(views)
	r.HandleNotFound(r.handler.ServeHTTP)

	api := r.Subrouter("/api")
	api.HandleRoutes(
		[]router.Route{
			{Path: "/routes", Method: http.MethodGet, Handler: r.handler.ListRoutes},
			{Path: "/routes", Method: http.MethodOptions, Handler: noContent},
			{Path: "/resolve", Method: http.MethodGet, Handler: r.handler.Resolve},
			{Path: "/resolve", Method: http.MethodOptions, Handler: noContent},
		},
		middleware.CORS(origin(r.url)),
	)

	if r.metricsOn {
		r.Handle(router.Route{
			Path:    MetricsPath,
			Method:  http.MethodGet,
			Handler: metrics.Handler(r.registry).ServeHTTP,
		})
	}
}

func (r *Ranger) EmitEnv() wayfinder.Environment           { return r.env }
func (r *Ranger) EmitHandler() *pages.Handler              { return r.handler }
func (r *Ranger) EmitLogger() logger.Logger                { return r.l }
func (r *Ranger) EmitRegistry() *prometheus.Registry       { return r.registry }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitTable() *nav.Table                    { return r.handler.Table() }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - cancelling the context.Context set by WithContext
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(
		r.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	defer sentry.Flush(2 * time.Second)

	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// origin trims u down to the scheme and host CORS requests are allowed from.
func origin(u *url.URL) string {
	if u == nil || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

func noContent(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }
