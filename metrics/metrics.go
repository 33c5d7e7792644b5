package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/wayfinder/http/middleware"
	"github.com/xy-planning-network/wayfinder/nav"
)

// Outcomes label what became of a navigation or a view load.
const (
	OutcomeAborted      = "aborted"
	OutcomeCanceled     = "canceled"
	OutcomeCommitted    = "committed"
	OutcomeError        = "error"
	OutcomeGuardPanic   = "guard_panic"
	OutcomeGuardTimeout = "guard_timeout"
	OutcomeLoadError    = "load_error"
	OutcomeNotFound     = "not_found"
	OutcomeRedirectLoop = "redirect_loop"
	OutcomeSuperseded   = "superseded"

	unmatchedRoute = "unmatched"
)

// Config configures the collectors a *Metrics registers.
type Config struct {
	// Namespace is the metrics namespace (default: "wayfinder").
	Namespace string

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// An Option configures a *Metrics.
type Option func(*Config)

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors for navigations, view loads and HTTP requests.
type Metrics struct {
	navigations     *prometheus.CounterVec
	viewLoads       *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors with the configured registry and constructs a *Metrics.
//
// Registering the same collectors twice with one registry panics,
// so construct one *Metrics per registry.
func New(opts ...Option) *Metrics {
	c := Config{
		Namespace: "wayfinder",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&c)
	}

	factory := promauto.With(c.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Name:      "navigations_total",
			Help:      "Total number of navigations by route and outcome",
		}, []string{"route", "outcome"}),

		viewLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Name:      "view_loads_total",
			Help:      "Total number of times a route's view was loaded by route and outcome",
		}, []string{"route", "outcome"}),

		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method and status code",
		}, []string{"method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   c.Buckets,
		}, []string{"method"}),
	}
}

// AfterHook returns a nav.AfterHook counting every navigation a nav.Router finishes.
func (m *Metrics) AfterHook() nav.AfterHook {
	return func(to, _ nav.Location, err error) {
		route := to.Name()
		if route == "" {
			route = unmatchedRoute
		}

		m.navigations.WithLabelValues(route, Outcome(err)).Inc()
	}
}

// Loader wraps load, counting each time it runs for the route identified by name.
func (m *Metrics) Loader(name string, load nav.Loader) nav.Loader {
	return func(ctx context.Context) (nav.View, error) {
		v, err := load(ctx)
		outcome := OutcomeCommitted
		if err != nil {
			outcome = OutcomeLoadError
		}

		m.viewLoads.WithLabelValues(name, outcome).Inc()
		return v, err
	}
}

// Middleware counts and times every HTTP request it serves.
func (m *Metrics) Middleware() middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snoop := httpsnoop.CaptureMetrics(h, w, r)
			m.requests.WithLabelValues(r.Method, strconv.Itoa(snoop.Code)).Inc()
			m.requestDuration.WithLabelValues(r.Method).Observe(snoop.Duration.Seconds())
		})
	}
}

// Handler exposes the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Outcome labels the result of a navigation by the error it finished with.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, nav.ErrSuperseded):
		return OutcomeSuperseded
	case errors.Is(err, nav.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, nav.ErrAborted):
		return OutcomeAborted
	case errors.Is(err, nav.ErrGuardPanic):
		return OutcomeGuardPanic
	case errors.Is(err, nav.ErrGuardTimeout):
		return OutcomeGuardTimeout
	case errors.Is(err, nav.ErrRedirectLoop):
		return OutcomeRedirectLoop
	case errors.Is(err, nav.ErrLoad):
		return OutcomeLoadError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
