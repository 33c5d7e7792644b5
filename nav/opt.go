package nav

import (
	"time"

	"github.com/xy-planning-network/wayfinder/logger"
	"go.opentelemetry.io/otel/trace"
)

// An Option configures a *Router when constructing it with New.
type Option func(*Router)

// WithDocument sets the Document whose title a Router maintains.
//
// Without it, a Router uses an untitled *MemoryDocument.
func WithDocument(doc Document) Option {
	return func(r *Router) {
		r.doc = doc
	}
}

// WithGuards registers guards, in order, after the default TitleGuard.
func WithGuards(guards ...Guard) Option {
	return func(r *Router) {
		for _, g := range guards {
			if g == nil {
				continue
			}
			r.guards = append(r.guards, &guardEntry{fn: g})
		}
	}
}

// WithGuardTimeout sets how long a Router waits on a Guard to call next.
// A non-positive d waits until the navigation's context.Context is done.
func WithGuardTimeout(d time.Duration) Option {
	return func(r *Router) {
		r.guardTimeout = d
	}
}

// WithHistory sets the History a Router commits to.
//
// Without it, a Router uses an empty *MemoryHistory.
func WithHistory(h History) Option {
	return func(r *Router) {
		r.hist = h
	}
}

// WithLogger sets the logger.Logger a Router logs through.
func WithLogger(l logger.Logger) Option {
	return func(r *Router) {
		r.log = l
	}
}

// WithTracer sets the trace.Tracer spanning every navigation.
//
// Without it, a Router uses the tracer of the global trace.TracerProvider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = t
	}
}
