package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xy-planning-network/wayfinder/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultGuardTimeout is how long a Router waits on a Guard to call next.
	DefaultGuardTimeout = 5 * time.Second

	// MaxRedirects is how many times Guards can redirect a single navigation.
	MaxRedirects = 10

	tracerName = "github.com/xy-planning-network/wayfinder/nav"
)

// A State is the phase a Router is in.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// A Navigation is the outcome of a committed navigation.
type Navigation struct {
	From Location
	To   Location
	View View

	// Redirected asserts whether a Guard changed the target.
	Redirected bool
}

type guardEntry struct{ fn Guard }

type afterEntry struct{ fn AfterHook }

// A Router navigates between the Routes of a Table.
//
// A navigation resolves the requested location, calls every Guard in the order
// they were registered, loads the View of the matched Route and commits:
// the History records the location and it becomes the current one.
// Only one navigation is in flight at a time;
// starting another supersedes it.
type Router struct {
	doc          Document
	guardTimeout time.Duration
	hist         History
	log          logger.Logger
	table        *Table
	tracer       trace.Tracer

	mu      sync.Mutex
	afters  []*afterEntry
	cancel  context.CancelFunc
	current Location
	gen     uint64
	guards  []*guardEntry
	state   State
}

// New constructs a *Router navigating the Routes of table.
//
// New registers TitleGuard for the Router's Document before any Guard
// passed in with WithGuards.
func New(table *Table, opts ...Option) (*Router, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: no route table", ErrBadConfig)
	}

	r := &Router{
		guardTimeout: DefaultGuardTimeout,
		table:        table,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.doc == nil {
		r.doc = NewMemoryDocument("")
	}

	if r.hist == nil {
		r.hist = NewMemoryHistory("")
	}

	if r.log == nil {
		r.log = logger.New()
	}

	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}

	r.guards = append([]*guardEntry{{fn: TitleGuard(r.doc)}}, r.guards...)

	if loc := r.hist.Location(); loc != "" {
		r.current = table.Locate(loc)
	}

	return r, nil
}

// AfterEach registers hook to be called after every navigation finishes.
// Calling the returned function unregisters it.
func (r *Router) AfterEach(hook AfterHook) (remove func()) {
	if hook == nil {
		return func() {}
	}

	e := &afterEntry{fn: hook}
	r.mu.Lock()
	r.afters = append(r.afters, e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, a := range r.afters {
			if a == e {
				r.afters = append(r.afters[:i:i], r.afters[i+1:]...)
				return
			}
		}
	}
}

// BeforeEach registers guard to be called before every navigation commits.
// Guards are called in the order they are registered.
// Calling the returned function unregisters it.
func (r *Router) BeforeEach(guard Guard) (remove func()) {
	if guard == nil {
		return func() {}
	}

	e := &guardEntry{fn: guard}
	r.mu.Lock()
	r.guards = append(r.guards, e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, g := range r.guards {
			if g == e {
				r.guards = append(r.guards[:i:i], r.guards[i+1:]...)
				return
			}
		}
	}
}

// Current returns the Location last committed to.
// Before any navigation commits, it is the History's current entry, if any.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) Document() Document { return r.doc }
func (r *Router) History() History   { return r.hist }
func (r *Router) Table() *Table      { return r.table }

// Resolve finds the Route whose Path matches the path of raw exactly.
// If none does, ErrNotFound returns.
func (r *Router) Resolve(raw string) (Route, error) { return r.table.Resolve(raw) }

// State reports whether a navigation is in flight.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Back navigates to the previous History entry.
func (r *Router) Back(ctx context.Context) (*Navigation, error) { return r.Go(ctx, -1) }

// Forward navigates to the next History entry.
func (r *Router) Forward(ctx context.Context) (*Navigation, error) { return r.Go(ctx, 1) }

// Go navigates to the History entry n steps away from the current one.
// If a Guard redirects, the redirect target is pushed instead.
func (r *Router) Go(ctx context.Context, n int) (*Navigation, error) {
	loc, ok := r.hist.At(n)
	if !ok {
		return nil, fmt.Errorf("%w: %d steps away", ErrNoHistory, n)
	}

	return r.navigate(ctx, loc, func(h History, loc string, redirected bool) {
		if redirected {
			h.Push(loc)
			return
		}
		h.Go(n)
	})
}

// Push navigates to loc, adding it to the History.
func (r *Router) Push(ctx context.Context, loc string) (*Navigation, error) {
	return r.navigate(ctx, loc, func(h History, loc string, _ bool) { h.Push(loc) })
}

// PushNamed navigates to the Route identified by name, adding it to the History.
func (r *Router) PushNamed(ctx context.Context, name string) (*Navigation, error) {
	route, err := r.table.ByName(name)
	if err != nil {
		return nil, err
	}

	return r.Push(ctx, route.Path)
}

// Replace navigates to loc, overwriting the current History entry with it.
func (r *Router) Replace(ctx context.Context, loc string) (*Navigation, error) {
	return r.navigate(ctx, loc, func(h History, loc string, _ bool) { h.Replace(loc) })
}

type commitFn func(h History, loc string, redirected bool)

// navigate runs a navigation to raw from start to finish.
func (r *Router) navigate(ctx context.Context, raw string, commit commitFn) (*Navigation, error) {
	ctx, span := r.tracer.Start(ctx, "nav.navigate", trace.WithAttributes(attribute.String("nav.requested", raw)))
	defer span.End()

	ctx, cancel, gen := r.begin(ctx)
	defer cancel()

	// guards may retitle doc before the navigation fails
	title := r.doc.Title()

	result := &Navigation{From: r.Current()}
	err := r.transition(ctx, raw, result)
	if err == nil {
		committed := r.finish(gen, func() {
			commit(r.hist, result.To.String(), result.Redirected)
			r.current = result.To
		})
		if !committed {
			err = fmt.Errorf("%w: %s", ErrSuperseded, raw)
		}
	} else if !r.finish(gen, func() { r.doc.SetTitle(title) }) {
		err = fmt.Errorf("%w: %s", ErrSuperseded, err)
	}

	span.SetAttributes(attribute.String("nav.to", result.To.Path), attribute.String("nav.route", result.To.Name()))
	r.report(result, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

// transition runs the Guards and loads the View, filling in result.
func (r *Router) transition(ctx context.Context, raw string, result *Navigation) error {
	target := raw
	for i := 0; ; i++ {
		if i > MaxRedirects {
			return fmt.Errorf("%w: stopped at %s", ErrRedirectLoop, target)
		}

		result.To = r.table.Locate(target)
		redirect, err := r.runGuards(ctx, result.To, result.From)
		if err != nil {
			return err
		}

		if redirect == "" {
			break
		}

		target = redirect
		result.Redirected = true
	}

	if !result.To.Matched() {
		return fmt.Errorf("%w: %s", ErrNotFound, result.To.Path)
	}

	view, err := r.table.View(ctx, result.To.Route.Name)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result.View = view
	return nil
}

// runGuards calls each Guard in order until one redirects or stops the navigation.
func (r *Router) runGuards(ctx context.Context, to, from Location) (string, error) {
	r.mu.Lock()
	guards := make([]Guard, len(r.guards))
	for i, g := range r.guards {
		guards[i] = g.fn
	}
	r.mu.Unlock()

	for _, g := range guards {
		d, err := r.runGuard(ctx, g, to, from)
		if err != nil {
			return "", err
		}

		if d.failed != nil {
			return "", d.failed
		}

		if d.abort != nil {
			return "", fmt.Errorf("%w: %s", ErrAborted, d.abort)
		}

		if d.redirect != "" {
			return d.redirect, nil
		}
	}

	return "", nil
}

// runGuard calls g and waits for it to call next.
func (r *Router) runGuard(ctx context.Context, g Guard, to, from Location) (decision, error) {
	done := make(chan decision, 1)
	var called int32
	next := func(opts ...NextOpt) {
		if !atomic.CompareAndSwapInt32(&called, 0, 1) {
			r.log.Warn("navigation guard called next more than once", &logger.LogContext{
				Data: map[string]any{"to": to.String()},
			})
			return
		}

		var d decision
		for _, opt := range opts {
			opt(&d)
		}
		done <- d
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				err := fmt.Errorf("%w: %v", ErrGuardPanic, p)
				r.log.Error(err.Error(), &logger.LogContext{Error: err})
				next(func(d *decision) { d.failed = err })
			}
		}()

		g(ctx, to, from, next)
	}()

	var timeout <-chan time.Time
	if r.guardTimeout > 0 {
		t := time.NewTimer(r.guardTimeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case d := <-done:
		return d, nil
	case <-ctx.Done():
		return decision{}, ctx.Err()
	case <-timeout:
		return decision{}, fmt.Errorf("%w after %s navigating to %s", ErrGuardTimeout, r.guardTimeout, to.Path)
	}
}

// begin marks a new navigation as the one in flight,
// cancelling whichever navigation was in flight before it.
func (r *Router) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	r.gen++
	r.cancel = cancel
	r.state = Transitioning

	return ctx, cancel, r.gen
}

// finish calls commit and returns the Router to Idle
// if the navigation identified by gen is still the one in flight.
func (r *Router) finish(gen uint64, commit func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return false
	}

	if commit != nil {
		commit()
	}

	r.cancel = nil
	r.state = Idle
	return true
}

// report logs the outcome of a navigation and calls every AfterHook.
func (r *Router) report(result *Navigation, err error) {
	data := map[string]any{"from": result.From.String(), "to": result.To.String()}
	switch {
	case err == nil:
		r.log.Debug("navigation committed", &logger.LogContext{Data: data})
	case errors.Is(err, ErrSuperseded), errors.Is(err, ErrNotFound):
		r.log.Debug("navigation not committed", &logger.LogContext{Data: data, Error: err})
	default:
		r.log.Warn("navigation failed", &logger.LogContext{Data: data, Error: err})
	}

	r.mu.Lock()
	afters := make([]AfterHook, len(r.afters))
	for i, a := range r.afters {
		afters[i] = a.fn
	}
	r.mu.Unlock()

	for _, fn := range afters {
		fn(result.To, result.From, err)
	}
}
