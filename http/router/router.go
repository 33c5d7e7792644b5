package router

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/middleware"
	"github.com/xy-planning-network/wayfinder/http/template"
)

// assetsMaxAge is how long browsers may cache static assets: 30 days.
const assetsMaxAge = "max-age=2592000"

// A Route maps a path and HTTP method to an http.HandlerFunc,
// called through Middlewares in the order they appear.
//
// A Route for http.MethodGet answers http.MethodHead too.
// A named Route can be looked up with (*Router).URL.
type Route struct {
	Name        string
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

func (route Route) methods() []string {
	if route.Method == http.MethodGet {
		return []string{http.MethodGet, http.MethodHead}
	}

	return []string{route.Method}
}

// A Router sends requests to the handlers of the Routes registered on it.
type Router struct {
	Env wayfinder.Environment

	every  []middleware.Adapter
	logReq middleware.Adapter
	mux    *mux.Router
}

// New constructs a *Router for env serving the files in assets under template.AssetsPrefix.
// Asset requests skip the every request stack and are only logged through logReq.
//
// With nil assets, no assets are served.
func New(env wayfinder.Environment, assets fs.FS, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	m := mux.NewRouter()
	if assets != nil {
		files := http.StripPrefix(template.AssetsPrefix, http.FileServer(http.FS(assets)))
		m.PathPrefix(template.AssetsPrefix).Handler(middleware.Chain(files, logReq, cacheFor(assetsMaxAge)))
	}

	return &Router{Env: env, logReq: logReq, mux: m}
}

// OnEveryRequest appends middlewares to the stack wrapping every Route registered afterwards.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.every = append(r.every, middlewares...)
}

// Handle registers route.
func (r *Router) Handle(route Route) { r.HandleRoutes([]Route{route}) }

// HandleRoutes registers routes behind the every request stack, then middlewares,
// then each Route's own Middlewares.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append(r.stack(), middlewares...), route.Middlewares...)
		mr := r.mux.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.methods()...)
		if route.Name != "" {
			mr.Name(route.Name)
		}
	}
}

// HandleNotFound sets the handler for requests no Route matches,
// behind the every request stack.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.mux.NotFoundHandler = middleware.Chain(handler, r.stack()...)
}

// CatchAll sends every request, whatever its path, to handler,
// like while the app is down for maintenance.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.mux.PathPrefix("/").Handler(middleware.Chain(handler, r.stack()...))
}

// Subrouter constructs a *Router for paths beginning with prefix, like "/api".
// It starts with a copy of r's every request stack.
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:    r.Env,
		every:  r.stack(),
		logReq: r.logReq,
		mux:    r.mux.PathPrefix(prefix).Subrouter(),
	}
}

// URL builds the path of the Route registered under name,
// filling in path variables from pairs of keys and values.
func (r *Router) URL(name string, pairs ...string) (string, error) {
	mr := r.mux.Get(name)
	if mr == nil {
		return "", fmt.Errorf("%w: no route named %q", wayfinder.ErrNotExist, name)
	}

	u, err := mr.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("%w: %s", wayfinder.ErrNotValid, err)
	}

	return u.Path, nil
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) { r.mux.ServeHTTP(w, req) }

// stack copies the every request stack so appending to it never aliases.
func (r *Router) stack() []middleware.Adapter {
	return append([]middleware.Adapter(nil), r.every...)
}

// cacheFor sets the "Cache-Control" header of responses to val.
func cacheFor(val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", val)
			h.ServeHTTP(w, r)
		})
	}
}
