package nav

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// A Route maps a path to the View rendered there.
type Route struct {
	// Path is matched exactly against the path of a requested location.
	Path string

	// Name identifies the Route for programmatic navigation.
	Name string

	// Title is the document title set when navigating to the Route.
	// The zero value leaves the title untouched.
	Title string

	// Load constructs the Route's View the first time it is needed.
	Load Loader
}

// HasTitle asserts whether navigating to the Route changes the document title.
func (r Route) HasTitle() bool { return r.Title != "" }

// A Table is an immutable set of Routes.
// Every Path and every Name in a Table is unique.
//
// A Table owns the lazily loaded Views of its Routes,
// so every Router built on the same Table shares them.
type Table struct {
	routes []Route
	byPath map[string]int
	byName map[string]int
	views  []*lazyView
}

// NewTable validates routes and constructs a Table from them.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
		byName: make(map[string]int, len(routes)),
		views:  make([]*lazyView, 0, len(routes)),
	}

	for i, r := range routes {
		switch {
		case !strings.HasPrefix(r.Path, "/"):
			return nil, fmt.Errorf("%w: route %d path %q must begin with /", ErrBadConfig, i, r.Path)
		case r.Name == "":
			return nil, fmt.Errorf("%w: route %q has no name", ErrBadConfig, r.Path)
		case r.Load == nil:
			return nil, fmt.Errorf("%w: route %q has no loader", ErrBadConfig, r.Name)
		}

		if _, ok := t.byPath[r.Path]; ok {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrBadConfig, r.Path)
		}

		if _, ok := t.byName[r.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrBadConfig, r.Name)
		}

		t.byPath[r.Path] = len(t.routes)
		t.byName[r.Name] = len(t.routes)
		t.routes = append(t.routes, r)
		t.views = append(t.views, &lazyView{load: r.Load})
	}

	return t, nil
}

// ByName retrieves the Route identified by name.
func (t *Table) ByName(name string) (Route, error) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, fmt.Errorf("%w: no route named %q", ErrNotFound, name)
	}

	return t.routes[i], nil
}

// Len reports the number of Routes in the Table.
func (t *Table) Len() int { return len(t.routes) }

// Loaded asserts whether the View for the named Route has been loaded.
func (t *Table) Loaded(name string) bool {
	i, ok := t.byName[name]
	if !ok {
		return false
	}

	return t.views[i].loaded()
}

// Locate parses raw into a Location, matching its path against the Table.
// The query and fragment of raw play no part in matching.
func (t *Table) Locate(raw string) Location {
	loc := Location{Path: raw}
	if u, err := url.Parse(raw); err == nil {
		loc.Path = u.Path
		loc.Query = u.Query()
		loc.Fragment = u.Fragment
	}

	if i, ok := t.byPath[loc.Path]; ok {
		r := t.routes[i]
		loc.Route = &r
	}

	return loc
}

// Resolve finds the Route whose Path matches the path of raw exactly.
// If none does, ErrNotFound returns.
func (t *Table) Resolve(raw string) (Route, error) {
	loc := t.Locate(raw)
	if !loc.Matched() {
		return Route{}, fmt.Errorf("%w: %s", ErrNotFound, loc.Path)
	}

	return *loc.Route, nil
}

// Routes returns a copy of the Table's Routes in the order they were provided.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// View loads, or retrieves the already loaded, View of the named Route.
func (t *Table) View(ctx context.Context, name string) (View, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: no route named %q", ErrNotFound, name)
	}

	return t.views[i].get(ctx)
}
