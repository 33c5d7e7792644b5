package pages

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/wayfinder/http/req"
	"github.com/xy-planning-network/wayfinder/http/resp"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/nav"
)

// A RouteJSON describes a route to API clients.
type RouteJSON struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

func newRouteJSON(r nav.Route) RouteJSON { return RouteJSON{Path: r.Path, Name: r.Name, Title: r.Title} }

// routesMaxAge is how long clients may cache the route list; the table never changes while serving.
const routesMaxAge = "max-age=300"

// ListRoutes responds with every route of the table in JSON.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.table.Routes()
	data := make([]RouteJSON, len(routes))
	for i, route := range routes {
		data[i] = newRouteJSON(route)
	}

	h.json(w, r, resp.Header("Cache-Control", routesMaxAge), resp.Data(data))
}

type resolveQuery struct {
	Path string `schema:"path" validate:"required,abspath"`
}

// Resolve responds with the route the "path" query parameter resolves to in JSON.
//
// A missing or relative path responds with http.StatusBadRequest and the validation errors,
// one resolving to no route with http.StatusNotFound.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q, err := req.Query[resolveQuery](h.parser, r.URL.Query())

	var verrs req.ValidationErrors
	if errors.As(err, &verrs) {
		h.json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs))
		return
	}

	if err != nil {
		h.rp.Err(w, r, err)
		return
	}

	route, err := h.table.Resolve(q.Path)
	if errors.Is(err, nav.ErrNotFound) {
		h.json(w, r, resp.Code(http.StatusNotFound), resp.Data(map[string]string{"error": err.Error()}))
		return
	}

	if err != nil {
		h.rp.Err(w, r, err)
		return
	}

	h.json(w, r, resp.Data(newRouteJSON(route)))
}

func (h *Handler) json(w http.ResponseWriter, r *http.Request, opts ...resp.Fn) {
	if err := h.rp.Json(w, r, opts...); err != nil {
		h.log.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}
