package pages

import (
	"context"
	"fmt"
	html "html/template"
	"io"
	"path"

	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/nav"
)

// Templates rendered by the application.
const (
	ErrTmpl      = "tmpl/error.tmpl"
	LayoutTmpl   = "tmpl/layout.tmpl"
	NotFoundTmpl = "tmpl/not_found.tmpl"

	FilesTmpl  = "tmpl/views/files.tmpl"
	IndexTmpl  = "tmpl/views/index.tmpl"
	ResultTmpl = "tmpl/views/result.tmpl"
)

// A LoaderWrapper decorates the nav.Loader of the route identified by name.
type LoaderWrapper func(name string, load nav.Loader) nav.Loader

// Routes constructs the application's route table:
//
//	/        Index   "Index"
//	/files   Files   "Files"
//	/result  Result  "Result"
//
// Every view parses its template with p the first time it is navigated to.
// Each wrap decorates every loader, in order.
func Routes(p template.Parser, wraps ...LoaderWrapper) (*nav.Table, error) {
	routes := []nav.Route{
		{Path: "/", Name: "Index", Title: "Index", Load: TemplateView(p, IndexTmpl)},
		{Path: "/files", Name: "Files", Title: "Files", Load: TemplateView(p, FilesTmpl)},
		{Path: "/result", Name: "Result", Title: "Result", Load: TemplateView(p, ResultTmpl)},
	}

	for i := range routes {
		for _, wrap := range wraps {
			if wrap != nil {
				routes[i].Load = wrap(routes[i].Name, routes[i].Load)
			}
		}
	}

	return nav.NewTable(routes...)
}

// TemplateView returns a nav.Loader parsing the template at fp with p.
func TemplateView(p template.Parser, fp string) nav.Loader {
	return func(ctx context.Context) (nav.View, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tmpl, err := p.Parse(fp)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", fp, err)
		}

		return tmplView{tmpl: tmpl, name: path.Base(fp)}, nil
	}
}

type tmplView struct {
	tmpl *html.Template
	name string
}

func (v tmplView) Render(w io.Writer, data any) error { return v.tmpl.ExecuteTemplate(w, v.name, data) }

// ViewData is what a view renders with.
type ViewData struct {
	To   nav.Location
	From nav.Location
}

// Page is what the layout renders a view within.
type Page struct {
	Body  html.HTML
	Path  string
	Route string
}
