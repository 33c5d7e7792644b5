package template

import (
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// A Parser parses HTML templates by path, with the functions added to it.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// A Parse is a Parser reading templates from an fs.FS.
type Parse struct {
	fs fs.FS

	mu  sync.RWMutex
	fns html.FuncMap
}

// NewParser constructs a *Parse.
//
// Templates resolve against the filesystem WithFS sets and then those embedded under tmpl/,
// so an app overrides an embedded template by shipping a file at the same path.
// The functions embedded templates call start out as placeholders for AddFn to replace.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap)}
	p.AddFn(Env(""))
	p.AddFn(AssetURI("", nil))
	p.AddFn(Nonce())
	p.AddFn(RootUrl(nil))
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	p.fs = newLayerFS(p.fs, pkgFS)
	return p
}

// Parse parses the named files, skipping empty names, with the functions added so far.
// The returned template is named after the base of the first file.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	var files []string
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return html.New(path.Base(files[0])).Funcs(p.funcs()).ParseFS(p.fs, files...)
}
