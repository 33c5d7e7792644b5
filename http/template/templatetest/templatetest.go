// Package templatetest builds in-memory filesystems of templates for tests,
// so rendering can be tested without testdata/ directories.
package templatetest

import (
	"testing/fstest"

	"github.com/xy-planning-network/wayfinder/http/template"
)

// A File is a template, or any other file, at a slash-separated path.
type File struct {
	Name string
	Data []byte
}

func NewMockFile(name string, data []byte) File { return File{Name: name, Data: data} }

// NewMockFS holds files in memory. Files without a name are dropped.
func NewMockFS(files ...File) fstest.MapFS {
	mfs := make(fstest.MapFS, len(files))
	for _, f := range files {
		if f.Name != "" {
			mfs[f.Name] = &fstest.MapFile{Data: f.Data}
		}
	}

	return mfs
}

// NewParser constructs a *template.Parse finding files before the embedded templates.
func NewParser(files ...File) *template.Parse {
	return template.NewParser(template.WithFS(NewMockFS(files...)))
}
