package template

import "io/fs"

// A ParserOptFn configures a *Parse as NewParser builds it.
type ParserOptFn func(*Parse)

// WithFn is AddFn applied at construction.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) { p.AddFn(name, fn) }
}

// WithFS sets where templates are looked up before the embedded ones.
// Without it, NewParser uses the current working directory.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) { p.fs = filesys }
}
