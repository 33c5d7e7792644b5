package template

import (
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/wayfinder"
)

// AddFn makes fn callable as name in templates parsed from now on.
// Adding a name again replaces the earlier fn.
func (p *Parse) AddFn(name string, fn any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}

	p.fns[name] = fn
}

// funcs copies the functions added so far.
func (p *Parse) funcs() html.FuncMap {
	p.mu.RLock()
	defer p.mu.RUnlock()

	fns := make(html.FuncMap, len(p.fns))
	for name, fn := range p.fns {
		fns[name] = fn
	}

	return fns
}

// The functions below return a name and function pair for AddFn or WithFn:
//
//	p.AddFn(template.Env(wayfinder.Production))

func constant(name, val string) (string, func() string) {
	return name, func() string { return val }
}

// Env returns "env", emitting e.
func Env(e wayfinder.Environment) (string, func() string) { return constant("env", e.String()) }

// Nonce returns "nonce", emitting a fresh UUID on every call.
func Nonce() (string, func() string) { return "nonce", uuid.NewString }

// RootUrl returns "rootUrl", emitting the base URL of the app, or nothing when u is nil.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return constant("rootUrl", "")
	}

	return constant("rootUrl", u.String())
}
