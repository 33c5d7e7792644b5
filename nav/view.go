package nav

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// A View is the rendering unit a Route mounts once navigation commits.
type View interface {
	Render(w io.Writer, data any) error
}

// ViewFunc adapts an ordinary function into a View.
type ViewFunc func(w io.Writer, data any) error

// Render calls fn.
func (fn ViewFunc) Render(w io.Writer, data any) error { return fn(w, data) }

// A Loader defers constructing a View until the Route holding it is first navigated to.
type Loader func(ctx context.Context) (View, error)

// lazyView caches the View a Loader produces.
// Only a successful load is cached, a failed one is retried on next use.
type lazyView struct {
	mu   sync.Mutex
	load Loader
	view View
}

func (lv *lazyView) get(ctx context.Context) (View, error) {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	if lv.view != nil {
		return lv.view, nil
	}

	v, err := lv.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoad, err)
	}

	if v == nil {
		return nil, fmt.Errorf("%w: loader returned no view", ErrLoad)
	}

	lv.view = v
	return v, nil
}

func (lv *lazyView) loaded() bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.view != nil
}
