package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

var (
	//go:embed tmpl/*
	pkgFS embed.FS

	//go:embed static/*
	staticFS embed.FS
)

// A layerFS opens each file from the first of its layers having it.
// It remembers which layer that was, so later opens go straight there.
type layerFS struct {
	layers []fs.FS
	seen   sync.Map // name -> index into layers
}

// newLayerFS stacks layers, the first taking precedence.
// Nil layers are skipped.
func newLayerFS(layers ...fs.FS) *layerFS {
	lfs := new(layerFS)
	for _, l := range layers {
		if l != nil {
			lfs.layers = append(lfs.layers, l)
		}
	}

	return lfs
}

func (lfs *layerFS) Open(name string) (fs.File, error) {
	if i, ok := lfs.seen.Load(name); ok {
		f, err := lfs.layers[i.(int)].Open(name)
		if err == nil || !missing(err) {
			return f, err
		}

		// removed from disk since; look again
		lfs.seen.Delete(name)
	}

	for i, l := range lfs.layers {
		f, err := l.Open(name)
		switch {
		case err == nil:
			lfs.seen.Store(name, i)
			return f, nil
		case missing(err):
			continue
		default:
			return nil, fmt.Errorf("unable to open %s: %w", name, err)
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func missing(err error) bool { return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) }
