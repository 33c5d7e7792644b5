package nav_test

import (
	"context"
	"io"
	"log"
	"sync/atomic"
	"testing"

	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/nav"
)

// counter tracks how many times a Loader ran.
type counter struct{ n int32 }

func (c *counter) loads() int { return int(atomic.LoadInt32(&c.n)) }

func (c *counter) loader(name string) nav.Loader {
	return func(context.Context) (nav.View, error) {
		atomic.AddInt32(&c.n, 1)
		return nav.ViewFunc(func(w io.Writer, _ any) error {
			_, err := io.WriteString(w, name)
			return err
		}), nil
	}
}

// newTestTable constructs the Index, Files and Result routes,
// keyed by name to the counter for each loader.
func newTestTable(t *testing.T) (*nav.Table, map[string]*counter) {
	t.Helper()

	counters := map[string]*counter{"Index": {}, "Files": {}, "Result": {}}
	table, err := nav.NewTable(
		nav.Route{Path: "/", Name: "Index", Title: "Index", Load: counters["Index"].loader("index")},
		nav.Route{Path: "/files", Name: "Files", Title: "Files", Load: counters["Files"].loader("files")},
		nav.Route{Path: "/result", Name: "Result", Title: "Result", Load: counters["Result"].loader("result")},
	)
	if err != nil {
		t.Fatal(err)
	}

	return table, counters
}

func newQuietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
}

func newTestRouter(t *testing.T, opts ...nav.Option) (*nav.Router, map[string]*counter) {
	t.Helper()

	table, counters := newTestTable(t)
	r, err := nav.New(table, append([]nav.Option{nav.WithLogger(newQuietLogger())}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}

	return r, counters
}
