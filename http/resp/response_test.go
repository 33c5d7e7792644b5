package resp

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/logger"
)

func TestCode(t *testing.T) {
	tcs := []struct {
		name string
		code int
	}{
		{"Min-Int32", math.MinInt32},
		{"200", http.StatusOK},
		{"Max-Int32", math.MaxInt32},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := Responder{}
			res := &Response{}

			// Act
			err := Code(tc.code)(d, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, res.code)
		})
	}
}

func TestContact(t *testing.T) {
	tcs := []struct {
		name     string
		d        Responder
		msg      string
		expected string
	}{
		{"Default", Responder{}, "", session.DefaultErrMsg},
		{"Configured", Responder{contact: "Email help@example.com."}, "", "Email help@example.com."},
		{"Given", Responder{contact: "Email help@example.com."}, session.TimeoutMsg, session.TimeoutMsg},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			res := &Response{}

			// Act
			err := Contact(tc.msg)(tc.d, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, map[string]any{"Contact": tc.expected}, res.data)
		})
	}
}

func TestData(t *testing.T) {
	tcs := []struct {
		name string
		data map[string]any
	}{
		{"Zero-Value", make(map[string]any)},
		{"Data", map[string]any{"go": "rocks"}},
		{"Nil", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := Responder{}
			res := &Response{}

			// Act
			err := Data(tc.data)(d, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.data, res.data)
		})
	}
}

func TestErr(t *testing.T) {
	tcs := []struct {
		name string
		err  error
	}{
		{name: "Zero-Value", err: nil},
		{name: "Error", err: ErrInvalid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := newLogger()
			d := Responder{log: l}
			res := &Response{r: httptest.NewRequest(http.MethodGet, "http://example.com", nil)}

			// Act
			err := Err(tc.err)(d, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, http.StatusInternalServerError, res.code)
			if tc.err != nil {
				require.Equal(t, tc.err.Error(), l.String())
			}
		})
	}
}

func TestFlash(t *testing.T) {
	t.Run("No-Session", func(t *testing.T) {
		// Arrange
		res := &Response{r: httptest.NewRequest(http.MethodGet, "http://example.com", nil), w: httptest.NewRecorder()}

		// Act
		err := Flash(session.Flash{Class: session.FlashInfo, Msg: "hi"})(Responder{}, res)

		// Assert
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Session", func(t *testing.T) {
		// Arrange
		req, s := requestWithSession()
		w := httptest.NewRecorder()
		res := &Response{r: req, w: w}
		expected := session.Flash{Class: session.FlashSuccess, Msg: "well done!"}

		// Act
		err := Flash(expected)(Responder{}, res)

		// Assert
		require.Nil(t, err)
		require.Equal(t, []session.Flash{expected}, s.Flashes(w, req))
	})
}

func TestGenericErr(t *testing.T) {
	tcs := []struct {
		name     string
		d        Responder
		expected string
	}{
		{"Default-Msg", Responder{}, session.DefaultErrMsg},
		{"Contact-Msg", Responder{contact: "email us"}, "email us"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := newLogger()
			tc.d.log = l
			req, s := requestWithSession()
			w := httptest.NewRecorder()
			res := &Response{r: req, w: w}

			// Act
			err := GenericErr(ErrInvalid)(tc.d, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, http.StatusInternalServerError, res.code)
			require.Equal(t, ErrInvalid.Error(), l.String())
			require.Equal(t, []session.Flash{{Class: session.FlashError, Msg: tc.expected}}, s.Flashes(w, req))
		})
	}
}

func TestHeader(t *testing.T) {
	t.Run("No-Writer", func(t *testing.T) {
		// Act
		err := Header("Retry-After", "600")(Responder{}, &Response{})

		// Assert
		require.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("Sets", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		w.Header().Set("Retry-After", "1")
		res := &Response{w: w}

		// Act
		err := Header("Retry-After", "600")(Responder{}, res)

		// Assert
		require.Nil(t, err)
		require.Equal(t, "600", w.Header().Get("Retry-After"))
	})
}

func TestLayout(t *testing.T) {
	tcs := []struct {
		name     string
		layout   string
		tmpls    []string
		expected []string
		err      error
	}{
		{"No-Layout", "", []string{"a.tmpl"}, []string{"a.tmpl"}, ErrBadConfig},
		{"Prepends", "layout.tmpl", []string{"a.tmpl"}, []string{"layout.tmpl", "a.tmpl"}, nil},
		{"Once", "layout.tmpl", []string{"layout.tmpl", "a.tmpl"}, []string{"layout.tmpl", "a.tmpl"}, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := Responder{}
			d.tmpl.layout = tc.layout
			res := &Response{tmpls: tc.tmpls}

			// Act
			err := Layout()(d, res)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, res.tmpls)
		})
	}
}

func TestNotFound(t *testing.T) {
	tcs := []struct {
		name     string
		layout   string
		notFound string
		expected []string
		code     int
		err      error
	}{
		{"No-Not-Found", "layout.tmpl", "", []string{}, 0, ErrBadConfig},
		{"No-Layout", "", "not_found.tmpl", []string{}, 0, ErrBadConfig},
		{"Both", "layout.tmpl", "not_found.tmpl", []string{"layout.tmpl", "not_found.tmpl"}, http.StatusNotFound, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := Responder{}
			d.tmpl.layout = tc.layout
			d.tmpl.notFound = tc.notFound
			res := &Response{tmpls: []string{}}

			// Act
			err := NotFound()(d, res)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, res.tmpls)
			require.Equal(t, tc.code, res.code)
		})
	}
}

func TestParam(t *testing.T) {
	tcs := []struct {
		name     string
		url      string
		key, val string
		expected string
		err      error
	}{
		{"No-Url", "", "id", "7", "", ErrMissingData},
		{"Url", "/result", "id", "7", "/result?id=7", nil},
		{"Appends", "/result?id=7", "id", "8", "/result?id=7&id=8", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			res := &Response{}
			if tc.url != "" {
				u, err := url.ParseRequestURI(tc.url)
				require.Nil(t, err)
				res.url = u
			}

			// Act
			err := Param(tc.key, tc.val)(Responder{}, res)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.Equal(t, tc.expected, res.url.String())
			}
		})
	}
}

func TestTmpls(t *testing.T) {
	// Arrange
	res := &Response{tmpls: []string{"layout.tmpl"}}

	// Act
	err := Tmpls("a.tmpl", "b.tmpl")(Responder{}, res)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"layout.tmpl", "a.tmpl", "b.tmpl"}, res.tmpls)
}

func TestTitle(t *testing.T) {
	tcs := []struct {
		name     string
		title    string
		expected string
	}{
		{"Empty", "", "before"},
		{"Title", "Files", "Files"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			res := &Response{title: "before"}

			// Act
			err := Title(tc.title)(Responder{}, res)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, res.title)
		})
	}
}

func TestToRoot(t *testing.T) {
	t.Run("No-Root", func(t *testing.T) {
		// Arrange
		res := &Response{}

		// Act
		err := ToRoot()(Responder{}, res)

		// Assert
		require.Nil(t, err)
		require.Nil(t, res.url)
	})

	t.Run("Root-Copied", func(t *testing.T) {
		// Arrange
		d := *NewResponder(WithRootUrl("https://example.com"))
		res := &Response{}

		// Act
		err := ToRoot()(d, res)
		res.url.Path = "/changed"

		// Assert
		require.Nil(t, err)
		require.Equal(t, "https://example.com", d.root.String())
	})
}

func TestUrl(t *testing.T) {
	tcs := []struct {
		name string
		url  string
		err  error
	}{
		{"Empty", "", ErrInvalid},
		{"Relative", "files", ErrInvalid},
		{"Path", "/files", nil},
		{"Absolute", "https://example.com/result?id=7", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			res := &Response{}

			// Act
			err := Url(tc.url)(Responder{}, res)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				require.Equal(t, tc.url, res.url.String())
			}
		})
	}
}

func TestWarn(t *testing.T) {
	// Arrange
	l := newLogger()
	req, s := requestWithSession()
	w := httptest.NewRecorder()
	res := &Response{r: req, w: w}

	// Act
	err := Warn("careful")(Responder{log: l}, res)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "careful", l.String())
	require.Equal(t, []session.Flash{{Class: session.FlashWarning, Msg: "careful"}}, s.Flashes(w, req))
}

func requestWithSession() (*http.Request, session.Session) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	s, _ := session.NewStubStore("").GetSession(req)
	return req.WithContext(context.WithValue(req.Context(), wayfinder.SessionKey, s)), s
}

type testLogger struct {
	*bytes.Buffer
}

func newLogger() testLogger { return testLogger{new(bytes.Buffer)} }

func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
