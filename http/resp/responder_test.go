package resp_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/resp"
	"github.com/xy-planning-network/wayfinder/http/session"
	tt "github.com/xy-planning-network/wayfinder/http/template/templatetest"
	"github.com/xy-planning-network/wayfinder/logger"
)

type testFn func(*testing.T, *httptest.ResponseRecorder, *http.Request, error)

const (
	htmlMediaType = "text/html; charset=utf-8"
	jsonMediaType = "application/json; charset=UTF-8"
)

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d := resp.NewResponder()

		// Act
		err := d.Json(w, r, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name     string
		expected error
	}{
		{"Nil", nil},
		{"ErrDone", resp.ErrDone},
		{"Custom", errors.New("my favorite error")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			l := newLogger()
			d := resp.NewResponder(resp.WithLogger(l))

			// Act
			d.Err(w, r, tc.expected)

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			if tc.expected != nil {
				require.Equal(t, tc.expected.Error(), l.b.String())
			}
		})
	}
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name   string
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
				require.JSONEq(t, `{}`, w.Body.String())
			},
		},
		{
			name: "With-Data",
			fns:  []resp.Fn{resp.Data(map[string]string{"path": "/files"})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.JSONEq(t, `{"data":{"path":"/files"}}`, w.Body.String())
			},
		},
		{
			name: "With-Code",
			fns:  []resp.Fn{resp.Code(http.StatusNotFound), resp.Data(map[string]string{"error": "nope"})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusNotFound, w.Code)
				require.JSONEq(t, `{"data":{"error":"nope"}}`, w.Body.String())
			},
		},
		{
			name: "Unencodable",
			fns:  []resp.Fn{resp.Data(make(chan int))},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.NotNil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			d := resp.NewResponder(resp.WithLogger(newLogger()))
			tc.assert(t, w, r, d.Json(w, r, tc.fns...))
		})
	}
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name   string
		d      *resp.Responder
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "No-Fns",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrMissingData)
			},
		},
		{
			name: "To-Root",
			d:    resp.NewResponder(resp.WithRootUrl("https://wayfinder.example.com")),
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusFound, w.Code)
				require.Equal(t, "https://wayfinder.example.com", w.Header().Get("Location"))
			},
		},
		{
			name: "Param-No-Url",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{resp.Param("id", "7")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrMissingData)
			},
		},
		{
			name: "Param-Before-Url",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{resp.Param("id", "7"), resp.Url("/result")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusFound, w.Code)
				require.Equal(t, "/result?id=7", w.Header().Get("Location"))
			},
		},
		{
			name: "Param-Before-Url-With-Root",
			d:    resp.NewResponder(resp.WithRootUrl("https://wayfinder.example.com")),
			fns:  []resp.Fn{resp.Param("id", "7"), resp.Url("/result")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "/result?id=7", w.Header().Get("Location"))
			},
		},
		{
			name: "Overwrite-4xx",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{resp.Url("/"), resp.Code(http.StatusTeapot)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusSeeOther, w.Code)
			},
		},
		{
			name: "Overwrite-5xx",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{resp.Url("/"), resp.Code(http.StatusInsufficientStorage)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusTemporaryRedirect, w.Code)
			},
		},
		{
			name: "Keep-3xx",
			d:    resp.NewResponder(),
			fns:  []resp.Fn{resp.Url("/files"), resp.Code(http.StatusPermanentRedirect)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusPermanentRedirect, w.Code)
				require.Equal(t, "/files", w.Header().Get("Location"))
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			tc.assert(t, w, r, tc.d.Redirect(w, r, tc.fns...))
		})
	}
}

func TestResponderHtml(t *testing.T) {
	page := tt.NewMockFile("page.tmpl", []byte(`{{ .Title }}|{{ .Data }}|{{ range .Flashes }}{{ .Msg }}{{ end }}`))
	layout := tt.NewMockFile("layout.tmpl", []byte(`<main>{{ block "content" . }}{{ end }}</main>`))
	content := tt.NewMockFile("content.tmpl", []byte(`{{ define "content" }}{{ .Data }}{{ end }}`))
	errPage := tt.NewMockFile("error.tmpl", []byte(`oops: {{ .Data.Contact }}`))
	where := tt.NewMockFile("where.tmpl", []byte(`{{ .Path }}|{{ .RequestID }}`))

	tcs := []struct {
		name   string
		d      *resp.Responder
		ctx    context.Context
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			d:    resp.NewResponder(resp.WithLogger(newLogger())),
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrBadConfig)
				require.Equal(t, http.StatusInternalServerError, w.Code)
			},
		},
		{
			name: "No-Tmpls-Err-Page",
			d: resp.NewResponder(
				resp.WithErrTemplate("error.tmpl"),
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(errPage)),
			),
			fns: []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Equal(t, "oops: "+html.EscapeString(session.DefaultErrMsg), w.Body.String())
			},
		},
		{
			name: "Tmpls",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(page)),
				resp.WithTitle("wayfinder"),
			),
			fns: []resp.Fn{resp.Tmpls("page.tmpl"), resp.Data("go")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, htmlMediaType, w.Header().Get("Content-Type"))
				require.Equal(t, "wayfinder|go|", w.Body.String())
			},
		},
		{
			name: "Tmpls-Title-Code",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(page)),
				resp.WithTitle("wayfinder"),
			),
			fns: []resp.Fn{resp.Tmpls("page.tmpl"), resp.Title("Files"), resp.Code(http.StatusAccepted)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusAccepted, w.Code)
				require.Equal(t, "Files||", w.Body.String())
			},
		},
		{
			name: "Layout",
			d: resp.NewResponder(
				resp.WithLayoutTemplate("layout.tmpl"),
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(layout, content)),
			),
			fns: []resp.Fn{resp.Tmpls("content.tmpl"), resp.Layout(), resp.Data("hi")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "<main>hi</main>", w.Body.String())
			},
		},
		{
			name: "Path-Request-ID",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(where)),
			),
			ctx: context.WithValue(context.Background(), wayfinder.RequestIDKey, "abc-123"),
			fns: []resp.Fn{resp.Tmpls("where.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "/files|abc-123", w.Body.String())
			},
		},
		{
			name: "Contact-Err-Page",
			d: resp.NewResponder(
				resp.WithContactErrMsg("Email help@example.com."),
				resp.WithErrTemplate("error.tmpl"),
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(errPage)),
			),
			fns: []resp.Fn{resp.Tmpls("missing.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Equal(t, "oops: Email help@example.com.", w.Body.String())
			},
		},
		{
			name: "Layout-Not-Configured",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(page)),
			),
			fns: []resp.Fn{resp.Layout(), resp.Tmpls("page.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrBadConfig)
				require.Contains(t, err.Error(), "no layout tmpl")
			},
		},
		{
			name: "Flashes",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(page)),
			),
			ctx: flashedCtx(session.Flash{Class: session.FlashInfo, Msg: "hello"}),
			fns: []resp.Fn{resp.Tmpls("page.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "||hello", w.Body.String())
			},
		},
		{
			name: "Bad-Session",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(page)),
			),
			ctx: context.WithValue(context.Background(), wayfinder.SessionKey, session.Stub{}),
			fns: []resp.Fn{resp.Tmpls("page.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrBadConfig)
				require.Contains(t, err.Error(), "can't retrieve session")
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com/files", nil)
			if tc.ctx != nil {
				r = r.WithContext(tc.ctx)
			}
			w := httptest.NewRecorder()
			tc.assert(t, w, r, tc.d.Html(w, r, tc.fns...))
		})
	}
}

func TestResponderSession(t *testing.T) {
	s, err := session.NewStubStore("").GetSession(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Nil(t, err)

	tcs := []struct {
		name        string
		ctx         context.Context
		expectedVal session.Session
		expectedErr error
	}{
		{"Not-Set", context.Background(), session.Session{}, resp.ErrNotFound},
		{"Set-With-Nil", context.WithValue(context.Background(), wayfinder.SessionKey, nil), session.Session{}, resp.ErrNotFound},
		{"Set-With-Stub", context.WithValue(context.Background(), wayfinder.SessionKey, session.Stub{}), session.Session{}, resp.ErrInvalid},
		{"Set-With-Val", context.WithValue(context.Background(), wayfinder.SessionKey, s), s, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := resp.NewResponder()

			// Act
			actual, err := d.Session(tc.ctx)

			// Assert
			require.ErrorIs(t, err, tc.expectedErr)
			require.Equal(t, tc.expectedVal, actual)
		})
	}
}

func BenchmarkResponderRedirect(b *testing.B) {
	bcs := []struct {
		name string
		fns  []resp.Fn
	}{
		{"None", []resp.Fn{}},
		{"With-Code", []resp.Fn{resp.Code(http.StatusFound)}},
		{"Url-Param", []resp.Fn{resp.Url("/result"), resp.Param("id", "7")}},
		{"Param-Url-Redo", []resp.Fn{resp.Param("id", "7"), resp.Url("/result")}},
	}

	for _, bc := range bcs {
		b.Run(bc.name, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
				w := httptest.NewRecorder()
				d := resp.NewResponder()
				d.Redirect(w, r, bc.fns...)
			}
		})
	}
}

func flashedCtx(f session.Flash) context.Context {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, _ := session.NewStubStore("").GetSession(r)
	_ = s.SetFlash(httptest.NewRecorder(), r, f)
	return context.WithValue(context.Background(), wayfinder.SessionKey, s)
}

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger                                  { return testLogger{bytes.NewBuffer(nil)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
