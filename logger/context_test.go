package logger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	files := httptest.NewRequest(http.MethodGet, "https://example.com/files", nil)
	files.Header.Set("Accept", "text/html")

	result := httptest.NewRequest(http.MethodGet, "https://example.com/result?id=7", nil)
	result = result.WithContext(context.WithValue(result.Context(), wayfinder.RequestIDKey, "abc-123"))

	tcs := []struct {
		name     string
		lc       logger.LogContext
		expected string
	}{
		{"Zero-Value", logger.LogContext{}, `{}`},
		{"Caller-Left-Out", logger.LogContext{Caller: "pages/handler.go:40", Data: map[string]any{"to": "/files"}}, `{"data":{"to":"/files"}}`},
		{"Error", logger.LogContext{Error: errors.New("guard timed out")}, `{"error":"guard timed out"}`},
		{
			"Request",
			logger.LogContext{Request: files},
			`{"request":{"method":"GET","url":"https://example.com/files","header":{"Accept":["text/html"]}}}`,
		},
		{
			"Request-ID",
			logger.LogContext{Request: result, Data: map[string]any{"to": "/result?id=7"}},
			`{"data":{"to":"/result?id=7"},"request":{"id":"abc-123","method":"GET","url":"https://example.com/result?id=7","header":{}}}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			b, err := tc.lc.MarshalText()

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(b))
		})
	}
}

func TestLogContextString(t *testing.T) {
	tcs := []struct {
		name     string
		lc       logger.LogContext
		expected string
	}{
		{"Encodes", logger.LogContext{Error: errors.New("oops")}, `{"error":"oops"}`},
		{"Cannot-Encode", logger.LogContext{Data: map[string]any{"ch": make(chan int)}}, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.lc.String())
		})
	}
}

func TestCurrentCaller(t *testing.T) {
	// Act
	var actual string
	func() { actual = logger.CurrentCaller() }()

	// Assert
	require.Regexp(t, `logger/context_test\.go:\d+$`, actual)
}

func TestLogContextJSONRoundTrip(t *testing.T) {
	// Arrange
	lc := logger.LogContext{Data: map[string]any{"from": "/", "to": "/files"}}

	// Act
	var m map[string]map[string]string
	err := json.Unmarshal([]byte(lc.String()), &m)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "/files", m["data"]["to"])
}
