package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/xy-planning-network/wayfinder"
)

var _ encoding.TextMarshaler = LogContext{}

// A LogContext carries what a log message cannot tersely say itself.
type LogContext struct {
	// Caller overrides the call site a Logger reports.
	// Goroutines use it to point at the code that spawned them.
	// Caller is never part of the marshaled text.
	Caller string

	// Data is any information pertinent to the logging event,
	// like the locations a navigation moved between.
	Data map[string]any

	// Error is what went wrong, if anything did.
	Error error

	// Request is the *http.Request being served, if any.
	Request *http.Request
}

// MarshalText encodes the non-zero fields of lc as JSON.
// Values in Data that cannot be encoded as JSON fail it.
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		m["request"] = requestFields(lc.Request)
	}

	return json.Marshal(m)
}

// requestFields picks what identifies r in a log.
func requestFields(r *http.Request) map[string]any {
	fields := map[string]any{
		"method": r.Method,
		"url":    r.URL.String(),
		"header": r.Header,
	}

	if id, ok := r.Context().Value(wayfinder.RequestIDKey).(string); ok && id != "" {
		fields["id"] = id
	}

	if r.Form != nil {
		fields["form"] = r.Form
	}

	return fields
}

// String is lc as JSON, or an empty string if it cannot be marshaled.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

// CurrentCaller is the call site of whoever called the function calling CurrentCaller,
// formatted for LogContext.Caller.
//
//	func spawn() {   <- reported
//		go func() {
//			l.Info("done", &logger.LogContext{Caller: logger.CurrentCaller()})
//		}()
//	}
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return callerString(file, line)
}

func callerString(file string, line int) string {
	return fmt.Sprintf("%s:%d", immediateFilepath(file), line)
}
