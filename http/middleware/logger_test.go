package middleware_test

import (
	"bytes"
	"fmt"

	"github.com/xy-planning-network/wayfinder/logger"
)

// recorder keeps the messages logged through it, ignoring their context.
type recorder struct{ *bytes.Buffer }

func newLogger() recorder { return recorder{new(bytes.Buffer)} }

func (rec recorder) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(rec, msg) }
func (rec recorder) Error(msg string, _ *logger.LogContext) { fmt.Fprint(rec, msg) }
func (rec recorder) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(rec, msg) }
func (rec recorder) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(rec, msg) }
func (rec recorder) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(rec, msg) }
func (rec recorder) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
