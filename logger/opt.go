package logger

import "log"

// A LoggerOptFn configures a *ColorLogger as New constructs it.
type LoggerOptFn func(*ColorLogger)

// WithEnv names the environment Sentry events are tagged with.
func WithEnv(env string) LoggerOptFn { return func(l *ColorLogger) { l.env = env } }

// WithLevel sets the lowest level a *ColorLogger writes.
// LogLevelUnk keeps the default.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ColorLogger) {
		if level != LogLevelUnk {
			l.ll = level
		}
	}
}

// WithLogger sets where a *ColorLogger writes.
func WithLogger(log *log.Logger) LoggerOptFn { return func(l *ColorLogger) { l.l = log } }

// WithSkip scrolls back skip more frames to find the call site,
// for wrappers logging on behalf of their callers.
func WithSkip(skip int) LoggerOptFn { return func(l *ColorLogger) { l.skip = skip } }
