package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/wayfinder"
)

// A SentryLogger writes through the SkipLogger it wraps
// and reports the errors of warnings, errors and fatal messages to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger initializes the Sentry client for dsn and wraps cl.
// If the client cannot be initialized, cl returns after logging why.
func NewSentryLogger(cl *ColorLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  cl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		cl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return cl
	}

	return &SentryLogger{l: cl.AddSkip(1 + cl.Skip())}
}

func (sl *SentryLogger) AddSkip(i int) SkipLogger { return &SentryLogger{l: sl.l.AddSkip(i)} }
func (sl *SentryLogger) LogLevel() LogLevel        { return sl.l.LogLevel() }
func (sl *SentryLogger) Skip() int                 { return sl.l.Skip() }

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.report(LogLevelWarn, ctx)
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.report(LogLevelError, ctx)
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	sl.report(LogLevelFatal, ctx)
}

var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// report captures ctx.Error in Sentry, along with ctx's data and request,
// when sl logs at level.
func (sl *SentryLogger) report(level LogLevel, ctx *LogContext) {
	if level < sl.LogLevel() || ctx == nil || ctx.Error == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevels[level])

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		if r := ctx.Request; r != nil {
			scope.SetRequest(r)
			if id, ok := r.Context().Value(wayfinder.RequestIDKey).(string); ok {
				scope.SetTag("request_id", id)
			}
		}

		sentry.CaptureException(ctx.Error)
	})
}
