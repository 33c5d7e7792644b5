package logger

import (
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// frames between ColorLogger.write and the code calling a Logger method.
const knownFrames = 2

var modulePathRegex = regexp.MustCompile("wayfinder/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// A SkipLogger is a Logger that scrolls back additional frames
// to find the call site it reports.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levels = [...]struct {
	name  string
	paint func(string, ...any) string
}{
	LogLevelUnk:   {"UNK", color.WhiteString},
	LogLevelDebug: {"DEBUG", color.WhiteString},
	LogLevelInfo:  {"INFO", color.BlueString},
	LogLevelWarn:  {"WARN", color.YellowString},
	LogLevelError: {"ERROR", color.RedString},
	LogLevelFatal: {"FATAL", color.MagentaString},
}

// NewLogLevel parses a level name like "warn" or "WARN".
// Unknown names return LogLevelUnk.
func NewLogLevel(val string) LogLevel {
	val = strings.ToUpper(strings.TrimSpace(val))
	for ll := LogLevelDebug; ll <= LogLevelFatal; ll++ {
		if levels[ll].name == val {
			return ll
		}
	}

	return LogLevelUnk
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || ll > LogLevelFatal {
		ll = LogLevelUnk
	}

	return "[" + levels[ll].name + "]"
}

// ColorLogger writes one colorized line per message through a *log.Logger.
type ColorLogger struct {
	env  string
	l    *log.Logger
	ll   LogLevel
	skip int
}

// New constructs a *ColorLogger.
//
// By default it writes to os.Stdout at LogLevelInfo,
// tagging Sentry events with the ENVIRONMENT env var.
func New(opts ...LoggerOptFn) *ColorLogger {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "DEVELOPMENT"
	}

	l := &ColorLogger{
		env: env,
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddSkip returns a copy of l scrolling back i frames to find the call site.
func (l *ColorLogger) AddSkip(i int) SkipLogger {
	cp := *l
	cp.skip = i
	return &cp
}

func (l *ColorLogger) Debug(msg string, ctx *LogContext) { l.write(LogLevelDebug, msg, ctx) }
func (l *ColorLogger) Error(msg string, ctx *LogContext) { l.write(LogLevelError, msg, ctx) }
func (l *ColorLogger) Fatal(msg string, ctx *LogContext) { l.write(LogLevelFatal, msg, ctx) }
func (l *ColorLogger) Info(msg string, ctx *LogContext)  { l.write(LogLevelInfo, msg, ctx) }
func (l *ColorLogger) Warn(msg string, ctx *LogContext)  { l.write(LogLevelWarn, msg, ctx) }

func (l *ColorLogger) LogLevel() LogLevel { return l.ll }
func (l *ColorLogger) Skip() int          { return l.skip }

// write prints msg at level when l logs at that level,
// prefixed by the call site and followed by ctx, if any.
func (l *ColorLogger) write(level LogLevel, msg string, ctx *LogContext) {
	if level < l.ll {
		return
	}

	site := ""
	if ctx != nil && ctx.Caller != "" {
		site = ctx.Caller
	} else if _, file, line, ok := runtime.Caller(knownFrames + l.skip); ok {
		site = callerString(file, line)
	}

	line := levels[level].paint("%s %s '%s'", level, site, msg)
	if ctx == nil {
		l.l.Println(line)
		return
	}

	l.l.Println(line, "log_context:", ctx)
}

// immediateFilepath trims file down to the path inside this module,
// or, when outside of it, to the file and the directory it is in.
//
//	/home/dev/wayfinder/nav/router.go => wayfinder/nav/router.go
//	/home/dev/my-app/main.go => my-app/main.go
func immediateFilepath(file string) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return match
	}

	dir, file := path.Split(file)
	return path.Base(dir) + "/" + file
}
