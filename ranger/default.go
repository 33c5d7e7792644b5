package ranger

import (
	"context"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/middleware"
	"github.com/xy-planning-network/wayfinder/http/pages"
	"github.com/xy-planning-network/wayfinder/http/resp"
	"github.com/xy-planning-network/wayfinder/http/router"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/metrics"
)

const (
	// App metadata
	AppTitleEnvVar  = "APP_TITLE"
	BaseURLEnvVar   = "BASE_URL"
	ContactUsEnvVar = "CONTACT_US_EMAIL"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLevel = "INFO"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Navigation defaults
	navGuardTimeoutEnvVar = "NAV_GUARD_TIMEOUT"

	// Metrics defaults
	metricsEnabledEnvVar = "METRICS_ENABLED"
	MetricsPath          = "/metrics"

	// Maintenance mode
	maintModeEnvVar = "MAINTENANCE_MODE"
	maintTmpl       = "tmpl/maintenance.tmpl"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar     = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar  = "SESSION_ENCRYPTION_KEY"
	sessionRedisURIEnvVar    = "SESSION_REDIS_URI"
	sessionRedisPassEnvVar   = "SESSION_REDIS_PASSWORD"
	defaultSessionMaxAgeSecs = 3600 * 24 * 7
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultLogger constructs a logger.Logger for the app.
// When SENTRY_DSN is set, errors are shipped to Sentry as well.
func defaultLogger(env wayfinder.Environment) logger.Logger {
	cl := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(logger.NewLogLevel(wayfinder.EnvVarOrString(logLevelEnvVar, defaultLogLevel))),
	)

	dsn := os.Getenv(sentryDsnEnvVar)
	if dsn == "" {
		return cl
	}

	l := logger.NewSentryLogger(cl, dsn)
	l.Debug("using SentryLogger for app logger", nil)
	return l
}

// defaultParser constructs a *template.Parse to be used
// when responding to HTTP requests with [*resp.Responder.Html].
//
// defaultParser makes available these functions in an HTML template:
//
//   - "assetURI"
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "nonce" and "rootUrl", once a *resp.Responder uses the parser
func defaultParser(env wayfinder.Environment, files fs.FS) *template.Parse {
	p := template.NewParser(template.WithFS(files))
	p.AddFn(template.Env(env))
	p.AddFn(template.AssetURI(env, template.NewAssetFS(files)))
	p.AddFn("isDevelopment", env.IsDevelopment)
	p.AddFn("isProduction", env.IsProduction)

	return p
}

// defaultResponder configures the *resp.Responder to be used by http.Handlers.
func defaultResponder(l logger.Logger, u *url.URL, p template.Parser, title, contact string) *resp.Responder {
	args := []resp.ResponderOptFn{
		resp.WithErrTemplate(pages.ErrTmpl),
		resp.WithLayoutTemplate(pages.LayoutTmpl),
		resp.WithLogger(l),
		resp.WithNotFoundTemplate(pages.NotFoundTmpl),
		resp.WithParser(p),
		resp.WithRootUrl(strings.TrimSuffix(u.String(), "/")),
		resp.WithTitle(title),
	}

	if contact != "" {
		args = append(args, resp.WithContactErrMsg(fmt.Sprintf("%s Reach us at %s.", session.DefaultErrMsg, contact)))
	}

	return resp.NewResponder(args...)
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - SESSION_REDIS_URI, storing sessions in Redis instead of cookies when set
//   - SESSION_REDIS_PASSWORD
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
// In development and testing, missing keys are generated,
// so sessions do not outlive the process.
func defaultSessionStore(env wayfinder.Environment, appName string, l logger.Logger) (session.SessionStorer, error) {
	cfg := session.Config{
		AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
		EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
		Env:         env,
		SessionName: sessionName(appName),
	}

	if cfg.AuthKey == "" || cfg.EncryptKey == "" {
		if env.IsDeployed() {
			return nil, fmt.Errorf("%w: %s and %s are required", wayfinder.ErrBadConfig, SessionAuthKeyEnvVar, SessionEncryptKeyEnvVar)
		}

		l.Warn("generating session keys, sessions will not survive a restart", nil)
		cfg.AuthKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		cfg.EncryptKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	args := []session.ServiceOpt{session.WithMaxAge(defaultSessionMaxAgeSecs)}
	if uri := os.Getenv(sessionRedisURIEnvVar); uri != "" {
		args = append(args, session.WithRedis(uri, os.Getenv(sessionRedisPassEnvVar)))
	} else {
		args = append(args, session.WithCookie())
	}

	return session.NewStoreService(cfg, args...)
}

var (
	sessionNameStrip = regexp.MustCompile(`[,':]`)
	sessionNameSpace = regexp.MustCompile(`\s+`)
)

// sessionName derives the name sessions are stored under from the app's name.
func sessionName(appName string) string {
	appName = strings.ToLower(appName)
	appName = sessionNameStrip.ReplaceAllString(appName, "")
	appName = sessionNameSpace.ReplaceAllString(appName, "-")

	return "wayfinder-" + appName
}

// defaultMetrics registers the app's collectors with a fresh registry.
func defaultMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.New(metrics.WithRegistry(reg)), reg
}

// defaultRouter constructs a *router.Router to be used by the web server
// with the middlewares applied to every request.
func defaultRouter(env wayfinder.Environment, files fs.FS, l logger.Logger, mws []middleware.Adapter) *router.Router {
	r := router.New(env, template.NewAssetFS(files), middleware.LogRequest(l))
	r.OnEveryRequest(mws...)

	return r
}

// defaultServer constructs a default *http.Server.
func defaultServer(ctx context.Context) *http.Server {
	port := wayfinder.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  wayfinder.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  wayfinder.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: wayfinder.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
