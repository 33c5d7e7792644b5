package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/nav"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components New assembles from the others
// and thus an OptFollowup can be returned in order to be called once they exist.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithServer is an example of the second.
// The *http.Server it sets can only serve the *router.Router once it is assembled.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// defaultOpts reads configuration from environment variables.
// RangerOptions passed to New overwrite these.
func defaultOpts() []RangerOption {
	return []RangerOption{
		WithEnv(""),
		WithTitle(""),
		WithBaseURL(""),
		WithGuardTimeout(wayfinder.EnvVarOrDuration(navGuardTimeoutEnvVar, nav.DefaultGuardTimeout)),
		WithMetrics(wayfinder.EnvVarOrBool(metricsEnabledEnvVar, true)),
		WithMaintenanceMode(wayfinder.EnvVarOrBool(maintModeEnvVar, false)),
	}
}

// WithBaseURL parses u as the URL the app is served at,
// or, reads it from the BASE_URL environment variable.
//
// If both fail, http://localhost:3000 is used.
func WithBaseURL(u string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if u == "" {
			rng.url = wayfinder.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
			return nil, nil
		}

		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a URL: %s", wayfinder.ErrNotValid, u, err)
		}

		rng.url = parsed
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the wayfinder app.
// Cancelling it stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	e := wayfinder.Environment(envVar)
	return func(rng *Ranger) (OptFollowup, error) {
		if err := e.Valid(); err == nil {
			rng.env = e
			return nil, nil
		}

		rng.env = wayfinder.EnvVarOrEnv(environmentEnvVar, wayfinder.Development)
		return nil, nil
	}
}

// WithFS sets the filesystem templates and static assets are looked up in
// before the embedded defaults.
//
// Without it, the current working directory is used.
func WithFS(files fs.FS) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.files = files
		return nil, nil
	}
}

// WithGuards registers guards every navigation runs through, after the title guard.
func WithGuards(guards ...nav.Guard) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.guards = append(rng.guards, guards...)
		return nil, nil
	}
}

// WithGuardTimeout sets how long a navigation waits on each guard.
func WithGuardTimeout(d time.Duration) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.guardTimeout = d
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the wayfinder app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithMaintenanceMode funnels every request to MaintModeHandler when on is true.
func WithMaintenanceMode(on bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.maintMode = on
		return nil, nil
	}
}

// WithMetrics toggles collecting metrics and serving them at MetricsPath.
func WithMetrics(on bool) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.metricsOn = on
		return nil, nil
	}
}

// WithServer exposes the *http.Server to the wayfinder app.
// Its Handler is replaced with the app's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: no server", wayfinder.ErrMissingData)
		}

		return func() error {
			rng.srv = s
			rng.srv.Handler = rng.Router
			return nil
		}, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the wayfinder app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		return nil, nil
	}
}

// WithTitle sets the document title shown before any navigation sets one,
// or, reads it from the APP_TITLE environment variable.
//
// If both are empty, pages.DefaultTitle is used.
func WithTitle(title string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if title == "" {
			title = wayfinder.EnvVarOrString(AppTitleEnvVar, defaultTitle)
		}

		rng.title = title
		return nil, nil
	}
}
