/*
Package ranger initializes and manages a wayfinder app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New], passing in any [RangerOption].

[New] assembles the navigation table of the app's views,
the [pages.Handler] navigating between them on every request,
and the router serving them alongside a small JSON API, static assets and metrics.

[*Ranger.Guide] begins a wayfinder app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the wayfinder web server.

Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed in with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a wayfinder app through environment variables
and by passing [RangerOption] to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: the document title shown before any navigation sets one; default: wayfinder
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: an email address end users can reach out to when something goes wrong
  - ENVIRONMENT: the environment the application is running in; cf. [wayfinder.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: whether to respond to every request with [MaintModeHandler]; default: false
  - METRICS_ENABLED: whether to collect metrics and serve them at /metrics; default: true
  - NAV_GUARD_TIMEOUT: how long - as understood by [time.ParseDuration] - a navigation waits on each guard; default: 5s
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the DSN errors are reported to Sentry with
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 10s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_REDIS_URI: the address of a Redis server to store sessions in instead of cookies
  - SESSION_REDIS_PASSWORD: the password for authenticating to that Redis server
*/
package ranger
