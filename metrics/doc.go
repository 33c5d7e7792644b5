/*
Package metrics collects Prometheus metrics about navigations and the HTTP requests driving them.

Metrics collected:
  - wayfinder_navigations_total: Counter of navigations by route and outcome
  - wayfinder_view_loads_total: Counter of view loads by route and outcome
  - wayfinder_http_requests_total: Counter of HTTP requests by method and status code
  - wayfinder_http_request_duration_seconds: Histogram of HTTP request duration

Wire a *Metrics into a nav.Router with AfterHook, around a nav.Loader with Loader,
and around an http.Handler with Middleware:

	m := metrics.New()
	r.AfterEach(m.AfterHook())
*/
package metrics
