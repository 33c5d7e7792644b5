/*
Package router routes the HTTP requests of a wayfinder app, wrapping gorilla/mux.

Endpoints register as [Route] values. Each is wrapped in the middleware stack every request
passes through, any middleware shared by the group it registers with, and its own.
The page routes of the navigation table, the JSON API subrouter and the metrics endpoint
all register this way; requests no Route matches go to the handler set by
[*Router.HandleNotFound], where navigation guards still run.
*/
package router
