/*
Package logger provides logging functionality to a wayfinder app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] wayfinder/nav/router.go:143 'committed navigation' log_context: {"data":{"to":"/files"}}

The log context is a JSON-encoded [*LogContext].

# SentryLogger

When a Sentry DSN is available, [NewSentryLogger] wraps a [ColorLogger]
and additionally ships [LogContext.Error] to Sentry for Warn, Error and Fatal messages.
*/
package logger
