package resp

import "errors"

var (
	// ErrBadConfig reports a Responder missing an option a response needs.
	ErrBadConfig = errors.New("bad config")

	// ErrDone reports the request's context ended before a response was written.
	ErrDone = errors.New("request ctx done")

	ErrInvalid     = errors.New("invalid")
	ErrMissingData = errors.New("missing data")
	ErrNotFound    = errors.New("not found")
)
