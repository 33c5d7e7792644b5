package nav

import "errors"

var (
	ErrAborted      = errors.New("navigation aborted")
	ErrBadConfig    = errors.New("bad config")
	ErrGuardPanic   = errors.New("navigation guard panicked")
	ErrGuardTimeout = errors.New("navigation guard timed out")
	ErrLoad         = errors.New("could not load view")
	ErrNoHistory    = errors.New("no history entry")
	ErrNotFound     = errors.New("no route matched")
	ErrRedirectLoop = errors.New("too many redirects")
	ErrSuperseded   = errors.New("navigation superseded")
)
