package nav

import "context"

// A Guard is called before a navigation commits.
//
// A Guard must call next exactly once.
// Calling next with no options lets the navigation proceed to the next Guard.
// next may be called from another goroutine.
type Guard func(ctx context.Context, to, from Location, next Next)

// Next continues, redirects, or aborts the navigation a Guard was called for.
type Next func(opts ...NextOpt)

// A NextOpt changes how a navigation continues after a Guard.
type NextOpt func(*decision)

type decision struct {
	abort    error
	failed   error
	redirect string
}

// Abort stops the navigation; it fails with ErrAborted wrapping err.
func Abort(err error) NextOpt {
	return func(d *decision) {
		if err == nil {
			err = context.Canceled
		}
		d.abort = err
	}
}

// Redirect abandons the current target and restarts the Guard chain at loc.
// An empty loc proceeds as if no option were given.
func Redirect(loc string) NextOpt {
	return func(d *decision) {
		d.redirect = loc
	}
}

// An AfterHook is called once a navigation has finished,
// err being nil only if the navigation committed.
type AfterHook func(to, from Location, err error)

// TitleGuard sets the title of doc to the title of the Route being navigated to.
// Targets with no matched Route, or matched to a Route without a title,
// leave the title unchanged, as do navigations already cancelled.
func TitleGuard(doc Document) Guard {
	return func(ctx context.Context, to, _ Location, next Next) {
		if ctx.Err() == nil && to.Route != nil && to.Route.HasTitle() {
			doc.SetTitle(to.Route.Title)
		}

		next()
	}
}
