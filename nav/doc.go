/*
Package nav navigates between the views of a wayfinder app.

# Routes

A [Route] maps a path to a [View].
The [View] is not constructed until the [Route] is first navigated to:
its [Loader] runs then, and the [Table] holding the [Route] keeps the result
for every later navigation. A [Table] is built once with [NewTable] and never changes.

# Router

A [Router] holds a [Table], the current [Location], a [History] and a [Document].
[*Router.Push], [*Router.Replace], [*Router.PushNamed] and [*Router.Go]
each run a navigation:

  - the requested location is resolved against the [Table]
  - every [Guard] is called in the order registered; each must call next exactly once
  - the [View] of the matched [Route] is loaded
  - the [History] records the location and it becomes current

[New] registers [TitleGuard] first, so the [Document] title follows the title of each
[Route] navigated to. A [Route] without a title leaves the title as it was.

A location no [Route] matches still runs every [Guard], which may redirect it,
but never commits: the navigation fails with [ErrNotFound].
A [Guard] that never calls next fails the navigation with [ErrGuardTimeout].
Starting a navigation while another is in flight supersedes the earlier one,
which fails with [ErrSuperseded].
*/
package nav
