package nav

import "net/url"

// A Location is a navigation target after resolving it against a Table.
type Location struct {
	Path     string
	Query    url.Values
	Fragment string

	// Route is the Route matching Path or nil if none did.
	Route *Route
}

// Matched asserts whether a Route matched the Location.
func (l Location) Matched() bool { return l.Route != nil }

// Name returns the name of the matched Route or an empty string.
func (l Location) Name() string {
	if l.Route == nil {
		return ""
	}
	return l.Route.Name
}

// String formats the Location as a path, including its query and fragment.
func (l Location) String() string {
	s := l.Path
	if q := l.Query.Encode(); q != "" {
		s += "?" + q
	}

	if l.Fragment != "" {
		s += "#" + l.Fragment
	}

	return s
}
