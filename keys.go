package wayfinder

// A Key names a value stashed in the context.Context of an HTTP request.
type Key string

const (
	// IpAddrKey holds the client IP address middleware.InjectIPAddress found.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey holds the UUID middleware.RequestID assigned the request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey holds the session.Session middleware.InjectSession loaded,
	// which remembers the location a visitor last navigated to.
	SessionKey Key = "SessionKey"
)

func (k Key) String() string { return "wayfinder context key: " + string(k) }
