package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// MaxTrail is how many locations a Session remembers.
const MaxTrail = 10

// trailKey stores the locations a visitor navigated to, oldest first.
const trailKey = "wayfinder-trail"

// A Sessioner is what handlers need from a visitor's session.
type Sessioner interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
	LastLocation() (string, error)
	SetLastLocation(w http.ResponseWriter, r *http.Request, loc string) error
	Trail() []string
}

var (
	_ Sessioner = Session{}
	_ Sessioner = Stub{}
)

// A Session is a visitor's gorilla session:
// the flash messages waiting for them and the trail of locations they navigated to.
type Session struct {
	s *gorilla.Session
}

// Delete expires the session.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes pops the flash messages waiting in the session.
// The session is saved when any were waiting; if that fails, nil returns.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	var flashes []Flash
	for _, raw := range s.s.Flashes() {
		if f, ok := raw.(Flash); ok {
			flashes = append(flashes, f)
		}
	}

	if len(flashes) == 0 {
		return []Flash{}
	}

	if err := s.Save(w, r); err != nil {
		return nil
	}

	return flashes
}

// SetFlash queues flash for the next page the visitor sees.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// LastLocation is the location the visitor last navigated to.
// Without one, ErrNoLocation returns.
// ErrNotValid returns when something other than a trail was stored.
func (s Session) LastLocation() (string, error) {
	trail, err := s.trail()
	if err != nil {
		return "", err
	}

	if len(trail) == 0 {
		return "", ErrNoLocation
	}

	return trail[len(trail)-1], nil
}

// SetLastLocation adds loc to the end of the trail, dropping the oldest location past MaxTrail.
// Navigating to the last location again does not repeat it.
func (s Session) SetLastLocation(w http.ResponseWriter, r *http.Request, loc string) error {
	trail, _ := s.trail()
	if n := len(trail); n == 0 || trail[n-1] != loc {
		trail = append(trail, loc)
	}

	if len(trail) > MaxTrail {
		trail = trail[len(trail)-MaxTrail:]
	}

	s.s.Values[trailKey] = trail
	return s.Save(w, r)
}

// Trail is a copy of the locations the visitor navigated to, oldest first.
func (s Session) Trail() []string {
	trail, _ := s.trail()
	return append([]string(nil), trail...)
}

func (s Session) trail() ([]string, error) {
	raw, ok := s.s.Values[trailKey]
	if !ok {
		return nil, nil
	}

	trail, ok := raw.([]string)
	if !ok {
		return nil, ErrNotValid
	}

	return trail, nil
}

// Save writes the session to its store.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// A Stub is a Sessioner remembering nothing.
type Stub struct{}

func (Stub) Flashes(http.ResponseWriter, *http.Request) []Flash                { return nil }
func (Stub) SetFlash(http.ResponseWriter, *http.Request, Flash) error         { return nil }
func (Stub) LastLocation() (string, error)                                    { return "", ErrNoLocation }
func (Stub) SetLastLocation(http.ResponseWriter, *http.Request, string) error { return nil }
func (Stub) Trail() []string                                                  { return nil }
