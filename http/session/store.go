package session

import (
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/wayfinder"
)

const (
	defaultMaxAge  = 86400 // 1 day
	redisPoolConns = 10
)

func init() { gob.Register(Flash{}) }

// A SessionStorer finds the Session of an *http.Request.
type SessionStorer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Config names the sessions of an app and carries the keys securing them.
type Config struct {
	Env wayfinder.Environment

	// SessionName names the cookie sessions are kept in or keyed by.
	SessionName string

	// AuthKey and EncryptKey are hex-encoded.
	AuthKey    string
	EncryptKey string
}

// A Service keeps sessions in a gorilla.Store, in cookies by default.
type Service struct {
	authKey    []byte
	encryptKey []byte
	env        wayfinder.Environment
	maxAge     int
	name       string
	store      gorilla.Store
}

// A ServiceOpt configures a *Service as NewStoreService constructs it.
type ServiceOpt func(*Service) error

// NewStoreService constructs a Service from cfg.
// Without an option like WithRedis choosing where sessions are kept, cookies keep them.
func NewStoreService(cfg Config, opts ...ServiceOpt) (Service, error) {
	if err := cfg.Env.Valid(); err != nil {
		return Service{}, fmt.Errorf("%w: %q is not an environment", wayfinder.ErrBadConfig, cfg.Env)
	}

	if cfg.SessionName == "" {
		return Service{}, fmt.Errorf("%w: sessions need a name", wayfinder.ErrBadConfig)
	}

	ak, err := hex.DecodeString(cfg.AuthKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: authentication key is not valid: %s", wayfinder.ErrBadConfig, err)
	}

	ek, err := hex.DecodeString(cfg.EncryptKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: encryption key is not valid: %s", wayfinder.ErrBadConfig, err)
	}

	s := Service{authKey: ak, encryptKey: ek, env: cfg.Env, maxAge: defaultMaxAge, name: cfg.SessionName}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return Service{}, err
		}
	}

	if s.store == nil {
		_ = WithCookie()(&s)
	}

	return s, nil
}

// GetSession finds the Session of r, or starts a new one.
// A session that cannot be decoded returns as a new Session along with the error.
func (s Service) GetSession(r *http.Request) (Session, error) {
	gs, err := s.store.Get(r, s.name)
	return Session{s: gs}, err
}

// cookieOptions applies what every store shares to opts.
func (s *Service) cookieOptions(opts *gorilla.Options) {
	opts.HttpOnly = true
	opts.Secure = s.env.IsDeployed()
	opts.SameSite = http.SameSiteLaxMode
}

// WithCookie keeps sessions in cookies.
// While testing, cookies are signed but not encrypted.
func WithCookie() ServiceOpt {
	return func(s *Service) error {
		keys := [][]byte{s.authKey, s.encryptKey}
		if s.env.IsTesting() {
			keys = keys[:1]
		}

		c := gorilla.NewCookieStore(keys...)
		s.cookieOptions(c.Options)
		c.MaxAge(s.maxAge)
		s.store = c
		return nil
	}
}

// WithMaxAge sets how many seconds a session lives, one day by default.
// Pass it before the option choosing where sessions are kept.
func WithMaxAge(secs int) ServiceOpt {
	return func(s *Service) error {
		s.maxAge = secs
		return nil
	}
}

// WithRedis keeps sessions in the Redis server at uri, authenticating with pass if it is set.
func WithRedis(uri, pass string) ServiceOpt {
	return func(s *Service) error {
		rs, err := redistore.NewRediStore(redisPoolConns, "tcp", uri, pass, s.authKey, s.encryptKey)
		if err != nil {
			return fmt.Errorf("%w: failed initializing Redis: %s", wayfinder.ErrBadConfig, err)
		}

		s.cookieOptions(rs.Options)
		rs.SetMaxAge(s.maxAge)
		s.store = rs
		return nil
	}
}

// A StubStore is a SessionStorer whose every request shares one in-memory session.
type StubStore struct {
	s *gorilla.Session
}

// NewStubStore constructs a *StubStore whose session last navigated to loc,
// unless loc is empty.
func NewStubStore(loc string) *StubStore {
	st := new(StubStore)
	st.s = gorilla.NewSession(st, "stub")
	if loc != "" {
		st.s.Values[trailKey] = []string{loc}
	}

	return st
}

func (st *StubStore) GetSession(*http.Request) (Session, error) { return Session{st.s}, nil }

func (st *StubStore) Get(*http.Request, string) (*gorilla.Session, error) { return st.s, nil }
func (st *StubStore) New(*http.Request, string) (*gorilla.Session, error) { return st.s, nil }
func (st *StubStore) Save(*http.Request, http.ResponseWriter, *gorilla.Session) error {
	return nil
}
