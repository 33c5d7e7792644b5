package wayfinder

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is where a wayfinder app runs.
// It decides defaults like whether session keys may be generated and HTTPS forced.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

// Valid returns ErrNotValid unless e is one of the Environment constants.
func (e Environment) Valid() error {
	switch e {
	case Development, Production, Review, Staging, Testing:
		return nil
	}

	return ErrNotValid
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsReview() bool      { return e == Review }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }

// IsDeployed reports whether e serves real visitors, rather than a developer or a test run.
func (e Environment) IsDeployed() bool { return e.Valid() == nil && !e.IsDevelopment() && !e.IsTesting() }

// envVarOr reads key and parses it, falling back on def when key is unset or unparsable.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}

	val, err := parse(raw)
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrBool reads key as "true" or "false", in any case, or returns def.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, ErrNotValid
	})
}

// EnvVarOrDuration reads key as a [time.Duration], like "5s", or returns def.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment], in any case, or returns def.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(s string) (Environment, error) {
		env := Environment(strings.ToUpper(s))
		return env, env.Valid()
	})
}

// EnvVarOrInt reads key as an int or returns def.
func EnvVarOrInt(key string, def int) int { return envVarOr(key, def, strconv.Atoi) }

// EnvVarOrString reads key or returns def.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(s string) (string, error) { return s, nil })
}

// EnvVarOrURL reads key as an absolute URL or parses def into one.
// A def without a path gets "/" as its path.
// If def cannot be parsed, EnvVarOrURL returns nil.
func EnvVarOrURL(key, def string) *url.URL {
	defURL, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}

	if defURL.Path == "" {
		defURL.Path = "/"
	}

	return envVarOr(key, defURL, url.ParseRequestURI)
}
