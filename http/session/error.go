package session

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/wayfinder"
)

var (
	// ErrNoLocation reports a session whose visitor has not navigated anywhere yet.
	ErrNoLocation = errors.New("no location")

	// ErrNotValid reports a session holding something other than a trail of locations.
	ErrNotValid = fmt.Errorf("trail %w", wayfinder.ErrNotValid)
)
