package template

import "errors"

var ErrNoFiles = errors.New("no template files named")
