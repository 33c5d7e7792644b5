package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/wayfinder"
)

// A ValidationError describes a query parameter whose value breaks a rule.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("field=%q rule=%q got=%q", ve.Field, ve.Rule, fmt.Sprint(ve.Got))
}

// ValidationErrors are every ValidationError found in a request.
// They encode to JSON under a "validationErrors" key.
type ValidationErrors []ValidationError

func (ves ValidationErrors) Error() string {
	var b strings.Builder
	for i, ve := range ves {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(ve.Error())
	}

	return b.String()
}

func (ves ValidationErrors) MarshalJSON() ([]byte, error) {
	type alias []ValidationError
	return json.Marshal(struct {
		Errs alias `json:"validationErrors,omitempty"`
	}{alias(ves)})
}

func (ValidationErrors) Unwrap() error { return wayfinder.ErrNotValid }
