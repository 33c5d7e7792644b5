package req_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/req"
)

var (
	missingPath = req.ValidationError{Field: "path", Rule: "required; string"}
	relPath     = req.ValidationError{Field: "path", Got: "files", Rule: "abspath; string"}
)

func TestValidationErrorError(t *testing.T) {
	// Arrange
	var err error = relPath

	// Act
	actual := err.Error()

	// Assert
	require.Equal(t, `field="path" rule="abspath; string" got="files"`, actual)
}

func TestValidationErrorsError(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Nil", nil, ""},
		{"One", req.ValidationErrors{relPath}, `field="path" rule="abspath; string" got="files"`},
		{
			"Many",
			req.ValidationErrors{missingPath, relPath},
			"field=\"path\" rule=\"required; string\" got=\"<nil>\"\nfield=\"path\" rule=\"abspath; string\" got=\"files\"",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.errs.Error())
		})
	}
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Nil", nil, `{}`},
		{"Empty", req.ValidationErrors{}, `{}`},
		{"Errors", req.ValidationErrors{missingPath, relPath}, `{"validationErrors":[
			{"field":"path","got":null,"rule":"required; string"},
			{"field":"path","got":"files","rule":"abspath; string"}
		]}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := json.Marshal(tc.errs)

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(actual))
		})
	}
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{relPath}, wayfinder.ErrNotValid)
}
