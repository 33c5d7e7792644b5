package req

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// customRules extends what "validate" tags can name.
var customRules = map[string]v10.Func{
	"abspath": absPath,
}

// newRules constructs a *v10.Validate naming fields after their "schema" tag,
// so errors name the query parameter a client sent.
func newRules() *v10.Validate {
	v := v10.New()
	for tag, fn := range customRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("schema"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func (p *Parser) check(structPtr any) error {
	var failed v10.ValidationErrors
	switch err := p.rules.Struct(structPtr); {
	case err == nil:
		return nil
	case !errors.As(err, &failed):
		return err
	}

	bad := make(ValidationErrors, len(failed))
	for i, fe := range failed {
		// drop the struct's name
		_, field, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			field = fe.Namespace()
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		bad[i] = ValidationError{Field: field, Got: fe.Value(), Rule: rule + "; " + fe.Type().String()}
	}

	return bad
}

// absPath passes strings holding an absolute URL path, like "/files?id=7", or nothing at all.
func absPath(fl v10.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	s := fl.Field().String()
	switch {
	case s == "":
		return true
	case !strings.HasPrefix(s, "/"), strings.HasPrefix(s, "//"):
		return false
	}

	u, err := url.Parse(s)
	return err == nil && u.Scheme == "" && u.Host == ""
}
