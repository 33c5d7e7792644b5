package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/wayfinder"
)

func (p *Parser) decode(params url.Values, structPtr any) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", wayfinder.ErrBadAny, structPtr)
	}

	return fromSchema(p.schema.Decode(structPtr, params))
}

// fromSchema sorts what *schema.Decoder reports into bad values the client sent,
// returned as ValidationErrors, and struct definitions the decoder cannot serve.
func fromSchema(err error) error {
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", wayfinder.ErrBadFormat, err)
	}

	var bad ValidationErrors
	for _, e := range multi {
		var (
			conv    schema.ConversionError
			empty   schema.EmptyFieldError
			unknown schema.UnknownKeyError
		)

		switch {
		case errors.As(e, &conv):
			// Index is -1 outside of slices
			bad = append(bad, ValidationError{
				Field: conv.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, conv.Index)),
				Rule:  "must be " + conv.Type.String(),
			})
		case errors.As(e, &unknown):
			bad = append(bad, ValidationError{Field: unknown.Key, Got: "value is set", Rule: "unexpected key should not be set"})
		case errors.As(e, &empty):
			return fmt.Errorf(`%w: require fields with "validate" tags, not "schema" tags`, wayfinder.ErrNotImplemented)
		case strings.HasPrefix(e.Error(), "schema: converter not found"):
			return fmt.Errorf("%w: no converter for %s", wayfinder.ErrNotImplemented, e)
		default:
			return fmt.Errorf("%w: %s", wayfinder.ErrUnexpected, e)
		}
	}

	return bad
}
