package req

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
	v10 "github.com/go-playground/validator/v10"
)

// A Parser decodes query parameters into structs and checks them against their rules.
// It is safe for concurrent use.
type Parser struct {
	rules  *v10.Validate
	schema *schema.Decoder
}

func NewParser() *Parser {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &Parser{rules: newRules(), schema: dec}
}

// ParseQueryParams fills structPtr from params and then checks the rules its "validate" tags set.
//
// Values that cannot decode or break a rule return as ValidationErrors.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.decode(params, structPtr); err != nil {
		return fmt.Errorf("wayfinder/http/req: decoding query params: %w", err)
	}

	if err := p.check(structPtr); err != nil {
		return fmt.Errorf("wayfinder/http/req: checking %T: %w", structPtr, err)
	}

	return nil
}

// Query is ParseQueryParams for a struct of type T.
func Query[T any](p *Parser, params url.Values) (T, error) {
	var q T
	err := p.ParseQueryParams(params, &q)
	return q, err
}
