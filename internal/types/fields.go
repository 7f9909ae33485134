package types

import (
	"github.com/shopspring/decimal"
)

// FieldError is returned while decoding a payload field that cannot be parsed
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Price is a decimal accepted as a JSON number or string
type Price struct {
	decimal.Decimal
}

// UnmarshalJSON reports unparsable input as a FieldError on "price"
func (p *Price) UnmarshalJSON(data []byte) error {
	if err := p.Decimal.UnmarshalJSON(data); err != nil {
		return &FieldError{Field: "price", Message: "A valid number is required."}
	}
	return nil
}
