package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidInputError reports a monetary input outside its allowed range
type InvalidInputError struct {
	Field string
	Value decimal.Decimal
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s must not be negative (got %s)", e.Field, e.Value.String())
}
