package domain

import (
	"fmt"
	"strings"
)

// Currency is the currency code of a Money value. Norwegian kroner is the
// only supported currency.
type Currency struct {
	code string
}

// DefaultCurrency is Norwegian kroner.
var DefaultCurrency = Currency{code: "kr"}

func NewCurrency(code string) (Currency, error) {
	if strings.ToLower(code) != DefaultCurrency.code {
		return Currency{}, fmt.Errorf("%w: %q, only %q is supported", ErrInvalidCurrency, code, DefaultCurrency.code)
	}
	return Currency{code: strings.ToLower(code)}, nil
}

func (c Currency) Value() string {
	if c.code == "" {
		return DefaultCurrency.code
	}
	return c.code
}

func (c Currency) String() string {
	return c.Value()
}
