package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a fraction (0.05 for five percent) displayed as "5.00 %".
type Percent struct {
	fraction decimal.Decimal
}

func NewPercent(fraction decimal.Decimal) Percent {
	return Percent{fraction: fraction}
}

// ParsePercent reads a fraction written as a plain number, e.g. "0.05".
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Percent{}, fmt.Errorf("%w: %q is not a number", ErrInvalidPercent, s)
	}
	return Percent{fraction: d}, nil
}

func (p Percent) Fraction() decimal.Decimal {
	return p.fraction
}

// Value is the fraction times 100 rounded to two decimals, suffixed " %".
func (p Percent) Value() string {
	return p.fraction.Mul(hundred).StringFixed(2) + " %"
}

func (p Percent) String() string {
	return p.Value()
}

// Percentage is a value already written in percent, as typed by a user or
// scraped from a page: "5,5 %", "4.25%", "3 %".
type Percentage struct {
	value   string
	percent decimal.Decimal
}

var percentageCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "%", "")

func NewPercentage(text string) (Percentage, error) {
	stripped := strings.NewReplacer(",", "", ".", "").Replace(percentageCleaner.Replace(text))
	if _, err := decimal.NewFromString(stripped); err != nil {
		return Percentage{}, fmt.Errorf("%w: %q cannot be read as a percentage", ErrInvalidPercentage, text)
	}
	normalized := strings.ReplaceAll(percentageCleaner.Replace(text), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Percentage{}, fmt.Errorf("%w: %q cannot be read as a percentage", ErrInvalidPercentage, text)
	}
	return Percentage{value: normalized, percent: d}, nil
}

// Value returns the normalized percentage, e.g. "5.5 %".
func (p Percentage) Value() string {
	return p.value + " %"
}

func (p Percentage) String() string {
	return p.Value()
}

// Decimal returns the number in percent (5.5 for "5,5 %").
func (p Percentage) Decimal() decimal.Decimal {
	return p.percent
}

// Percent converts the percentage into a fraction based Percent.
func (p Percentage) Percent() Percent {
	return NewPercent(p.percent.Div(hundred))
}
