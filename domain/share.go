package domain

import "github.com/shopspring/decimal"

// Share is numerator/denominator expressed as a Percent. A zero denominator
// means there is nothing to compare against and the share is 0 %.
type Share struct {
	numerator   decimal.Decimal
	denominator decimal.Decimal
}

func NewShare(numerator, denominator decimal.Decimal) Share {
	return Share{numerator: numerator, denominator: denominator}
}

// MoneyShare is the share of numerator in denominator.
func MoneyShare(numerator, denominator Money) Share {
	return NewShare(decimal.NewFromInt(numerator.Kroner()), decimal.NewFromInt(denominator.Kroner()))
}

func (s Share) Percent() Percent {
	if s.denominator.IsZero() {
		return NewPercent(decimal.Zero)
	}
	return NewPercent(s.numerator.Div(s.denominator))
}

func (s Share) Value() string {
	return s.Percent().Value()
}
