package domain

import "strconv"

// Money is an Amount in a Currency, displayed the Norwegian way: "1 234 kr".
type Money struct {
	kroner   int64
	amount   Amount
	currency Currency
}

// NewMoney parses raw the way Amount does and attaches the default currency.
// Money is whole kroner in an int64, so larger amounts fail.
func NewMoney(raw string) (Money, error) {
	amount, err := NewAmount(raw)
	if err != nil {
		return Money{}, err
	}
	kroner, err := amount.Int64()
	if err != nil {
		return Money{}, err
	}
	return Money{kroner: kroner, amount: amount, currency: DefaultCurrency}, nil
}

// MoneyFromInt builds Money from a whole kroner value. Negative values keep
// their sign when displayed.
func MoneyFromInt(n int64) Money {
	digits := strconv.FormatInt(n, 10)
	if n < 0 {
		digits = digits[1:]
	}
	return Money{
		kroner:   n,
		amount:   Amount{value: groupThousands(digits), digits: digits},
		currency: DefaultCurrency,
	}
}

// Kroner returns the numeric value.
func (m Money) Kroner() int64 {
	return m.kroner
}

func (m Money) Amount() Amount {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

// Value returns "<amount> <currency>".
func (m Money) Value() string {
	return FormatKroner(m.kroner) + " " + m.currency.Value()
}

func (m Money) String() string {
	return m.Value()
}

// Add sums the two values numerically.
func (m Money) Add(other Money) Money {
	return MoneyFromInt(m.kroner + other.kroner)
}
