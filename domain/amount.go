package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative whole kroner amount kept in its display form,
// digits grouped by three with a space ("1 234 567").
type Amount struct {
	value  string
	digits string
}

// NewAmount validates raw and formats it. Anything that is not a digit is
// dropped, so "800 000 kr" and "800000" are the same amount.
func NewAmount(raw string) (Amount, error) {
	formatted, err := FormatAmount(raw)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: formatted, digits: onlyDigits(raw)}, nil
}

// With returns a new Amount for raw, validated and formatted again.
func (a Amount) With(raw string) (Amount, error) {
	return NewAmount(raw)
}

// Value returns the formatted amount.
func (a Amount) Value() string {
	return a.value
}

func (a Amount) String() string {
	return a.value
}

// Int64 returns the amount as an integer. Amounts that only fit the
// formatted form fail with ErrInvalidAmount.
func (a Amount) Int64() (int64, error) {
	if a.digits == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(a.digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s kr is too large", ErrInvalidAmount, a.value)
	}
	return n, nil
}

// Decimal returns the exact amount, whatever its size.
func (a Amount) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(a.digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ValidateAmount fails unless raw holds at least one digit.
func ValidateAmount(raw string) error {
	if onlyDigits(raw) == "" {
		return fmt.Errorf("%w: %q contains no digits", ErrInvalidAmount, raw)
	}
	return nil
}

// FormatAmount strips every non-digit from raw and groups the remaining
// number by thousands with a space.
func FormatAmount(raw string) (string, error) {
	if err := ValidateAmount(raw); err != nil {
		return "", err
	}
	digits := onlyDigits(raw)
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return groupThousands(strconv.FormatInt(n, 10)), nil
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return groupThousands(d.String()), nil
}

// FormatKroner groups n like FormatAmount and keeps a leading minus sign.
func FormatKroner(n int64) string {
	if n < 0 {
		return "-" + groupThousands(strconv.FormatInt(n, 10)[1:])
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
