package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	c, err := NewCurrency("KR")
	require.NoError(t, err)
	assert.Equal(t, "kr", c.Value())

	_, err = NewCurrency("NOK")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	assert.Equal(t, "kr", Currency{}.Value())
}

func TestMoney(t *testing.T) {
	m, err := NewMoney("800000")
	require.NoError(t, err)
	assert.Equal(t, "800 000 kr", m.Value())
	assert.Equal(t, int64(800000), m.Kroner())

	_, err = NewMoney("kr")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNewMoney_BeyondInt64(t *testing.T) {
	for _, raw := range []string{"9223372036854775808", "18446744073709552416 kr"} {
		_, err := NewMoney(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
}

func TestMoney_Add(t *testing.T) {
	a, err := NewMoney("1 000")
	require.NoError(t, err)
	b, err := NewMoney("2 500")
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, "3 500 kr", sum.Value())
	assert.Equal(t, int64(3500), sum.Kroner())
}

func TestMoneyFromInt(t *testing.T) {
	assert.Equal(t, "0 kr", MoneyFromInt(0).Value())
	assert.Equal(t, "2 667 kr", MoneyFromInt(2667).Value())
	assert.Equal(t, "-100 kr", MoneyFromInt(-100).Value())
	assert.Equal(t, "-1 234 kr", MoneyFromInt(-1234).Value())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "5.00 %", NewPercent(decimal.RequireFromString("0.05")).Value())

	p, err := ParsePercent("0.1234")
	require.NoError(t, err)
	assert.Equal(t, "12.34 %", p.Value())

	_, err = ParsePercent("fem")
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestNewPercentage(t *testing.T) {
	tests := []struct {
		text  string
		value string
		dec   string
	}{
		{"5 %", "5 %", "5"},
		{"5,5 %", "5.5 %", "5.5"},
		{"4.25%", "4.25 %", "4.25"},
		{"3", "3 %", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := NewPercentage(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.value, p.Value())
			assert.True(t, decimal.RequireFromString(tt.dec).Equal(p.Decimal()))
		})
	}

	p, err := NewPercentage("5,5 %")
	require.NoError(t, err)
	assert.Equal(t, "5.50 %", p.Percent().Value())
}

func TestNewPercentage_Invalid(t *testing.T) {
	for _, text := range []string{"", "fem prosent", "5,5,5"} {
		_, err := NewPercentage(text)
		assert.ErrorIs(t, err, ErrInvalidPercentage, text)
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, "25.00 %", NewShare(decimal.NewFromInt(1), decimal.NewFromInt(4)).Value())
	assert.Equal(t, "0.00 %", NewShare(decimal.NewFromInt(1), decimal.Zero).Value())
	assert.Equal(t, "50.00 %", MoneyShare(MoneyFromInt(500), MoneyFromInt(1000)).Value())
}
