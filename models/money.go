package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is an amount in reais kept at 2 decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a float literal (seed data, tests).
func NewMoney(f float64) Money {
	return Money{Decimal: decimal.NewFromFloat(f).Round(2)}
}

// NewMoneyFromDecimal rounds amount to 2 places.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// Mul multiplies by an integer quantity.
func (m Money) Mul(qty int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(qty))))
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(o.Decimal))
}

// Equal compares at 2 decimal places.
func (m Money) Equal(o Money) bool {
	return m.Decimal.Round(2).Equal(o.Decimal.Round(2))
}

// MarshalJSON always emits a fixed 2-place string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// String returns the amount with 2 decimal places.
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
