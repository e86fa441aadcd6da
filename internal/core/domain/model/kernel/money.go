package kernel

import (
	"fmt"

	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to avoid floating-point drift in
// pricing arithmetic and wallet ledgers.
//
// Money is immutable: every arithmetic operation returns a new value.
// The zero value is a valid zero amount.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromString("149.99")
//	if err != nil {
//	    // handle error
//	}
//	total := price.Mul(decimal.NewFromInt(3))
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString parses a Money value from a decimal string such as "12.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney creates a Money value and panics on invalid input.
// Intended for constants and test fixtures only.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m minus other. The result may conceptually be negative;
// callers that require a floor use SubFloorZero.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// SubFloorZero returns m minus other, floored at zero.
// Used by the pricing calculator when a discount exceeds the gross price.
func (m Money) SubFloorZero(other Money) Money {
	r := m.amount.Sub(other.amount)
	if r.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: r}
}

// Mul returns the amount scaled by the given factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.LessThan(other.amount) {
		return m
	}
	return other
}
