// Package money provides exact-decimal monetary amounts tied to a currency.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency describes a currency code along with its display metadata and
// the number of fractional digits it supports.
type Currency struct {
	Code          string
	Name          string
	DisplaySymbol string
	NameCode      string
	DecimalPlaces int32
}

// Money couples an exact decimal amount with its currency. Arithmetic
// between two Money values requires matching currency codes.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// CurrencyMismatchError indicates arithmetic was attempted between two
// amounts of different currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// Of returns a Money of the given currency and amount.
func Of(currency Currency, amount decimal.Decimal) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns a zero-valued Money of the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns the difference of m and other.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// String renders the amount rounded to the currency's fractional digits.
// Rounding happens only here; stored amounts stay exact.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency.Code, m.amount.StringFixed(m.currency.DecimalPlaces))
}

func (m Money) checkCurrency(other Money) error {
	if m.currency.Code != other.currency.Code {
		return &CurrencyMismatchError{Left: m.currency.Code, Right: other.currency.Code}
	}
	return nil
}
