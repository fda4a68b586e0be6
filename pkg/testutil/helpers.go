// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/lendwise/loan-ledger/pkg/datetime"
	"github.com/lendwise/loan-ledger/pkg/money"
	"github.com/lendwise/loan-ledger/pkg/schedule"
	"github.com/shopspring/decimal"
)

// USD is the currency used across tests.
var USD = money.Currency{
	Code:          "USD",
	Name:          "US Dollar",
	DisplaySymbol: "$",
	NameCode:      "currency.USD",
	DecimalPlaces: 2,
}

// Dec parses a decimal literal and panics on error. Intended for test
// fixtures where the literal is known to be valid.
func Dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Date parses a date in the snapshot layout and panics on error.
func Date(s string) time.Time {
	return datetime.MustParseTime(datetime.DateTimeLayout, s)
}

// PeriodRow builds an unpaid schedule row with the given installment
// number, due date, and principal and interest due.
func PeriodRow(loanID int64, number int, dueDate, principalDue, interestDue string) schedule.PeriodRow {
	return schedule.PeriodRow{
		LoanID:        loanID,
		Number:        number,
		DueDate:       Date(dueDate),
		PrincipalDue:  Dec(principalDue),
		PrincipalPaid: decimal.Zero,
		InterestDue:   Dec(interestDue),
		InterestPaid:  decimal.Zero,
		ChargesDue:    decimal.Zero,
		ChargesPaid:   decimal.Zero,
	}
}
