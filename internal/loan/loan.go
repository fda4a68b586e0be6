// Package loan exposes read operations over point-in-time loan snapshots:
// repayment schedules, active payments, permissions, next-payment
// projections, and transaction details. All operations are synchronous
// transformations; persistence and transport are external collaborators.
package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/lendwise/loan-ledger/pkg/ledger"
	"github.com/lendwise/loan-ledger/pkg/lifecycle"
	"github.com/lendwise/loan-ledger/pkg/schedule"
	"github.com/shopspring/decimal"
)

// PeriodFrequencyType enumerates term and repayment frequency units.
type PeriodFrequencyType int

const (
	FrequencyDays PeriodFrequencyType = iota
	FrequencyWeeks
	FrequencyMonths
	FrequencyYears
)

var frequencyLabels = map[PeriodFrequencyType]string{
	FrequencyDays:   "Days",
	FrequencyWeeks:  "Weeks",
	FrequencyMonths: "Months",
	FrequencyYears:  "Years",
}

func (f PeriodFrequencyType) String() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return "Unknown"
}

// Loan is the static terms record for one loan plus its stored schedule
// rows and transaction rows, delivered already typed by collaborators.
type Loan struct {
	ID         int64
	ExternalID uuid.UUID
	ClientID   int64

	CurrencyCode string
	Principal    decimal.Decimal

	TermFrequency          int
	TermFrequencyType      PeriodFrequencyType
	RepayEvery             int
	RepaymentFrequencyType PeriodFrequencyType
	NumberOfRepayments     int

	Status                lifecycle.Status
	TransactionStrategyID int64

	SubmittedOnDate *time.Time
	ApprovedOnDate  *time.Time
	DisbursedOnDate *time.Time
	ClosedOnDate    *time.Time

	Periods      []schedule.PeriodRow
	Transactions []ledger.Transaction
}

// Disbursement returns the schedule seed for this loan. Charges collected
// at disbursement stay zero here pending a product decision on how they
// flow into the schedule.
func (l *Loan) Disbursement() schedule.Disbursement {
	var date time.Time
	if l.DisbursedOnDate != nil {
		date = *l.DisbursedOnDate
	}
	return schedule.Disbursement{
		Date:       date,
		Amount:     l.Principal,
		ChargesDue: decimal.Zero,
	}
}

// LifecycleStatusDate returns the date the loan entered its current
// lifecycle stage: the latest of the submitted, approved, disbursed and
// closed dates that is set.
func (l *Loan) LifecycleStatusDate() *time.Time {
	date := l.SubmittedOnDate
	if l.ApprovedOnDate != nil {
		date = l.ApprovedOnDate
	}
	if l.DisbursedOnDate != nil {
		date = l.DisbursedOnDate
	}
	if l.ClosedOnDate != nil {
		date = l.ClosedOnDate
	}
	return date
}
