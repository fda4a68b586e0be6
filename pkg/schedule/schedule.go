// Package schedule computes per-period and cumulative repayment schedule
// figures from a disbursement and an ordered sequence of stored periods.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Disbursement is the initial release of principal that seeds the running
// balance walk. ChargesDue carries any charges collected at disbursement
// time; call sites currently pass zero pending a product decision on how
// disbursement charges flow into the schedule.
type Disbursement struct {
	Date       time.Time
	Amount     decimal.Decimal
	ChargesDue decimal.Decimal
}

// PeriodRow is a stored repayment schedule row as delivered by the
// collaborating persistence layer. InterestWaived is nil when the store
// holds no value; it is treated as zero, never as unknown.
type PeriodRow struct {
	LoanID         int64
	Number         int
	DueDate        time.Time
	PrincipalDue   decimal.Decimal
	PrincipalPaid  decimal.Decimal
	InterestDue    decimal.Decimal
	InterestPaid   decimal.Decimal
	InterestWaived *decimal.Decimal
	ChargesDue     decimal.Decimal
	ChargesPaid    decimal.Decimal
}

// Period is a fully derived schedule period. Outstanding figures are always
// computed here, never stored.
type Period struct {
	LoanID             int64
	Number             int
	FromDate           time.Time // zero for the disbursement period
	DueDate            time.Time
	PrincipalDisbursed decimal.Decimal // nonzero only for the disbursement period

	PrincipalDue         decimal.Decimal
	PrincipalPaid        decimal.Decimal
	PrincipalOutstanding decimal.Decimal

	// OutstandingLoanBalance is the running snapshot of loan principal
	// still outstanding after this period's principal falls due. It is not
	// the period's own outstanding figure.
	OutstandingLoanBalance decimal.Decimal

	InterestDue         decimal.Decimal
	InterestPaid        decimal.Decimal
	InterestWaived      decimal.Decimal
	InterestOutstanding decimal.Decimal

	ChargesDue         decimal.Decimal
	ChargesPaid        decimal.Decimal
	ChargesOutstanding decimal.Decimal

	TotalDue         decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalWaived      decimal.Decimal
	TotalOutstanding decimal.Decimal
}

// IsDisbursement reports whether this is the synthetic period zero.
func (p Period) IsDisbursement() bool {
	return p.Number == 0
}

// Summary holds schedule-level cumulative totals. It is recomputed
// wholesale from the period sequence, never incrementally patched.
type Summary struct {
	CumulativePrincipalDisbursed   decimal.Decimal
	CumulativePrincipalDue         decimal.Decimal
	CumulativePrincipalPaid        decimal.Decimal
	CumulativePrincipalOutstanding decimal.Decimal

	CumulativeInterestExpected    decimal.Decimal
	CumulativeInterestPaid        decimal.Decimal
	CumulativeInterestWaived      decimal.Decimal
	CumulativeInterestOutstanding decimal.Decimal

	CumulativeChargesToDate      decimal.Decimal
	CumulativeChargesPaid        decimal.Decimal
	CumulativeChargesOutstanding decimal.Decimal

	TotalCostOfLoan        decimal.Decimal
	TotalExpectedRepayment decimal.Decimal
	TotalPaidToDate        decimal.Decimal
	TotalWaivedToDate      decimal.Decimal
	TotalOutstanding       decimal.Decimal
}

// NegativeOutstandingError reports a derived outstanding figure below zero.
// This is a data-consistency fault in the stored figures, not a user input
// error; the value is reported rather than clamped.
type NegativeOutstandingError struct {
	LoanID    int64
	Period    int
	Component string
	Amount    decimal.Decimal
}

func (e *NegativeOutstandingError) Error() string {
	return fmt.Sprintf("loan %d period %d: negative %s outstanding %s",
		e.LoanID, e.Period, e.Component, e.Amount)
}

// NonContiguousPeriodError reports a period whose due date precedes the due
// date of the period before it.
type NonContiguousPeriodError struct {
	LoanID int64
	Period int
}

func (e *NonContiguousPeriodError) Error() string {
	return fmt.Sprintf("loan %d period %d: due date precedes previous period", e.LoanID, e.Period)
}

// Build prepends a synthetic disbursement period and walks the stored
// periods in installment order, carrying forward the last due date and the
// outstanding principal balance. This single forward pass is the only place
// running balances are mutated; each period's balance snapshot is taken
// before the running state updates. A second pass folds the summary.
func Build(logger *zap.Logger, disbursement Disbursement, rows []PeriodRow) ([]Period, Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ordered := make([]PeriodRow, len(rows))
	copy(ordered, rows)
	// Installment number is the ordering key; two periods may share a due
	// date, so the due date never participates in ordering.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	periods := make([]Period, 0, len(ordered)+1)
	periods = append(periods, disbursementPeriod(disbursement, ordered))

	lastDueDate := disbursement.Date
	outstandingBalance := disbursement.Amount

	for _, row := range ordered {
		if row.DueDate.Before(lastDueDate) {
			return nil, Summary{}, &NonContiguousPeriodError{LoanID: row.LoanID, Period: row.Number}
		}

		period, err := derivePeriod(row, lastDueDate, outstandingBalance)
		if err != nil {
			return nil, Summary{}, err
		}
		periods = append(periods, period)

		lastDueDate = row.DueDate
		outstandingBalance = outstandingBalance.Sub(row.PrincipalDue)

		logger.Debug("derived schedule period",
			zap.String("op", "schedule.Build"),
			zap.Int64("loanId", row.LoanID),
			zap.Int("period", row.Number),
			zap.String("outstandingLoanBalance", period.OutstandingLoanBalance.String()),
		)
	}

	summary := summarize(periods)
	return periods, summary, nil
}

func disbursementPeriod(d Disbursement, rows []PeriodRow) Period {
	var loanID int64
	if len(rows) > 0 {
		loanID = rows[0].LoanID
	}
	return Period{
		LoanID:                 loanID,
		Number:                 0,
		DueDate:                d.Date,
		PrincipalDisbursed:     d.Amount,
		OutstandingLoanBalance: d.Amount,
		ChargesDue:             d.ChargesDue,
		ChargesOutstanding:     d.ChargesDue,
		TotalDue:               d.ChargesDue,
		TotalOutstanding:       d.ChargesDue,
	}
}

func derivePeriod(row PeriodRow, fromDate time.Time, outstandingBalance decimal.Decimal) (Period, error) {
	interestWaived := decimal.Zero
	if row.InterestWaived != nil {
		interestWaived = *row.InterestWaived
	}

	principalOutstanding := row.PrincipalDue.Sub(row.PrincipalPaid)
	interestOutstanding := row.InterestDue.Sub(row.InterestPaid).Sub(interestWaived)
	chargesOutstanding := row.ChargesDue.Sub(row.ChargesPaid)

	for _, check := range []struct {
		component string
		amount    decimal.Decimal
	}{
		{"principal", principalOutstanding},
		{"interest", interestOutstanding},
		{"charges", chargesOutstanding},
	} {
		if check.amount.IsNegative() {
			return Period{}, &NegativeOutstandingError{
				LoanID:    row.LoanID,
				Period:    row.Number,
				Component: check.component,
				Amount:    check.amount,
			}
		}
	}

	return Period{
		LoanID:                 row.LoanID,
		Number:                 row.Number,
		FromDate:               fromDate,
		DueDate:                row.DueDate,
		PrincipalDue:           row.PrincipalDue,
		PrincipalPaid:          row.PrincipalPaid,
		PrincipalOutstanding:   principalOutstanding,
		OutstandingLoanBalance: outstandingBalance.Sub(row.PrincipalDue),
		InterestDue:            row.InterestDue,
		InterestPaid:           row.InterestPaid,
		InterestWaived:         interestWaived,
		InterestOutstanding:    interestOutstanding,
		ChargesDue:             row.ChargesDue,
		ChargesPaid:            row.ChargesPaid,
		ChargesOutstanding:     chargesOutstanding,
		TotalDue:               row.PrincipalDue.Add(row.InterestDue),
		TotalPaid:              row.PrincipalPaid.Add(row.InterestPaid),
		TotalWaived:            interestWaived,
		TotalOutstanding:       principalOutstanding.Add(interestOutstanding),
	}, nil
}

// summarize folds every due/paid/waived column independently rather than
// deriving from per-period totals, so rounding never compounds. Principal
// outstanding is the exception: it is derived as disbursed minus paid, so
// the reconciliation holds even when the period dues do not sum to the
// disbursed amount.
func summarize(periods []Period) Summary {
	var s Summary
	s.CumulativePrincipalDisbursed = decimal.Zero
	s.CumulativePrincipalDue = decimal.Zero
	s.CumulativePrincipalPaid = decimal.Zero
	s.CumulativeInterestExpected = decimal.Zero
	s.CumulativeInterestPaid = decimal.Zero
	s.CumulativeInterestWaived = decimal.Zero
	s.CumulativeInterestOutstanding = decimal.Zero
	s.CumulativeChargesToDate = decimal.Zero
	s.CumulativeChargesPaid = decimal.Zero
	s.CumulativeChargesOutstanding = decimal.Zero

	for _, p := range periods {
		s.CumulativePrincipalDisbursed = s.CumulativePrincipalDisbursed.Add(p.PrincipalDisbursed)
		s.CumulativePrincipalDue = s.CumulativePrincipalDue.Add(p.PrincipalDue)
		s.CumulativePrincipalPaid = s.CumulativePrincipalPaid.Add(p.PrincipalPaid)
		s.CumulativeInterestExpected = s.CumulativeInterestExpected.Add(p.InterestDue)
		s.CumulativeInterestPaid = s.CumulativeInterestPaid.Add(p.InterestPaid)
		s.CumulativeInterestWaived = s.CumulativeInterestWaived.Add(p.InterestWaived)
		s.CumulativeInterestOutstanding = s.CumulativeInterestOutstanding.Add(p.InterestOutstanding)
		s.CumulativeChargesToDate = s.CumulativeChargesToDate.Add(p.ChargesDue)
		s.CumulativeChargesPaid = s.CumulativeChargesPaid.Add(p.ChargesPaid)
		s.CumulativeChargesOutstanding = s.CumulativeChargesOutstanding.Add(p.ChargesOutstanding)
	}

	s.CumulativePrincipalOutstanding = s.CumulativePrincipalDisbursed.Sub(s.CumulativePrincipalPaid)

	s.TotalCostOfLoan = s.CumulativeInterestExpected.Add(s.CumulativeChargesToDate)
	s.TotalExpectedRepayment = s.CumulativePrincipalDisbursed.Add(s.TotalCostOfLoan)
	s.TotalPaidToDate = s.CumulativePrincipalPaid.Add(s.CumulativeInterestPaid).Add(s.CumulativeChargesPaid)
	s.TotalWaivedToDate = s.CumulativeInterestWaived
	s.TotalOutstanding = s.CumulativePrincipalOutstanding.Add(s.CumulativeInterestOutstanding).Add(s.CumulativeChargesOutstanding)

	return s
}

// EarliestOutstandingDueDate returns the due date of the first repayment
// period whose total outstanding is above zero, or false when the schedule
// is fully settled.
func EarliestOutstandingDueDate(periods []Period) (time.Time, bool) {
	for _, p := range periods {
		if p.IsDisbursement() {
			continue
		}
		if p.TotalOutstanding.IsPositive() {
			return p.DueDate, true
		}
	}
	return time.Time{}, false
}
