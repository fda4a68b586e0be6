package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lendwise/loan-ledger/internal/loan"
	"github.com/lendwise/loan-ledger/pkg/datetime"
	"github.com/lendwise/loan-ledger/pkg/ledger"
	"github.com/lendwise/loan-ledger/pkg/lifecycle"
	"github.com/lendwise/loan-ledger/pkg/money"
	"github.com/lendwise/loan-ledger/pkg/schedule"
	"github.com/shopspring/decimal"
)

// BuildSnapshot converts the stored configuration into typed currency and
// loan records. All amounts and dates are validated here so downstream
// components always receive well-formed snapshots.
func (conf *Configuration) BuildSnapshot() ([]money.Currency, []*loan.Loan, error) {
	currencies := make([]money.Currency, 0, len(conf.Currencies))
	for _, c := range conf.Currencies {
		currencies = append(currencies, money.Currency{
			Code:          c.Code,
			Name:          c.Name,
			DisplaySymbol: c.DisplaySymbol,
			NameCode:      c.NameCode,
			DecimalPlaces: c.DecimalPlaces,
		})
	}

	loans := make([]*loan.Loan, 0, len(conf.Loans))
	for i := range conf.Loans {
		record, err := conf.Loans[i].toLoan()
		if err != nil {
			return nil, nil, fmt.Errorf("loan %d: %w", conf.Loans[i].ID, err)
		}
		loans = append(loans, record)
	}

	return currencies, loans, nil
}

func (lc *LoanConfig) toLoan() (*loan.Loan, error) {
	principal, err := parseAmount(lc.Principal, "principal")
	if err != nil {
		return nil, err
	}

	externalID := uuid.New()
	if lc.ExternalID != "" {
		externalID, err = uuid.Parse(lc.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("externalId: %w", err)
		}
	}

	record := &loan.Loan{
		ID:                     lc.ID,
		ExternalID:             externalID,
		ClientID:               lc.ClientID,
		CurrencyCode:           lc.CurrencyCode,
		Principal:              principal,
		TermFrequency:          lc.TermFrequency,
		TermFrequencyType:      loan.PeriodFrequencyType(lc.TermFrequencyType),
		RepayEvery:             lc.RepayEvery,
		RepaymentFrequencyType: loan.PeriodFrequencyType(lc.RepaymentFrequencyType),
		NumberOfRepayments:     lc.NumberOfRepayments,
		Status:                 lifecycle.Status(lc.Status),
		TransactionStrategyID:  lc.TransactionStrategyID,
	}

	if record.SubmittedOnDate, err = parseOptionalDate(lc.SubmittedOnDate, "submittedOnDate"); err != nil {
		return nil, err
	}
	if record.ApprovedOnDate, err = parseOptionalDate(lc.ApprovedOnDate, "approvedOnDate"); err != nil {
		return nil, err
	}
	if record.DisbursedOnDate, err = parseOptionalDate(lc.DisbursedOnDate, "disbursedOnDate"); err != nil {
		return nil, err
	}
	if record.ClosedOnDate, err = parseOptionalDate(lc.ClosedOnDate, "closedOnDate"); err != nil {
		return nil, err
	}

	for _, ord := range []struct {
		earlier, later           string
		earlierField, laterField string
	}{
		{lc.SubmittedOnDate, lc.ApprovedOnDate, "submittedOnDate", "approvedOnDate"},
		{lc.ApprovedOnDate, lc.DisbursedOnDate, "approvedOnDate", "disbursedOnDate"},
		{lc.DisbursedOnDate, lc.ClosedOnDate, "disbursedOnDate", "closedOnDate"},
	} {
		if err := checkDateOrder(ord.earlier, ord.later, ord.earlierField, ord.laterField); err != nil {
			return nil, err
		}
	}

	for _, p := range lc.Periods {
		row, err := p.toPeriodRow(lc.ID)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", p.Number, err)
		}
		record.Periods = append(record.Periods, row)
	}

	for _, t := range lc.Transactions {
		tx, err := t.toTransaction(lc.ID)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
		record.Transactions = append(record.Transactions, tx)
	}

	return record, nil
}

func (pc *PeriodConfig) toPeriodRow(loanID int64) (schedule.PeriodRow, error) {
	row := schedule.PeriodRow{LoanID: loanID, Number: pc.Number}

	dueDate, err := time.Parse(datetime.DateTimeLayout, pc.DueDate)
	if err != nil {
		return schedule.PeriodRow{}, fmt.Errorf("dueDate: %w", err)
	}
	row.DueDate = dueDate

	if row.PrincipalDue, err = parseAmount(pc.PrincipalDue, "principalDue"); err != nil {
		return schedule.PeriodRow{}, err
	}
	if row.PrincipalPaid, err = parseAmount(pc.PrincipalPaid, "principalPaid"); err != nil {
		return schedule.PeriodRow{}, err
	}
	if row.InterestDue, err = parseAmount(pc.InterestDue, "interestDue"); err != nil {
		return schedule.PeriodRow{}, err
	}
	if row.InterestPaid, err = parseAmount(pc.InterestPaid, "interestPaid"); err != nil {
		return schedule.PeriodRow{}, err
	}
	if row.ChargesDue, err = parseAmount(pc.ChargesDue, "chargesDue"); err != nil {
		return schedule.PeriodRow{}, err
	}
	if row.ChargesPaid, err = parseAmount(pc.ChargesPaid, "chargesPaid"); err != nil {
		return schedule.PeriodRow{}, err
	}

	// A blank waived figure stays nil; the aggregator treats it as zero.
	if pc.InterestWaived != "" {
		waived, err := parseAmount(pc.InterestWaived, "interestWaived")
		if err != nil {
			return schedule.PeriodRow{}, err
		}
		row.InterestWaived = &waived
	}

	return row, nil
}

func (tc *TransactionConfig) toTransaction(loanID int64) (ledger.Transaction, error) {
	date, err := time.Parse(datetime.DateTimeLayout, tc.Date)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("date: %w", err)
	}

	amount, err := parseAmount(tc.Amount, "amount")
	if err != nil {
		return ledger.Transaction{}, err
	}

	return ledger.Transaction{
		ID:         tc.ID,
		ExternalID: uuid.New(),
		LoanID:     loanID,
		Type:       ledger.TransactionType(tc.Type),
		Date:       date,
		Amount:     amount,
		ContraID:   tc.ContraID,
	}, nil
}

func parseAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q", field, s)
	}
	return d, nil
}

// checkDateOrder rejects a lifecycle date that precedes its predecessor.
// Either date may be blank; ordering only applies when both are set.
func checkDateOrder(earlier, later, earlierField, laterField string) error {
	if earlier == "" || later == "" {
		return nil
	}
	reversed, err := datetime.DateBeforeDate(later, earlier)
	if err != nil {
		return err
	}
	if reversed {
		return fmt.Errorf("%s precedes %s", laterField, earlierField)
	}
	return nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(datetime.DateTimeLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}
