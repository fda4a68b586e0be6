package loan

import (
	"time"

	"github.com/lendwise/loan-ledger/pkg/ledger"
	"github.com/lendwise/loan-ledger/pkg/lifecycle"
	"github.com/lendwise/loan-ledger/pkg/money"
	"github.com/lendwise/loan-ledger/pkg/schedule"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProjectionStrategy computes the amount of the next expected repayment
// from the derived schedule. Strategies correspond to the loan's
// transaction processing strategy id.
type ProjectionStrategy interface {
	NextRepaymentAmount(periods []schedule.Period) decimal.Decimal
}

// EarliestUnpaidStrategy is the default projection: the total outstanding
// of the earliest period that still has something outstanding.
type EarliestUnpaidStrategy struct{}

// NextRepaymentAmount implements ProjectionStrategy.
func (EarliestUnpaidStrategy) NextRepaymentAmount(periods []schedule.Period) decimal.Decimal {
	for _, p := range periods {
		if p.IsDisbursement() {
			continue
		}
		if p.TotalOutstanding.IsPositive() {
			return p.TotalOutstanding
		}
	}
	return decimal.Zero
}

// DefaultStrategyID is the transaction processing strategy every snapshot
// resolves unless it names another.
const DefaultStrategyID int64 = 1

// ScheduleData is a derived repayment schedule ready for serialization.
type ScheduleData struct {
	Currency money.Currency
	Periods  []schedule.Period
	Summary  schedule.Summary
}

// TransactionData is a single ledger transaction, or a projected one,
// converted into the loan's currency.
type TransactionData struct {
	ID     int64
	Type   ledger.TransactionType
	Date   time.Time
	Amount money.Money
}

// Service answers read operations over an immutable set of loan snapshots.
// It is safe for concurrent use; every operation is a pure transformation
// of the snapshot it was constructed with.
type Service struct {
	logger        *zap.Logger
	currencies    map[string]money.Currency
	loans         map[int64]*Loan
	strategies    map[int64]ProjectionStrategy
	waiverEnabled bool
	now           func() time.Time
}

// NewService builds a Service over the given currencies and loans. The
// clock is injectable for tests; nil defaults to time.Now.
func NewService(logger *zap.Logger, currencies []money.Currency, loans []*Loan, waiverEnabled bool, now func() time.Time) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	currencyIndex := make(map[string]money.Currency, len(currencies))
	for _, c := range currencies {
		currencyIndex[c.Code] = c
	}

	loanIndex := make(map[int64]*Loan, len(loans))
	for _, l := range loans {
		loanIndex[l.ID] = l
	}

	return &Service{
		logger:     logger,
		currencies: currencyIndex,
		loans:      loanIndex,
		strategies: map[int64]ProjectionStrategy{
			DefaultStrategyID: EarliestUnpaidStrategy{},
		},
		waiverEnabled: waiverEnabled,
		now:           now,
	}
}

// RetrieveRepaymentSchedule derives the full period list and summary for a
// loan from its disbursement and stored schedule rows.
func (s *Service) RetrieveRepaymentSchedule(loanID int64) (*ScheduleData, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return nil, err
	}

	currency, err := s.currency(loan.CurrencyCode)
	if err != nil {
		return nil, err
	}

	periods, summary, err := schedule.Build(s.logger, loan.Disbursement(), loan.Periods)
	if err != nil {
		return nil, err
	}

	return &ScheduleData{Currency: currency, Periods: periods, Summary: summary}, nil
}

// RetrieveLoanPayments returns the loan's active payment transactions in
// date order.
func (s *Service) RetrieveLoanPayments(loanID int64) ([]TransactionData, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return nil, err
	}

	currency, err := s.currency(loan.CurrencyCode)
	if err != nil {
		return nil, err
	}

	book, err := ledger.New(loan.ID, loan.Transactions)
	if err != nil {
		return nil, err
	}

	var payments []TransactionData
	for _, tx := range book.ActivePayments() {
		payments = append(payments, TransactionData{
			ID:     tx.ID,
			Type:   tx.Type,
			Date:   tx.Date,
			Amount: money.Of(currency, tx.Amount),
		})
	}
	return payments, nil
}

// RetrievePermissions derives the permitted action set for a loan from its
// status and its non-voided repayment and waiver count.
func (s *Service) RetrievePermissions(loanID int64) (lifecycle.PermissionSet, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return lifecycle.PermissionSet{}, err
	}

	book, err := ledger.New(loan.ID, loan.Transactions)
	if err != nil {
		return lifecycle.PermissionSet{}, err
	}

	return lifecycle.Permissions(loan.Status, s.waiverEnabled, book.RepaymentAndWaiveCount()), nil
}

// RetrieveNewRepaymentDetails projects the next expected repayment: the due
// date of the earliest period still outstanding, with the amount computed
// by the loan's transaction processing strategy.
func (s *Service) RetrieveNewRepaymentDetails(loanID int64) (TransactionData, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return TransactionData{}, err
	}

	currency, err := s.currency(loan.CurrencyCode)
	if err != nil {
		return TransactionData{}, err
	}

	strategy, err := s.strategy(loan.TransactionStrategyID)
	if err != nil {
		return TransactionData{}, err
	}

	periods, _, err := schedule.Build(s.logger, loan.Disbursement(), loan.Periods)
	if err != nil {
		return TransactionData{}, err
	}

	date, ok := schedule.EarliestOutstandingDueDate(periods)
	if !ok {
		date = s.now()
	}

	return TransactionData{
		Type:   ledger.TypeRepayment,
		Date:   date,
		Amount: money.Of(currency, strategy.NextRepaymentAmount(periods)),
	}, nil
}

// RetrieveNewWaiverDetails projects a waiver of everything currently
// outstanding, dated today.
func (s *Service) RetrieveNewWaiverDetails(loanID int64) (TransactionData, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return TransactionData{}, err
	}

	currency, err := s.currency(loan.CurrencyCode)
	if err != nil {
		return TransactionData{}, err
	}

	_, summary, err := schedule.Build(s.logger, loan.Disbursement(), loan.Periods)
	if err != nil {
		return TransactionData{}, err
	}

	return TransactionData{
		Type:   ledger.TypeWaiver,
		Date:   s.now(),
		Amount: money.Of(currency, summary.TotalOutstanding),
	}, nil
}

// RetrieveTransactionDetails returns one transaction of one loan. A
// transaction that exists but belongs to another loan is reported with a
// distinct not-found variant, never returned.
func (s *Service) RetrieveTransactionDetails(loanID, transactionID int64) (TransactionData, error) {
	loan, err := s.loan(loanID)
	if err != nil {
		return TransactionData{}, err
	}

	currency, err := s.currency(loan.CurrencyCode)
	if err != nil {
		return TransactionData{}, err
	}

	book, err := ledger.New(loan.ID, loan.Transactions)
	if err != nil {
		return TransactionData{}, err
	}

	tx, ok := book.Transaction(transactionID)
	if !ok {
		if s.transactionExistsElsewhere(transactionID, loanID) {
			return TransactionData{}, &TransactionNotOwnedError{TransactionID: transactionID, LoanID: loanID}
		}
		return TransactionData{}, &TransactionNotFoundError{TransactionID: transactionID}
	}

	return TransactionData{
		ID:     tx.ID,
		Type:   tx.Type,
		Date:   tx.Date,
		Amount: money.Of(currency, tx.Amount),
	}, nil
}

func (s *Service) loan(loanID int64) (*Loan, error) {
	loan, ok := s.loans[loanID]
	if !ok {
		return nil, &LoanNotFoundError{LoanID: loanID}
	}
	return loan, nil
}

func (s *Service) currency(code string) (money.Currency, error) {
	currency, ok := s.currencies[code]
	if !ok {
		return money.Currency{}, &CurrencyNotFoundError{Code: code}
	}
	return currency, nil
}

func (s *Service) strategy(id int64) (ProjectionStrategy, error) {
	if id == 0 {
		id = DefaultStrategyID
	}
	strategy, ok := s.strategies[id]
	if !ok {
		return nil, &TransactionStrategyNotFoundError{StrategyID: id}
	}
	return strategy, nil
}

func (s *Service) transactionExistsElsewhere(transactionID, excludeLoanID int64) bool {
	for id, other := range s.loans {
		if id == excludeLoanID {
			continue
		}
		for _, tx := range other.Transactions {
			if tx.ID == transactionID {
				return true
			}
		}
	}
	return false
}
