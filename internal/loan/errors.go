package loan

import "fmt"

// LoanNotFoundError indicates the requested loan is not in the snapshot.
type LoanNotFoundError struct {
	LoanID int64
}

func (e *LoanNotFoundError) Error() string {
	return fmt.Sprintf("loan with identifier %d does not exist", e.LoanID)
}

// TransactionNotFoundError indicates the requested transaction does not
// exist at all.
type TransactionNotFoundError struct {
	TransactionID int64
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction with identifier %d does not exist", e.TransactionID)
}

// TransactionNotOwnedError indicates the transaction exists but belongs to
// a different loan. It is deliberately distinct from TransactionNotFoundError
// so a caller can never mistake another loan's transaction for its own.
type TransactionNotOwnedError struct {
	TransactionID int64
	LoanID        int64
}

func (e *TransactionNotOwnedError) Error() string {
	return fmt.Sprintf("transaction with identifier %d does not exist for loan with identifier %d",
		e.TransactionID, e.LoanID)
}

// CurrencyNotFoundError indicates a loan references a currency code absent
// from the currency registry.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("currency with code %q does not exist", e.Code)
}

// TransactionStrategyNotFoundError indicates a loan references an unknown
// transaction processing strategy.
type TransactionStrategyNotFoundError struct {
	StrategyID int64
}

func (e *TransactionStrategyNotFoundError) Error() string {
	return fmt.Sprintf("transaction processing strategy with identifier %d does not exist", e.StrategyID)
}
