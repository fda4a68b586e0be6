// Package ledger models loan transaction events, contra invalidation, and
// the filtered views the platform derives from them. It shares amount types
// with the schedule aggregator but is otherwise independent of it.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the enumerated ordinal type of a ledger event. The
// zero ordinal is reserved for invalid rows and never aggregates.
type TransactionType int

const (
	TypeInvalid TransactionType = iota
	TypeDisbursement
	TypeRepayment
	TypeReversal
	TypeWaiver
	TypeDeposit
	TypeWithdrawal
)

var typeNames = map[TransactionType]string{
	TypeInvalid:      "invalid",
	TypeDisbursement: "disbursement",
	TypeRepayment:    "repayment",
	TypeReversal:     "reversal",
	TypeWaiver:       "waiver",
	TypeDeposit:      "deposit",
	TypeWithdrawal:   "withdrawal",
}

func (t TransactionType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// IsRepaymentOrWaiver reports whether the type counts toward the
// repayment-and-waive count used by lifecycle permissions.
func (t TransactionType) IsRepaymentOrWaiver() bool {
	return t == TypeRepayment || t == TypeWaiver
}

// Transaction is a single ledger event. A non-nil ContraID links to the
// transaction that reverses this one; such transactions are voided and
// excluded from all aggregation.
type Transaction struct {
	ID         int64
	ExternalID uuid.UUID
	LoanID     int64
	Type       TransactionType
	Date       time.Time
	Amount     decimal.Decimal
	ContraID   *int64
}

// IsVoided reports whether the transaction carries a contra reference.
func (t Transaction) IsVoided() bool {
	return t.ContraID != nil
}

// ContraCycleError reports a cycle in the contra-reference graph. Contra
// references are one-directional; a cycle is a fatal data-integrity fault.
type ContraCycleError struct {
	TransactionID int64
}

func (e *ContraCycleError) Error() string {
	return fmt.Sprintf("contra reference cycle involving transaction %d", e.TransactionID)
}

// DuplicateTransactionError reports two snapshot rows carrying the same
// transaction id. Ids are unique per loan; a duplicate is a fatal
// data-integrity fault, never a silent overwrite.
type DuplicateTransactionError struct {
	TransactionID int64
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("duplicate transaction id %d in snapshot", e.TransactionID)
}

// DanglingContraError reports a contra reference to a transaction that is
// not in the snapshot.
type DanglingContraError struct {
	TransactionID int64
	ContraID      int64
}

func (e *DanglingContraError) Error() string {
	return fmt.Sprintf("transaction %d references missing contra transaction %d", e.TransactionID, e.ContraID)
}

// Ledger is an immutable view over one loan's transaction snapshot.
type Ledger struct {
	loanID       int64
	transactions []Transaction
	byID         map[int64]Transaction
}

// New builds a Ledger from a point-in-time transaction snapshot, resolving
// the contra index and detecting reference cycles at load time.
func New(loanID int64, transactions []Transaction) (*Ledger, error) {
	byID := make(map[int64]Transaction, len(transactions))
	for _, tx := range transactions {
		if _, exists := byID[tx.ID]; exists {
			return nil, &DuplicateTransactionError{TransactionID: tx.ID}
		}
		byID[tx.ID] = tx
	}

	contra := make(map[int64]int64)
	for _, tx := range transactions {
		if tx.ContraID == nil {
			continue
		}
		if _, ok := byID[*tx.ContraID]; !ok {
			return nil, &DanglingContraError{TransactionID: tx.ID, ContraID: *tx.ContraID}
		}
		contra[tx.ID] = *tx.ContraID
	}

	if err := detectCycles(contra); err != nil {
		return nil, err
	}

	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)

	return &Ledger{loanID: loanID, transactions: txs, byID: byID}, nil
}

// detectCycles follows every contra chain. Chains are short in practice
// (one reversal), so a per-start walk with a visited set suffices.
func detectCycles(contra map[int64]int64) error {
	for start := range contra {
		seen := map[int64]struct{}{start: {}}
		current := start
		for {
			next, ok := contra[current]
			if !ok {
				break
			}
			if _, looped := seen[next]; looped {
				return &ContraCycleError{TransactionID: next}
			}
			seen[next] = struct{}{}
			current = next
		}
	}
	return nil
}

// LoanID returns the loan this ledger belongs to.
func (l *Ledger) LoanID() int64 {
	return l.loanID
}

// ActivePayments returns the loan's payment-relevant transactions: invalid
// and disbursement rows are excluded, as is anything voided by a contra
// reference. Results are ordered by transaction date ascending with
// insertion order as the stable tie-break.
func (l *Ledger) ActivePayments() []Transaction {
	var active []Transaction
	for _, tx := range l.transactions {
		if tx.Type == TypeInvalid || tx.Type == TypeDisbursement {
			continue
		}
		if tx.IsVoided() {
			continue
		}
		active = append(active, tx)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Date.Before(active[j].Date)
	})
	return active
}

// RepaymentAndWaiveCount counts non-voided repayment and waiver
// transactions. Lifecycle permissions use it to decide whether a disbursal
// can still be undone.
func (l *Ledger) RepaymentAndWaiveCount() int {
	count := 0
	for _, tx := range l.transactions {
		if tx.IsVoided() {
			continue
		}
		if tx.Type.IsRepaymentOrWaiver() {
			count++
		}
	}
	return count
}

// Transaction returns the transaction with the given id, if present.
func (l *Ledger) Transaction(id int64) (Transaction, bool) {
	tx, ok := l.byID[id]
	return tx, ok
}
