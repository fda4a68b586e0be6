// Package lifecycle derives the set of permitted loan actions from the
// loan's status and ledger facts. Permission derivation is a total
// function: unknown status values yield all-false permissions.
package lifecycle

import "fmt"

// Status is a loan's lifecycle stage. Ordinals match the platform's status
// codes; external collaborators set the status, this package only reads it.
type Status int

const (
	StatusSubmittedAndPendingApproval Status = 100
	StatusApproved                    Status = 200
	StatusActive                      Status = 300
	StatusWithdrawnByClient           Status = 400
	StatusRejected                    Status = 500
	StatusClosed                      Status = 600
)

var statusLabels = map[Status]string{
	StatusSubmittedAndPendingApproval: "Submitted and pending approval",
	StatusApproved:                    "Approved",
	StatusActive:                      "Active",
	StatusWithdrawnByClient:           "Withdrawn by client",
	StatusRejected:                    "Rejected",
	StatusClosed:                      "Closed",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Unknown(%d)", int(s))
}

// IsPendingApproval reports whether the loan awaits approval.
func (s Status) IsPendingApproval() bool {
	return s == StatusSubmittedAndPendingApproval
}

// IsAwaitingDisbursal reports whether the loan is approved but not yet
// disbursed.
func (s Status) IsAwaitingDisbursal() bool {
	return s == StatusApproved
}

// IsActive reports whether the loan has been disbursed and is open.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// PermissionSet is the bag of actions currently permitted on a loan. It is
// derived on demand and never persisted.
type PermissionSet struct {
	WaiveAllowed         bool
	RepaymentAllowed     bool
	RejectAllowed        bool
	WithdrawAllowed      bool
	UndoApprovalAllowed  bool
	UndoDisbursalAllowed bool
	DisbursalAllowed     bool
}

// Permissions maps status plus ledger facts to the permitted action set.
// repaymentAndWaiveCount is the number of non-voided repayment or waiver
// transactions recorded so far; a disbursal can only be undone before any
// such transaction exists.
func Permissions(status Status, waiverEnabled bool, repaymentAndWaiveCount int) PermissionSet {
	pendingApproval := status.IsPendingApproval()
	awaitingDisbursal := status.IsAwaitingDisbursal()
	active := status.IsActive()

	return PermissionSet{
		WaiveAllowed:         waiverEnabled && active,
		RepaymentAllowed:     active,
		RejectAllowed:        pendingApproval,
		WithdrawAllowed:      pendingApproval || awaitingDisbursal,
		UndoApprovalAllowed:  awaitingDisbursal,
		UndoDisbursalAllowed: active && repaymentAndWaiveCount == 0,
		DisbursalAllowed:     awaitingDisbursal,
	}
}
