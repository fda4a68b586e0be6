// Package output provides utilities for formatting and displaying derived
// loan schedules.
package output

import (
	"fmt"

	"github.com/lendwise/loan-ledger/internal/loan"
	"github.com/lendwise/loan-ledger/pkg/datetime"
	"github.com/lendwise/loan-ledger/pkg/lifecycle"
	"github.com/lendwise/loan-ledger/pkg/schedule"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(data *loan.ScheduleData, permissions lifecycle.PermissionSet) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Repayment schedule (%s) ---\n", data.Currency.Code)
	fmt.Printf("Period | From       | Due        | Principal due | Interest due | Paid          | Outstanding\n")
	fmt.Printf("______ | ____       | ___        | _____________ | ____________ | ____          | ___________\n")
	for _, period := range data.Periods {
		_, _ = p.Printf("%6d | %-10s | %-10s | %13s | %12s | %13s | %s\n",
			period.Number,
			formatDate(period),
			period.DueDate.Format(datetime.DateTimeLayout),
			period.PrincipalDue.StringFixed(data.Currency.DecimalPlaces),
			period.InterestDue.StringFixed(data.Currency.DecimalPlaces),
			period.TotalPaid.StringFixed(data.Currency.DecimalPlaces),
			period.TotalOutstanding.StringFixed(data.Currency.DecimalPlaces),
		)
	}

	s := data.Summary
	fmt.Printf("\n")
	_, _ = p.Printf("Principal disbursed:      %s %s\n", data.Currency.DisplaySymbol, s.CumulativePrincipalDisbursed.StringFixed(data.Currency.DecimalPlaces))
	_, _ = p.Printf("Total cost of loan:       %s %s\n", data.Currency.DisplaySymbol, s.TotalCostOfLoan.StringFixed(data.Currency.DecimalPlaces))
	_, _ = p.Printf("Total expected repayment: %s %s\n", data.Currency.DisplaySymbol, s.TotalExpectedRepayment.StringFixed(data.Currency.DecimalPlaces))
	_, _ = p.Printf("Total paid to date:       %s %s\n", data.Currency.DisplaySymbol, s.TotalPaidToDate.StringFixed(data.Currency.DecimalPlaces))
	_, _ = p.Printf("Total waived to date:     %s %s\n", data.Currency.DisplaySymbol, s.TotalWaivedToDate.StringFixed(data.Currency.DecimalPlaces))
	_, _ = p.Printf("Total outstanding:        %s %s\n", data.Currency.DisplaySymbol, s.TotalOutstanding.StringFixed(data.Currency.DecimalPlaces))

	fmt.Printf("\nPermitted actions: %s\n", permissionList(permissions))
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(data *loan.ScheduleData) {
	fmt.Printf(`"period","fromDate","dueDate","principalDue","principalPaid","interestDue","interestPaid","interestWaived","totalOutstanding"`)
	fmt.Printf("\n")
	for _, period := range data.Periods {
		fmt.Printf(`"%d","%s","%s","%s","%s","%s","%s","%s","%s"`,
			period.Number,
			formatDate(period),
			period.DueDate.Format(datetime.DateTimeLayout),
			period.PrincipalDue.String(),
			period.PrincipalPaid.String(),
			period.InterestDue.String(),
			period.InterestPaid.String(),
			period.InterestWaived.String(),
			period.TotalOutstanding.String(),
		)
		fmt.Printf("\n")
	}
}

func formatDate(period schedule.Period) string {
	if period.FromDate.IsZero() {
		return ""
	}
	return period.FromDate.Format(datetime.DateTimeLayout)
}

func permissionList(p lifecycle.PermissionSet) string {
	var actions []string
	if p.RepaymentAllowed {
		actions = append(actions, "repay")
	}
	if p.WaiveAllowed {
		actions = append(actions, "waive")
	}
	if p.RejectAllowed {
		actions = append(actions, "reject")
	}
	if p.WithdrawAllowed {
		actions = append(actions, "withdraw")
	}
	if p.UndoApprovalAllowed {
		actions = append(actions, "undo-approval")
	}
	if p.UndoDisbursalAllowed {
		actions = append(actions, "undo-disbursal")
	}
	if p.DisbursalAllowed {
		actions = append(actions, "disburse")
	}
	if len(actions) == 0 {
		return "none"
	}
	out := actions[0]
	for _, a := range actions[1:] {
		out += ", " + a
	}
	return out
}
