package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func unpaidRow(number int, dueDate string, principalDue, interestDue string) PeriodRow {
	return PeriodRow{
		LoanID:       1,
		Number:       number,
		DueDate:      date(dueDate),
		PrincipalDue: dec(principalDue),
		InterestDue:  dec(interestDue),
	}
}

func TestBuildTwoPeriodLoan(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}
	rows := []PeriodRow{
		unpaidRow(1, "2012-01-31", "500", "50"),
		unpaidRow(2, "2012-03-01", "500", "50"),
	}

	periods, summary, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if len(periods) != 3 {
		t.Fatalf("periods = %d, expected 3 including disbursement", len(periods))
	}

	// Synthetic disbursement period.
	if !periods[0].IsDisbursement() {
		t.Error("period 0 must be the disbursement period")
	}
	if !periods[0].FromDate.IsZero() {
		t.Errorf("disbursement fromDate = %v, expected zero", periods[0].FromDate)
	}
	if !periods[0].DueDate.Equal(disbursement.Date) {
		t.Errorf("disbursement dueDate = %v, expected %v", periods[0].DueDate, disbursement.Date)
	}
	if !periods[0].PrincipalDisbursed.Equal(dec("1000")) {
		t.Errorf("principalDisbursed = %s, expected 1000", periods[0].PrincipalDisbursed)
	}

	// From-date continuity: each period starts where the previous ended.
	if !periods[1].FromDate.Equal(disbursement.Date) {
		t.Errorf("period 1 fromDate = %v, expected disbursement date", periods[1].FromDate)
	}
	if !periods[2].FromDate.Equal(periods[1].DueDate) {
		t.Errorf("period 2 fromDate = %v, expected period 1 dueDate", periods[2].FromDate)
	}

	// Running balance snapshot is taken after the period's principal falls due.
	if !periods[1].OutstandingLoanBalance.Equal(dec("500")) {
		t.Errorf("period 1 balance = %s, expected 500", periods[1].OutstandingLoanBalance)
	}
	if !periods[2].OutstandingLoanBalance.Equal(dec("0")) {
		t.Errorf("period 2 balance = %s, expected 0", periods[2].OutstandingLoanBalance)
	}

	if !summary.CumulativePrincipalOutstanding.Equal(dec("1000")) {
		t.Errorf("cumulativePrincipalOutstanding = %s, expected 1000", summary.CumulativePrincipalOutstanding)
	}
	if !summary.CumulativeInterestExpected.Equal(dec("100")) {
		t.Errorf("cumulativeInterestExpected = %s, expected 100", summary.CumulativeInterestExpected)
	}
	if !summary.TotalExpectedRepayment.Equal(dec("1100")) {
		t.Errorf("totalExpectedRepayment = %s, expected 1100", summary.TotalExpectedRepayment)
	}
	if !summary.TotalOutstanding.Equal(dec("1100")) {
		t.Errorf("totalOutstanding = %s, expected 1100", summary.TotalOutstanding)
	}

	// Outstanding reconciliation holds after aggregation.
	reconciled := summary.CumulativePrincipalDisbursed.Sub(summary.CumulativePrincipalPaid)
	if !summary.CumulativePrincipalOutstanding.Equal(reconciled) {
		t.Errorf("principal outstanding %s != disbursed - paid %s",
			summary.CumulativePrincipalOutstanding, reconciled)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}
	rows := []PeriodRow{
		unpaidRow(1, "2012-02-01", "500", "50"),
		unpaidRow(2, "2012-03-01", "500", "50"),
	}

	periods1, summary1, err1 := Build(nil, disbursement, rows)
	periods2, summary2, err2 := Build(nil, disbursement, rows)
	if err1 != nil || err2 != nil {
		t.Fatalf("Build() unexpected errors: %v, %v", err1, err2)
	}

	if !reflect.DeepEqual(periods1, periods2) {
		t.Error("Build() periods differ between identical runs")
	}
	if !reflect.DeepEqual(summary1, summary2) {
		t.Error("Build() summaries differ between identical runs")
	}
}

func TestBuildWalksInInstallmentOrder(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("900")}
	// Rows arrive out of order; the walk must follow installment numbers.
	rows := []PeriodRow{
		unpaidRow(2, "2012-03-01", "300", "10"),
		unpaidRow(1, "2012-02-01", "300", "10"),
		unpaidRow(3, "2012-04-01", "300", "10"),
	}

	periods, _, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	balances := []string{"600", "300", "0"}
	for i, expected := range balances {
		p := periods[i+1]
		if p.Number != i+1 {
			t.Errorf("position %d has period %d, expected %d", i+1, p.Number, i+1)
		}
		if !p.OutstandingLoanBalance.Equal(dec(expected)) {
			t.Errorf("period %d balance = %s, expected %s", p.Number, p.OutstandingLoanBalance, expected)
		}
	}
}

func TestBuildPartiallyPaidAndWaived(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}
	waived := dec("10")
	rows := []PeriodRow{
		{
			LoanID:         1,
			Number:         1,
			DueDate:        date("2012-02-01"),
			PrincipalDue:   dec("500"),
			PrincipalPaid:  dec("200"),
			InterestDue:    dec("50"),
			InterestPaid:   dec("20"),
			InterestWaived: &waived,
		},
		unpaidRow(2, "2012-03-01", "500", "50"),
	}

	periods, summary, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	p1 := periods[1]
	if !p1.PrincipalOutstanding.Equal(dec("300")) {
		t.Errorf("principalOutstanding = %s, expected 300", p1.PrincipalOutstanding)
	}
	if !p1.InterestOutstanding.Equal(dec("20")) {
		t.Errorf("interestOutstanding = %s, expected 50-20-10=20", p1.InterestOutstanding)
	}
	if !summary.TotalWaivedToDate.Equal(dec("10")) {
		t.Errorf("totalWaivedToDate = %s, expected 10", summary.TotalWaivedToDate)
	}
	if !summary.TotalPaidToDate.Equal(dec("220")) {
		t.Errorf("totalPaidToDate = %s, expected 220", summary.TotalPaidToDate)
	}
}

func TestBuildMissingWaivedTreatedAsZero(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("100")}
	rows := []PeriodRow{unpaidRow(1, "2012-02-01", "100", "5")}

	periods, _, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !periods[1].InterestWaived.Equal(decimal.Zero) {
		t.Errorf("interestWaived = %s, expected 0", periods[1].InterestWaived)
	}
	if !periods[1].InterestOutstanding.Equal(dec("5")) {
		t.Errorf("interestOutstanding = %s, expected 5", periods[1].InterestOutstanding)
	}
}

func TestBuildDisbursementOnly(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}

	periods, summary, err := Build(nil, disbursement, nil)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("periods = %d, expected only the disbursement period", len(periods))
	}
	if !summary.CumulativePrincipalDisbursed.Equal(dec("1000")) {
		t.Errorf("cumulativePrincipalDisbursed = %s, expected 1000", summary.CumulativePrincipalDisbursed)
	}
	if !summary.CumulativePrincipalDue.Equal(decimal.Zero) {
		t.Errorf("cumulativePrincipalDue = %s, expected 0", summary.CumulativePrincipalDue)
	}
	if !summary.TotalExpectedRepayment.Equal(dec("1000")) {
		t.Errorf("totalExpectedRepayment = %s, expected 1000", summary.TotalExpectedRepayment)
	}
}

func TestBuildPrincipalOutstandingReconcilesWhenDuesDoNotCoverDisbursement(t *testing.T) {
	// Period dues summing to less than the disbursed amount is admissible
	// stored data; the summary outstanding must still reconcile against the
	// disbursement, not the period dues.
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}
	rows := []PeriodRow{
		{
			LoanID:        1,
			Number:        1,
			DueDate:       date("2012-02-01"),
			PrincipalDue:  dec("400"),
			PrincipalPaid: dec("100"),
			InterestDue:   dec("10"),
		},
	}

	_, summary, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if !summary.CumulativePrincipalOutstanding.Equal(dec("900")) {
		t.Errorf("cumulativePrincipalOutstanding = %s, expected disbursed - paid = 900",
			summary.CumulativePrincipalOutstanding)
	}
	reconciled := summary.CumulativePrincipalDisbursed.Sub(summary.CumulativePrincipalPaid)
	if !summary.CumulativePrincipalOutstanding.Equal(reconciled) {
		t.Errorf("principal outstanding %s != disbursed - paid %s",
			summary.CumulativePrincipalOutstanding, reconciled)
	}
}

func TestBuildNegativeOutstandingIsFault(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("100")}
	rows := []PeriodRow{
		{
			LoanID:        1,
			Number:        1,
			DueDate:       date("2012-02-01"),
			PrincipalDue:  dec("100"),
			PrincipalPaid: dec("150"), // paid more than due: stored data fault
			InterestDue:   dec("5"),
		},
	}

	_, _, err := Build(nil, disbursement, rows)
	var fault *NegativeOutstandingError
	if !errors.As(err, &fault) {
		t.Fatalf("Build() error = %v, expected NegativeOutstandingError", err)
	}
	if fault.Component != "principal" || fault.Period != 1 {
		t.Errorf("fault = %+v, expected principal fault in period 1", fault)
	}
}

func TestBuildNonContiguousDueDateIsFault(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-06-01"), Amount: dec("100")}
	rows := []PeriodRow{
		// Due before the disbursement date.
		unpaidRow(1, "2012-01-01", "100", "0"),
	}

	_, _, err := Build(nil, disbursement, rows)
	var fault *NonContiguousPeriodError
	if !errors.As(err, &fault) {
		t.Fatalf("Build() error = %v, expected NonContiguousPeriodError", err)
	}
}

func TestEarliestOutstandingDueDate(t *testing.T) {
	disbursement := Disbursement{Date: date("2012-01-01"), Amount: dec("1000")}
	paid := PeriodRow{
		LoanID:        1,
		Number:        1,
		DueDate:       date("2012-02-01"),
		PrincipalDue:  dec("500"),
		PrincipalPaid: dec("500"),
		InterestDue:   dec("50"),
		InterestPaid:  dec("50"),
	}
	rows := []PeriodRow{paid, unpaidRow(2, "2012-03-01", "500", "50")}

	periods, _, err := Build(nil, disbursement, rows)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	due, ok := EarliestOutstandingDueDate(periods)
	if !ok {
		t.Fatal("EarliestOutstandingDueDate() found nothing outstanding")
	}
	if !due.Equal(date("2012-03-01")) {
		t.Errorf("due = %v, expected 2012-03-01", due)
	}
}
