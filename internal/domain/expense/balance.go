package expense

import (
	"github.com/shopspring/decimal"
)

// BalanceSummary holds the aggregate totals for a filtered set of
// disbursements and reconciliations belonging to one company.
// Balance > 0 means funds are owed back by the responsible party;
// Balance < 0 means the company over-reimbursed; zero is fully reconciled.
type BalanceSummary struct {
	TotalDisbursed  decimal.Decimal `json:"total_disbursed"`
	TotalReconciled decimal.Decimal `json:"total_reconciled"`
	Balance         decimal.Decimal `json:"balance"`
}

// CalculateBalance computes exact decimal totals over the given records.
// Summation is associative and commutative, so input order never affects
// the result. Pure: no side effects, no error conditions.
func CalculateBalance(disbursements []Disbursement, reconciliations []Reconciliation) BalanceSummary {
	totalDisbursed := decimal.Zero
	for _, d := range disbursements {
		totalDisbursed = totalDisbursed.Add(d.Amount)
	}

	totalReconciled := decimal.Zero
	for _, r := range reconciliations {
		totalReconciled = totalReconciled.Add(r.Amount)
	}

	return BalanceSummary{
		TotalDisbursed:  totalDisbursed,
		TotalReconciled: totalReconciled,
		Balance:         totalDisbursed.Sub(totalReconciled),
	}
}

// IsSettled returns true when disbursed and reconciled amounts match exactly
func (b BalanceSummary) IsSettled() bool {
	return b.Balance.IsZero()
}

// IsOwedBack returns true when the responsible party still holds funds
func (b BalanceSummary) IsOwedBack() bool {
	return b.Balance.IsPositive()
}

// IsOverReimbursed returns true when receipts exceed the disbursed amount
func (b BalanceSummary) IsOverReimbursed() bool {
	return b.Balance.IsNegative()
}
