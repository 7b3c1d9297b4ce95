package domain

import "time"

const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"
)

// FinanceEntry is one cash movement. Amount is in whole rupiah.
type FinanceEntry struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	RecordedBy  uint      `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// FinanceSummary aggregates entries over a period.
type FinanceSummary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}

// Summarize computes the period totals for a set of entries.
func Summarize(entries []FinanceEntry) FinanceSummary {
	var summary FinanceSummary
	for _, e := range entries {
		switch e.Kind {
		case FinanceIncome:
			summary.TotalIncome += e.Amount
		case FinanceExpense:
			summary.TotalExpense += e.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary
}
