package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	entries := []FinanceEntry{
		{Kind: FinanceIncome, Amount: 500000},
		{Kind: FinanceIncome, Amount: 250000},
		{Kind: FinanceExpense, Amount: 150000},
	}

	summary := Summarize(entries)

	assert.Equal(t, int64(750000), summary.TotalIncome)
	assert.Equal(t, int64(150000), summary.TotalExpense)
	assert.Equal(t, int64(600000), summary.Balance)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalExpense)
	assert.Zero(t, summary.Balance)
}

func TestSummarize_NegativeBalance(t *testing.T) {
	entries := []FinanceEntry{
		{Kind: FinanceIncome, Amount: 100000},
		{Kind: FinanceExpense, Amount: 300000},
	}

	assert.Equal(t, int64(-200000), Summarize(entries).Balance)
}
