package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(date string, amount string, typ domain.TransactionType, status domain.TransactionStatus, category string) domain.Transaction {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{
		TransactionID: date + category,
		Date:          d,
		Amount:        decimal.RequireFromString(amount),
		Type:          typ,
		Status:        status,
		Category:      category,
		Merchant:      category,
	}
}

func TestSummarize(t *testing.T) {
	entries := domain.RealEntries([]domain.Transaction{
		txn("2024-03-05", "4200.00", domain.Income, domain.StatusCompleted, "Salário"),
		txn("2024-03-02", "345.20", domain.Expense, domain.StatusCompleted, "Alimentação"),
		txn("2024-03-01", "150.00", domain.Expense, domain.StatusPending, "Transporte"),
		txn("2024-03-07", "100.10", domain.Income, domain.StatusPending, "Outros"),
	})

	totals := Summarize(entries)

	assert.True(t, decimal.RequireFromString("4300.10").Equal(totals.Income), totals.Income.String())
	assert.True(t, decimal.RequireFromString("495.20").Equal(totals.Expense), totals.Expense.String())
	assert.True(t, decimal.RequireFromString("3804.90").Equal(totals.Balance), totals.Balance.String())
	assert.True(t, decimal.RequireFromString("250.10").Equal(totals.Pending), totals.Pending.String())
}

func TestSummarize_Empty(t *testing.T) {
	totals := Summarize(nil)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Balance.IsZero())
	assert.True(t, totals.Pending.IsZero())
}

func TestExpensesByCategory(t *testing.T) {
	txns := []domain.Transaction{
		txn("2024-03-01", "10", domain.Expense, domain.StatusCompleted, "Transporte"),
		txn("2024-03-02", "50", domain.Expense, domain.StatusCompleted, "Alimentação"),
		txn("2024-03-03", "15", domain.Expense, domain.StatusCompleted, "Transporte"),
		txn("2024-03-04", "25", domain.Expense, domain.StatusCompleted, "Lazer & Streaming"),
		txn("2024-03-05", "999", domain.Income, domain.StatusCompleted, "Salário"),
	}

	got := ExpensesByCategory(txns)

	require.Len(t, got, 3)
	assert.Equal(t, "Alimentação", got[0].Category)
	// 25 each: ordered by name
	assert.Equal(t, "Lazer & Streaming", got[1].Category)
	assert.Equal(t, "Transporte", got[2].Category)
	assert.True(t, decimal.NewFromInt(25).Equal(got[2].Amount))
}

func TestCashFlow(t *testing.T) {
	today := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		txn("2024-03-05", "100", domain.Income, domain.StatusCompleted, "Salário"),
		txn("2024-03-06", "40", domain.Expense, domain.StatusCompleted, "Compras"),
		txn("2024-01-10", "20", domain.Expense, domain.StatusCompleted, "Compras"),
		txn("2023-09-30", "500", domain.Income, domain.StatusCompleted, "Salário"),
		txn("2024-04-01", "70", domain.Expense, domain.StatusPending, "Compras"),
	}

	flows := CashFlow(txns, today, 6)

	require.Len(t, flows, 6)
	assert.Equal(t, "2023-10", flows[0].Month.String())
	assert.Equal(t, "2024-03", flows[5].Month.String())
	assert.True(t, decimal.NewFromInt(20).Equal(flows[3].Expense))
	assert.True(t, decimal.NewFromInt(100).Equal(flows[5].Income))
	assert.True(t, decimal.NewFromInt(40).Equal(flows[5].Expense))
	assert.True(t, flows[0].Income.IsZero(), "September is outside the window")

	assert.Empty(t, CashFlow(txns, today, 0))
}
