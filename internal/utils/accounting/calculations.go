package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summarize totals a month view. Amounts are magnitudes; the sign comes from the type.
// Pending counts every pending entry regardless of type.
func Summarize(entries []domain.Entry) domain.Totals {
	return SummarizeTransactions(domain.Transactions(entries))
}

// SummarizeTransactions is Summarize over plain transactions.
func SummarizeTransactions(txns []domain.Transaction) domain.Totals {
	income := decimal.Zero
	expense := decimal.Zero
	pending := decimal.Zero

	for _, t := range txns {
		switch t.Type {
		case domain.Income:
			income = income.Add(t.Amount)
		case domain.Expense:
			expense = expense.Add(t.Amount)
		}
		if t.Status == domain.StatusPending {
			pending = pending.Add(t.Amount)
		}
	}

	return domain.Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
		Pending: pending,
	}
}

// ExpensesByCategory sums expenses per category, largest first. Ties are ordered by
// category name so the output is stable.
func ExpensesByCategory(txns []domain.Transaction) []domain.CategoryAmount {
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Type != domain.Expense {
			continue
		}
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	out := make([]domain.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		out = append(out, domain.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CashFlow returns the income and expense of each of the last months calendar months,
// oldest first and ending with the month of today. Only the given transactions are
// counted, so callers pass real ones.
func CashFlow(txns []domain.Transaction, today time.Time, months int) []domain.MonthFlow {
	if months <= 0 {
		return []domain.MonthFlow{}
	}
	current := domain.MonthOf(today)
	first := current.AddMonths(-(months - 1))

	flows := make([]domain.MonthFlow, months)
	for i := range flows {
		flows[i] = domain.MonthFlow{Month: first.AddMonths(i), Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, t := range txns {
		i := t.Date.YearMonth().MonthsSince(first)
		if i < 0 || i >= months {
			continue
		}
		switch t.Type {
		case domain.Income:
			flows[i].Income = flows[i].Income.Add(t.Amount)
		case domain.Expense:
			flows[i].Expense = flows[i].Expense.Add(t.Amount)
		}
	}
	return flows
}
