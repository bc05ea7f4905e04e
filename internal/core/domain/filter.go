package domain

import "github.com/shopspring/decimal"

// FilterAll disables the category or type predicate of a TransactionFilter.
const FilterAll = "all"

// TransactionFilter narrows a month view. Field values mirror the query string
// contract: Category and Type accept "all".
type TransactionFilter struct {
	Month    string `json:"month"`
	Search   string `json:"search"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// MonthOption is one entry of the month picker.
type MonthOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	IsFuture bool   `json:"isFuture"`
}

// Totals aggregates a list of entries.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Pending decimal.Decimal `json:"pending"`
}

// CategoryAmount is the expense total of one category.
type CategoryAmount struct {
	Category string          `json:"name"`
	Amount   decimal.Decimal `json:"value"`
}

// MonthFlow is the real income and expense of one calendar month.
type MonthFlow struct {
	Month   Month           `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Default category vocabulary offered by the client. The core treats categories as
// opaque strings.
var DefaultCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Lazer & Streaming",
	"Compras",
	"Salário",
	"Investimentos",
	"Contas (Luz/Água)",
	"Saúde",
	"Educação",
	"Outros",
}
