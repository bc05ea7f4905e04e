package dto

import (
	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryAmountResponse is the expense total of one category.
type CategoryAmountResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value" swaggertype:"string"`
}

// MonthFlowResponse is the income and expense of one month.
type MonthFlowResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income" swaggertype:"string"`
	Expense decimal.Decimal `json:"expense" swaggertype:"string"`
}

// DashboardResponse is the overview shown on the home screen.
type DashboardResponse struct {
	Totals             TotalsResponse           `json:"totals"`
	ExpensesByCategory []CategoryAmountResponse `json:"expensesByCategory"`
	CashFlow           []MonthFlowResponse      `json:"cashFlow"`
	Recent             []TransactionResponse    `json:"recent"`
}

// ToDashboardResponse converts the domain dashboard.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	categories := make([]CategoryAmountResponse, len(d.ExpensesByCategory))
	for i, c := range d.ExpensesByCategory {
		categories[i] = CategoryAmountResponse{Name: c.Category, Value: c.Amount}
	}
	flows := make([]MonthFlowResponse, len(d.CashFlow))
	for i, f := range d.CashFlow {
		flows[i] = MonthFlowResponse{Month: f.Month.String(), Income: f.Income, Expense: f.Expense}
	}
	return DashboardResponse{
		Totals:             toTotalsResponse(d.Totals),
		ExpensesByCategory: categories,
		CashFlow:           flows,
		Recent:             ToTransactionResponses(d.Recent),
	}
}
