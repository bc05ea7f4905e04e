package domain

// MonthView is a filtered month of the ledger with the totals of what is shown.
type MonthView struct {
	Month    Month   `json:"month"`
	IsFuture bool    `json:"isFuture"`
	Entries  []Entry `json:"entries"`
	Totals   Totals  `json:"totals"`
}

// Dashboard is the overview of a user's real transactions.
type Dashboard struct {
	Totals             Totals           `json:"totals"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	CashFlow           []MonthFlow      `json:"cashFlow"`
	Recent             []Transaction    `json:"recent"`
}

// Dashboard window sizes.
const (
	DashboardCashFlowMonths = 6
	DashboardRecentCount    = 5
)
