package dto

import (
	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurrenceRequest is the optional recurrence of a created or updated transaction.
type RecurrenceRequest struct {
	Type               domain.RecurrenceKind `json:"type" binding:"required,oneof=none monthly yearly installment"`
	CurrentInstallment int                   `json:"currentInstallment,omitempty" binding:"omitempty,min=1"`
	TotalInstallments  int                   `json:"totalInstallments,omitempty" binding:"omitempty,min=2"`
}

// ToDomain converts the request, returning nil for "none".
func (r *RecurrenceRequest) ToDomain() *domain.Recurrence {
	if r == nil || r.Type == domain.RecurrenceNone {
		return nil
	}
	rec := &domain.Recurrence{Kind: r.Type}
	if r.Type == domain.RecurrenceInstallment {
		rec.CurrentInstallment = r.CurrentInstallment
		rec.TotalInstallments = r.TotalInstallments
	}
	return rec
}

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Date       string             `json:"date" binding:"required,calendardate" example:"2024-03-04"`
	Amount     decimal.Decimal    `json:"amount" swaggertype:"string" example:"120.50"`
	Type       string             `json:"type" binding:"required,oneof=income expense"`
	Category   string             `json:"category" binding:"required,max=100"`
	Merchant   string             `json:"merchant" binding:"required,max=255"`
	Status     string             `json:"status" binding:"omitempty,oneof=pending completed"`
	Notes      string             `json:"notes" binding:"max=1000"`
	Recurrence *RecurrenceRequest `json:"recurrence"`
}

// UpdateTransactionRequest replaces the editable fields of a stored transaction.
type UpdateTransactionRequest CreateTransactionRequest

// MaterializeProjectionRequest turns the projection of a recurring transaction into a
// real transaction, optionally overriding some of its fields.
type MaterializeProjectionRequest struct {
	SourceID string           `json:"sourceID" binding:"required"`
	Month    string           `json:"month" binding:"required,yearmonth" example:"2024-05"`
	Amount   *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`
	Status   string           `json:"status" binding:"omitempty,oneof=pending completed"`
	Notes    *string          `json:"notes,omitempty"`
}

// MonthViewParams are the query parameters of the month view and the CSV export.
type MonthViewParams struct {
	Month    string `form:"month" binding:"required,yearmonth"`
	Search   string `form:"search"`
	Category string `form:"category,default=all"`
	Type     string `form:"type,default=all" binding:"omitempty,oneof=all income expense"`
}

// ToFilter converts the query parameters to a domain filter.
func (p MonthViewParams) ToFilter() domain.TransactionFilter {
	return domain.TransactionFilter{Month: p.Month, Search: p.Search, Category: p.Category, Type: p.Type}
}

// ListTransactionsParams defines the query parameters of the paged ledger.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// RecurrenceResponse mirrors domain.Recurrence on the wire.
type RecurrenceResponse struct {
	Type               domain.RecurrenceKind `json:"type"`
	CurrentInstallment int                   `json:"currentInstallment,omitempty"`
	TotalInstallments  int                   `json:"totalInstallments,omitempty"`
}

// TransactionResponse is a transaction as the client sees it. Projected rows carry the
// id of the transaction they were derived from.
type TransactionResponse struct {
	ID          string                   `json:"id"`
	Date        string                   `json:"date"`
	Amount      decimal.Decimal          `json:"amount" swaggertype:"string"`
	Type        domain.TransactionType   `json:"type"`
	Category    string                   `json:"category"`
	Merchant    string                   `json:"merchant"`
	Status      domain.TransactionStatus `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	Recurrence  *RecurrenceResponse      `json:"recurrence,omitempty"`
	IsProjected bool                     `json:"isProjected"`
	SourceID    string                   `json:"sourceID,omitempty"`
}

// ToTransactionResponse converts a stored transaction.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.TransactionID,
		Date:        t.Date.String(),
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Merchant:    t.Merchant,
		Status:      t.Status,
		Notes:       t.Notes,
		IsProjected: t.IsProjected,
	}
	if t.Recurrence != nil {
		resp.Recurrence = &RecurrenceResponse{
			Type:               t.Recurrence.Kind,
			CurrentInstallment: t.Recurrence.CurrentInstallment,
			TotalInstallments:  t.Recurrence.TotalInstallments,
		}
	}
	return resp
}

// ToEntryResponse converts either variant of a month view entry.
func ToEntryResponse(e domain.Entry) TransactionResponse {
	t := e.Txn()
	resp := ToTransactionResponse(&t)
	if p, ok := e.(domain.ProjectedEntry); ok {
		resp.SourceID = p.SourceID
	}
	return resp
}

// ToTransactionResponses converts a slice of stored transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// ListTransactionsResponse is one page of the ledger.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TotalsResponse carries the aggregate of a view.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income" swaggertype:"string"`
	Expense decimal.Decimal `json:"expense" swaggertype:"string"`
	Balance decimal.Decimal `json:"balance" swaggertype:"string"`
	Pending decimal.Decimal `json:"pending" swaggertype:"string"`
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance, Pending: t.Pending}
}

// MonthViewResponse is the month view: the entries shown for the month and their totals.
type MonthViewResponse struct {
	Month        string                `json:"month"`
	IsFuture     bool                  `json:"isFuture"`
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
}

// ToMonthViewResponse converts a domain month view.
func ToMonthViewResponse(v *domain.MonthView) MonthViewResponse {
	txns := make([]TransactionResponse, len(v.Entries))
	for i, e := range v.Entries {
		txns[i] = ToEntryResponse(e)
	}
	return MonthViewResponse{
		Month:        v.Month.String(),
		IsFuture:     v.IsFuture,
		Transactions: txns,
		Totals:       toTotalsResponse(v.Totals),
	}
}

// MonthOptionsParams are the query parameters of the month picker.
type MonthOptionsParams struct {
	Count int `form:"count,default=12" binding:"min=0,max=120"`
}

// MonthOptionsResponse lists the month picker entries.
type MonthOptionsResponse struct {
	Months []domain.MonthOption `json:"months"`
}

// CategoriesResponse lists the suggested categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
