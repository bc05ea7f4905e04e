package dto

import "github.com/shopspring/decimal"

// AskAdvisorRequest is a free-form question about the user's finances.
type AskAdvisorRequest struct {
	Question string `json:"question" binding:"required,max=2000"`
}

// AskAdvisorResponse is the advisor's markdown answer.
type AskAdvisorResponse struct {
	Answer string `json:"answer"`
}

// ReceiptResponse is what was read from a receipt image. The client uses it to prefill
// a new transaction.
type ReceiptResponse struct {
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
	Category string          `json:"category"`
}
