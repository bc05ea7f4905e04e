package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Date          time.Time       `db:"transaction_date"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"transaction_type"`
	Category      string          `db:"category"`
	Merchant      string          `db:"merchant"`
	Status        string          `db:"status"`
	Notes         string          `db:"notes"`
	Recurrence    []byte          `db:"recurrence"` // JSONB, null for one-off transactions
	IsProjected   bool            `db:"is_projected"`
	AuditFields
}
