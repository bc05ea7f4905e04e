package repositories

import (
	"context"

	"github.com/SscSPs/finai_backend/internal/core/domain"
)

// TransactionReader defines read operations for a user's ledger.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID.
	// Returns apperrors.ErrNotFound when it does not exist or belongs to someone else.
	FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error)

	// ListTransactionsByUser returns every stored transaction of a user, newest first.
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsPage returns one page of the ledger, newest first, and the token of
	// the next page (nil on the last page).
	ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for stored transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID, userID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
