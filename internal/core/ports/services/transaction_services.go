package services

import (
	"context"
	"io"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/SscSPs/finai_backend/internal/dto"
)

// TransactionReaderSvc defines read operations over stored transactions.
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations. Every method refuses synthetic
// (projected) ids with apperrors.ErrPreconditionFailed.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	ToggleTransactionStatus(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
}

// ProjectionSvc defines the month oriented views, including projected months.
type ProjectionSvc interface {
	// GetMonthView projects, filters and totals one month of the user's ledger.
	GetMonthView(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.MonthView, error)

	// ListMonthOptions returns count months starting at the current one.
	ListMonthOptions(ctx context.Context, count int) []domain.MonthOption

	// MaterializeProjection stores the projection of a recurring transaction as a new
	// real transaction.
	MaterializeProjection(ctx context.Context, userID string, req dto.MaterializeProjectionRequest) (*domain.Transaction, error)

	// ExportMonthCSV writes the filtered month view as CSV.
	ExportMonthCSV(ctx context.Context, userID string, filter domain.TransactionFilter, w io.Writer) error
}

// DashboardSvc defines the overview reports.
type DashboardSvc interface {
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	ProjectionSvc
	DashboardSvc
}
