package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finai_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/core/projection"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/utils/accounting"
	"github.com/SscSPs/finai_backend/internal/utils/export"
	"github.com/google/uuid"
)

// transactionService implements portssvc.TransactionSvcFacade
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryFacade
	projector projection.Projector
	now       func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithClock replaces time.Now. Every request reads it once, so the projector and the
// month picker agree on what "today" is.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithYearlyMode selects how yearly subscriptions are projected.
func WithYearlyMode(mode projection.YearlyMode) TransactionServiceOption {
	return func(s *transactionService) {
		s.projector.YearlyMode = mode
	}
}

// WithStartAtOrigin keeps recurring transactions out of months before their own month.
func WithStartAtOrigin(enabled bool) TransactionServiceOption {
	return func(s *transactionService) {
		s.projector.StartAtOrigin = enabled
	}
}

// NewTransactionService creates a new transaction service with the given options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo: repo,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc
}

// requireRealID refuses ids of projected transactions, which are never stored.
func requireRealID(transactionID string) error {
	if domain.IsProjectedID(transactionID) {
		return fmt.Errorf("%w: %s is a projected transaction; materialize it first", apperrors.ErrPreconditionFailed, transactionID)
	}
	return nil
}

// applyRequest copies the editable fields of req onto t.
func applyRequest(t *domain.Transaction, req dto.CreateTransactionRequest) error {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return err
	}
	status := domain.TransactionStatus(req.Status)
	if status == "" {
		status = domain.StatusCompleted
	}
	t.Date = date
	t.Amount = req.Amount
	t.Type = domain.TransactionType(req.Type)
	t.Category = req.Category
	t.Merchant = req.Merchant
	t.Status = status
	t.Notes = req.Notes
	t.Recurrence = req.Recurrence.ToDomain()
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AuditFields:   domain.NewAuditFields(userID, s.now()),
	}
	if err := applyRequest(&txn, req); err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	if err := requireRealID(transactionID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := requireRealID(transactionID); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(txn, dto.CreateTransactionRequest(req)); err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	txn.LastUpdatedAt = s.now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := requireRealID(transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, userID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) ToggleTransactionStatus(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	if err := requireRealID(transactionID); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	txn.Status = txn.Status.Toggled()
	txn.LastUpdatedAt = s.now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to toggle transaction status: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	txns, next, err := s.txnRepo.ListTransactionsPage(ctx, userID, params.Limit, token)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

// parseFilter validates the filter values that have a closed vocabulary.
func parseFilter(filter domain.TransactionFilter) (domain.Month, error) {
	month, err := domain.ParseMonth(filter.Month)
	if err != nil {
		return domain.Month{}, err
	}
	switch filter.Type {
	case "", domain.FilterAll, string(domain.Income), string(domain.Expense):
	default:
		return domain.Month{}, fmt.Errorf("%w: unknown type filter %q", apperrors.ErrInvalidArgument, filter.Type)
	}
	return month, nil
}

func (s *transactionService) GetMonthView(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.MonthView, error) {
	month, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	all, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	today := s.now()
	entries := projection.FilterEntries(s.projector.ProjectMonth(all, month, today), filter)
	s.LogDebug(ctx, "Month view built",
		slog.String("month", month.String()),
		slog.Int("stored", len(all)),
		slog.Int("shown", len(entries)))

	return &domain.MonthView{
		Month:    month,
		IsFuture: projection.IsFutureMonth(month, today),
		Entries:  entries,
		Totals:   accounting.Summarize(entries),
	}, nil
}

func (s *transactionService) ListMonthOptions(_ context.Context, count int) []domain.MonthOption {
	return projection.MonthOptions(count, s.now())
}

func (s *transactionService) MaterializeProjection(ctx context.Context, userID string, req dto.MaterializeProjectionRequest) (*domain.Transaction, error) {
	month, err := domain.ParseMonth(req.Month)
	if err != nil {
		return nil, err
	}
	all, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	now := s.now()
	projected, err := s.projector.FindProjection(all, req.SourceID, month, now)
	if err != nil {
		return nil, err
	}

	// The stored copy is a single occurrence; the source keeps recurring.
	txn := projected.Transaction
	txn.TransactionID = uuid.NewString()
	txn.IsProjected = false
	txn.AuditFields = domain.NewAuditFields(userID, now)
	if rec := txn.Recurrence; rec != nil && rec.Kind == domain.RecurrenceInstallment && txn.Notes == "" {
		txn.Notes = fmt.Sprintf("Parcela %d/%d", rec.CurrentInstallment, rec.TotalInstallments)
	}
	txn.Recurrence = nil
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Status != "" {
		txn.Status = domain.TransactionStatus(req.Status)
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save materialized projection", slog.String("source_id", req.SourceID))
		return nil, fmt.Errorf("failed to materialize projection: %w", err)
	}
	s.LogInfo(ctx, "Projection materialized",
		slog.String("source_id", req.SourceID),
		slog.String("month", month.String()),
		slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) ExportMonthCSV(ctx context.Context, userID string, filter domain.TransactionFilter, w io.Writer) error {
	view, err := s.GetMonthView(ctx, userID, filter)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, view.Entries)
}

func (s *transactionService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	all, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// The repository returns newest first.
	recent := all
	if len(recent) > domain.DashboardRecentCount {
		recent = recent[:domain.DashboardRecentCount]
	}
	return &domain.Dashboard{
		Totals:             accounting.SummarizeTransactions(all),
		ExpensesByCategory: accounting.ExpensesByCategory(all),
		CashFlow:           accounting.CashFlow(all, s.now(), domain.DashboardCashFlowMonths),
		Recent:             recent,
	}, nil
}
