package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finai_backend/internal/core/ports/repositories"
	"github.com/SscSPs/finai_backend/internal/models"
	"github.com/SscSPs/finai_backend/internal/utils/mapping"
	"github.com/SscSPs/finai_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, transaction_date, amount, transaction_type, category,
	merchant, status, notes, recurrence, is_projected,
	created_at, created_by, last_updated_at, last_updated_by`

// Ordering must be stable for cursor pagination: date, then insertion time, then id.
const transactionOrder = `ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Date,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.Merchant,
		&m.Status,
		&m.Notes,
		&m.Recurrence,
		&m.IsProjected,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Date,
		m.Amount,
		m.Type,
		m.Category,
		m.Merchant,
		m.Status,
		m.Notes,
		m.Recurrence,
		m.IsProjected,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}
	query := `
		UPDATE transactions
		SET transaction_date = $1, amount = $2, transaction_type = $3, category = $4, merchant = $5,
		    status = $6, notes = $7, recurrence = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $11 AND user_id = $12;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Date,
		m.Amount,
		m.Type,
		m.Category,
		m.Merchant,
		m.Status,
		m.Notes,
		m.Recurrence,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`,
		transactionID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	d, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ` + transactionOrder + `;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	results, err := collectTransactions(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(results)
}

func (r *PgxTransactionRepository) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
		}
		// Tuple comparison matches the ORDER BY below.
		query += ` AND (transaction_date, created_at, transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
	}
	query += " " + transactionOrder + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions page", err)
	}
	results, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transaction rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{SortDate: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		nextTokenVal = &token
		results = results[:limit]
	}

	txns, err := mapping.ToDomainTransactionSlice(results)
	if err != nil {
		return nil, nil, err
	}
	return txns, nextTokenVal, nil
}
