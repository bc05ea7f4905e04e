package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType tells whether a transaction adds to or takes from the user's balance.
// The amount itself is always a non-negative magnitude.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// TransactionStatus indicates whether a transaction has been settled.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
)

func (s TransactionStatus) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled flips pending and completed.
func (s TransactionStatus) Toggled() TransactionStatus {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// RecurrenceKind describes how a transaction repeats.
type RecurrenceKind string

const (
	RecurrenceNone        RecurrenceKind = "none"
	RecurrenceMonthly     RecurrenceKind = "monthly"
	RecurrenceYearly      RecurrenceKind = "yearly"
	RecurrenceInstallment RecurrenceKind = "installment"
)

func (k RecurrenceKind) IsValid() bool {
	switch k {
	case RecurrenceNone, RecurrenceMonthly, RecurrenceYearly, RecurrenceInstallment:
		return true
	}
	return false
}

// Recurrence marks a transaction as a subscription or as one installment of a purchase.
// The installment counters are only meaningful for RecurrenceInstallment.
type Recurrence struct {
	Kind               RecurrenceKind `json:"type"`
	CurrentInstallment int            `json:"currentInstallment,omitempty"`
	TotalInstallments  int            `json:"totalInstallments,omitempty"`
}

// Validate checks the installment invariants of a stored recurrence.
func (r Recurrence) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: unknown recurrence type %q", apperrors.ErrValidation, r.Kind)
	}
	if r.Kind != RecurrenceInstallment {
		return nil
	}
	if r.TotalInstallments < 2 {
		return fmt.Errorf("%w: an installment plan needs at least 2 installments", apperrors.ErrValidation)
	}
	if r.CurrentInstallment < 1 || r.CurrentInstallment > r.TotalInstallments {
		return fmt.Errorf("%w: installment %d is outside 1..%d", apperrors.ErrValidation, r.CurrentInstallment, r.TotalInstallments)
	}
	return nil
}

// Transaction is a single income or expense event owned by a user.
type Transaction struct {
	TransactionID string            `json:"id"`
	UserID        string            `json:"userID"`
	Date          Date              `json:"date"`
	Amount        decimal.Decimal   `json:"amount"`
	Type          TransactionType   `json:"type"`
	Category      string            `json:"category"`
	Merchant      string            `json:"merchant"`
	Status        TransactionStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	Recurrence    *Recurrence       `json:"recurrence,omitempty"`
	IsProjected   bool              `json:"isProjected,omitempty"`
	AuditFields
}

// RecurrenceKind returns the transaction's recurrence kind, RecurrenceNone when unset.
func (t Transaction) RecurrenceKind() RecurrenceKind {
	if t.Recurrence == nil || t.Recurrence.Kind == "" {
		return RecurrenceNone
	}
	return t.Recurrence.Kind
}

// IsRecurring reports whether the transaction repeats in some form.
func (t Transaction) IsRecurring() bool {
	return t.RecurrenceKind() != RecurrenceNone
}

// Validate checks the fields a stored transaction must satisfy.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.Type)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, t.Status)
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return fmt.Errorf("%w: merchant is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProjectedIDPrefix marks identifiers of synthetic, never persisted transactions.
const ProjectedIDPrefix = "proj-"

// ProjectedID derives the stable identifier of a projection of sourceID into month.
func ProjectedID(sourceID string, month Month) string {
	return ProjectedIDPrefix + sourceID + "-" + month.String()
}

// IsProjectedID reports whether id names a synthetic transaction. Write paths receive
// bare ids from clients, so this is where they refuse projections.
func IsProjectedID(id string) bool {
	return strings.HasPrefix(id, ProjectedIDPrefix)
}
