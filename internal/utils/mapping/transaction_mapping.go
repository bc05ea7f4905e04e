package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/SscSPs/finai_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction. The recurrence
// is stored as JSON with the same keys the client uses.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Date:          d.Date.Time(),
		Amount:        d.Amount,
		Type:          string(d.Type),
		Category:      d.Category,
		Merchant:      d.Merchant,
		Status:        string(d.Status),
		Notes:         d.Notes,
		IsProjected:   d.IsProjected,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.IsRecurring() {
		raw, err := json.Marshal(d.Recurrence)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to encode recurrence: %w", err)
		}
		m.Recurrence = raw
	}
	return m, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Date:          domain.DateOf(m.Date),
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Category:      m.Category,
		Merchant:      m.Merchant,
		Status:        domain.TransactionStatus(m.Status),
		Notes:         m.Notes,
		IsProjected:   m.IsProjected,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Recurrence) > 0 && string(m.Recurrence) != "null" {
		var rec domain.Recurrence
		if err := json.Unmarshal(m.Recurrence, &rec); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode recurrence of %s: %w", m.TransactionID, err)
		}
		if rec.Kind != "" && rec.Kind != domain.RecurrenceNone {
			d.Recurrence = &rec
		}
	}
	return d, nil
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
