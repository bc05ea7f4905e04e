// Package projection resolves which transactions belong to a calendar month, synthesizing
// future instances of recurring transactions, and narrows month views with filters.
// Everything here is pure: "today" is always passed in by the caller.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
)

// YearlyMode selects how yearly subscriptions are projected.
type YearlyMode string

const (
	// YearlyAnniversary projects a yearly subscription only into its anniversary month.
	YearlyAnniversary YearlyMode = "anniversary"
	// YearlyEveryMonth projects a yearly subscription into every future month, exactly
	// like a monthly one. This is the behavior of the first version of the app.
	YearlyEveryMonth YearlyMode = "monthly"
)

// ParseYearlyMode parses a configured yearly mode; empty selects YearlyAnniversary.
func ParseYearlyMode(s string) (YearlyMode, error) {
	switch YearlyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", YearlyAnniversary:
		return YearlyAnniversary, nil
	case YearlyEveryMonth:
		return YearlyEveryMonth, nil
	}
	return "", fmt.Errorf("%w: unknown yearly projection mode %q", apperrors.ErrInvalidArgument, s)
}

// Projector builds month views. The zero value uses YearlyAnniversary and projects every
// recurring transaction into any future month, whatever its own date.
type Projector struct {
	YearlyMode YearlyMode
	// StartAtOrigin stops projection into months before the recurring transaction's own
	// month, and drops installments numbered below 1.
	StartAtOrigin bool
}

// ProjectMonth returns what a user should see for target.
//
// For the current month and earlier it returns the transactions dated inside target,
// in input order, as real entries; recurrence is not consulted. For later months it
// returns only projections of the recurring transactions and never a real one.
func (p Projector) ProjectMonth(all []domain.Transaction, target domain.Month, today time.Time) []domain.Entry {
	current := domain.MonthOf(today)

	out := make([]domain.Entry, 0)
	if !target.After(current) {
		for _, t := range all {
			if target.Contains(t.Date) {
				out = append(out, domain.RealEntry{Transaction: t})
			}
		}
		return out
	}

	for _, t := range all {
		if e, ok := p.project(t, target); ok {
			out = append(out, e)
		}
	}
	return out
}

// project synthesizes the instance of t for target, if t has one.
func (p Projector) project(t domain.Transaction, target domain.Month) (domain.ProjectedEntry, bool) {
	if t.IsProjected || !t.IsRecurring() {
		return domain.ProjectedEntry{}, false
	}
	origin := t.Date.YearMonth()
	if p.StartAtOrigin && target.Before(origin) {
		return domain.ProjectedEntry{}, false
	}

	rec := *t.Recurrence
	switch rec.Kind {
	case domain.RecurrenceMonthly:
	case domain.RecurrenceYearly:
		if p.YearlyMode != YearlyEveryMonth && target.Month != origin.Month {
			return domain.ProjectedEntry{}, false
		}
	case domain.RecurrenceInstallment:
		if rec.TotalInstallments == 0 {
			return domain.ProjectedEntry{}, false
		}
		paid := rec.CurrentInstallment
		if paid == 0 {
			paid = 1
		}
		next := paid + target.MonthsSince(origin)
		if next > rec.TotalInstallments || (p.StartAtOrigin && next < 1) {
			return domain.ProjectedEntry{}, false
		}
		rec.CurrentInstallment = next
	default:
		return domain.ProjectedEntry{}, false
	}

	sourceID := t.TransactionID
	t.TransactionID = domain.ProjectedID(sourceID, target)
	t.Date = target.ClampedDate(t.Date.Day)
	t.Recurrence = &rec
	t.IsProjected = true
	return domain.ProjectedEntry{Transaction: t, SourceID: sourceID, Month: target}, true
}

// ProjectMonth projects with the default Projector.
func ProjectMonth(all []domain.Transaction, target domain.Month, today time.Time) []domain.Entry {
	return Projector{}.ProjectMonth(all, target, today)
}

// IsFutureMonth reports whether target lies after the month of today. It is the same
// test ProjectMonth and MonthOptions use.
func IsFutureMonth(target domain.Month, today time.Time) bool {
	return target.After(domain.MonthOf(today))
}

// FindProjection returns the projection of sourceID into target, or ErrNotFound when
// that transaction does not project into target.
func (p Projector) FindProjection(all []domain.Transaction, sourceID string, target domain.Month, today time.Time) (domain.ProjectedEntry, error) {
	if !IsFutureMonth(target, today) {
		return domain.ProjectedEntry{}, fmt.Errorf("%w: %s is not a future month", apperrors.ErrPreconditionFailed, target)
	}
	for _, t := range all {
		if t.TransactionID != sourceID {
			continue
		}
		if e, ok := p.project(t, target); ok {
			return e, nil
		}
		break
	}
	return domain.ProjectedEntry{}, fmt.Errorf("%w: no projection of %s in %s", apperrors.ErrNotFound, sourceID, target)
}
