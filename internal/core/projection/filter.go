package projection

import (
	"strings"

	"github.com/SscSPs/finai_backend/internal/core/domain"
)

// FilterEntries keeps the entries matching every predicate of f, in input order.
func FilterEntries(entries []domain.Entry, f domain.TransactionFilter) []domain.Entry {
	search := strings.ToLower(f.Search)
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e.Txn(), search, f) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether t passes f.
func Matches(t domain.Transaction, f domain.TransactionFilter) bool {
	return matches(t, strings.ToLower(f.Search), f)
}

func matches(t domain.Transaction, lowerSearch string, f domain.TransactionFilter) bool {
	if lowerSearch != "" &&
		!strings.Contains(strings.ToLower(t.Merchant), lowerSearch) &&
		!strings.Contains(strings.ToLower(t.Category), lowerSearch) {
		return false
	}
	if !isAll(f.Category) && t.Category != f.Category {
		return false
	}
	if !isAll(f.Type) && string(t.Type) != f.Type {
		return false
	}
	return true
}

// An empty category or type is read as "all".
func isAll(v string) bool {
	return v == "" || v == domain.FilterAll
}
