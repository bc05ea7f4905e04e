package domain

// Entry is a transaction as it appears in a month view: either a stored transaction
// or a projection synthesized from a recurring one. The set of variants is closed.
type Entry interface {
	Txn() Transaction
	Projected() bool
	entry()
}

// RealEntry wraps a persisted transaction.
type RealEntry struct {
	Transaction
}

func (e RealEntry) Txn() Transaction { return e.Transaction }
func (e RealEntry) Projected() bool  { return false }
func (RealEntry) entry()             {}

// ProjectedEntry is a synthetic future instance of SourceID for Month. It is never
// persisted; acting on it means creating a new real transaction from it.
type ProjectedEntry struct {
	Transaction
	SourceID string `json:"sourceId"`
	Month    Month  `json:"month"`
}

func (e ProjectedEntry) Txn() Transaction { return e.Transaction }
func (e ProjectedEntry) Projected() bool  { return true }
func (ProjectedEntry) entry()             {}

// Transactions unwraps entries, preserving order.
func Transactions(entries []Entry) []Transaction {
	out := make([]Transaction, len(entries))
	for i, e := range entries {
		out[i] = e.Txn()
	}
	return out
}

// RealEntries wraps stored transactions as entries, preserving order.
func RealEntries(txns []Transaction) []Entry {
	out := make([]Entry, len(txns))
	for i, t := range txns {
		out[i] = RealEntry{Transaction: t}
	}
	return out
}
