package faq

import "context"

// Corpus exposes the currently loaded FAQ entries. Implementations return an
// immutable snapshot; an unloaded or failed corpus is empty.
type Corpus interface {
	Entries() []Entry
}

// Stats defines the persistence contract for query statistics.
type Stats interface {
	Record(ctx context.Context, query string, outcome Outcome) error
	Top(ctx context.Context, limit int) ([]QueryStat, error)
}
