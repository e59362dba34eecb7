package relations

import "context"

// TupleStore persists and queries relationship tuples. Implementations
// range from the in-memory store in this package to SQL-backed stores for
// deployments that need durability; the Graph only depends on this
// interface.
type TupleStore interface {
	// Write stores a tuple. Writing an existing tuple is a no-op.
	Write(ctx context.Context, tuple Tuple) error

	// WriteBatch stores multiple tuples atomically.
	WriteBatch(ctx context.Context, tuples []Tuple) error

	// Delete removes a specific tuple. Deleting a missing tuple is a no-op.
	Delete(ctx context.Context, tuple Tuple) error

	// DeleteMatching removes every tuple matching the filter.
	DeleteMatching(ctx context.Context, filter Filter) error

	// Read returns every tuple matching the filter.
	Read(ctx context.Context, filter Filter) ([]Tuple, error)

	// Exists reports whether the exact tuple is stored.
	Exists(ctx context.Context, tuple Tuple) (bool, error)
}
