package validation

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// Queryset is the persistence collaborator the validation engine runs its
// queries and cache writes through. The store package provides SQL-backed
// implementations; tests may substitute fakes or mocks.
//
// A nil condition selects every row of the model's table. Conditions are
// squirrel Sqlizers so the per-validator condition builders compose with
// whatever filters the caller already has.
type Queryset[T Model] interface {
	// Select returns the rows matching cond in the order the underlying
	// query yields them.
	Select(ctx context.Context, cond squirrel.Sqlizer) ([]T, error)

	// Exists reports whether at least one row matches cond.
	Exists(ctx context.Context, cond squirrel.Sqlizer) (bool, error)

	// SetBool updates a single nullable boolean column for every row
	// matching cond in one set-based statement. A nil value resets the
	// column to NULL.
	SetBool(ctx context.Context, column string, value *bool, cond squirrel.Sqlizer) error

	// SaveBool persists a single nullable boolean column of one row,
	// leaving every other column untouched. Bulk cache updates use it so a
	// row save never cascades into recomputing unrelated caches.
	SaveBool(ctx context.Context, obj T, column string, value *bool) error
}
