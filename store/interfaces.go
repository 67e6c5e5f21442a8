package store

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql operations the table gateway needs.
// Both *sql.DB and *sql.Tx satisfy it, so the same gateway runs standalone
// queries and migration-transaction work.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator maps driver-level errors onto the package's sentinel
// errors so callers can match them with errors.Is regardless of backend.
type ErrorClassificator interface {
	// Classify returns the sentinel corresponding to err, or err itself when
	// it carries no recognised driver code.
	Classify(err error) error
}
