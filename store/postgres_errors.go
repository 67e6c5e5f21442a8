package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver and maps the
// codes the validation engine can act on to package sentinels.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. It attempts to unwrap err as a
// *pgconn.PgError; errors without a recognised code come back unchanged.
//
// Mapped codes:
//   - 42703 undefined_column → [ErrNoCacheColumn] (cache-column migration
//     not applied yet)
//   - 42P01 undefined_table  → [ErrNoTable]
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UndefinedColumn:
		return fmt.Errorf("%w: %s", ErrNoCacheColumn, pgErr.Message)
	case pgerrcode.UndefinedTable:
		return fmt.Errorf("%w: %s", ErrNoTable, pgErr.Message)
	default:
		return err
	}
}
