// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/askarin/go-model-validation/logger"
	"github.com/askarin/go-model-validation/validation"
)

// TableConfig describes how a model type maps onto its table: which columns
// a row SELECT reads, how a result row is scanned back into the model, and
// how one row is addressed for single-column cache writes.
type TableConfig[T validation.Model] struct {
	// Columns are the columns Select reads, cache columns included.
	Columns []string

	// PKColumn is the primary key column used to address single rows.
	PKColumn string

	// PK extracts the primary key value from a model instance.
	PK func(obj T) any

	// Scan reads the current row of rows into a model instance. It must
	// consume exactly the columns listed in Columns, restoring cache values
	// into the instance's CacheState.
	Scan func(rows *sql.Rows) (T, error)
}

// Table is the SQL-backed implementation of [validation.Queryset]: a thin
// gateway over one model's table, building its statements with squirrel in
// the dialect of the owning [DB].
type Table[T validation.Model] struct {
	q           Querier
	name        string
	cfg         TableConfig[T]
	classifier  ErrorClassificator
	placeholder squirrel.PlaceholderFormat
	logger      *logger.Logger
}

// NewTable constructs a table gateway for model type T over db. The table
// name is derived from the model's TableName method.
func NewTable[T validation.Model](db *DB, cfg TableConfig[T]) (*Table[T], error) {
	if db == nil || db.DB == nil {
		return nil, ErrNilDB
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidTableConfig)
	}
	if cfg.PKColumn == "" || cfg.PK == nil {
		return nil, fmt.Errorf("%w: missing primary key mapping", ErrInvalidTableConfig)
	}
	if cfg.Scan == nil {
		return nil, fmt.Errorf("%w: missing row scanner", ErrInvalidTableConfig)
	}

	t := &Table[T]{
		q:           db.DB,
		name:        validation.TableName[T](),
		cfg:         cfg,
		classifier:  db.classifier,
		placeholder: db.placeholder,
		logger:      db.logger,
	}
	db.logger.Debug().Str("func", "NewTable").Str("table", t.name).Msg("creating table gateway")
	return t, nil
}

// WithQuerier returns a copy of the gateway bound to q, typically a *sql.Tx.
// Migration steps use it to run bulk cache updates inside the migration's
// transaction.
func (t *Table[T]) WithQuerier(q Querier) *Table[T] {
	bound := *t
	bound.q = q
	return &bound
}

// Name returns the gateway's table name.
func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(t.placeholder)
}

// Select returns the rows matching cond in the order the database yields
// them. A nil cond selects the whole table.
func (t *Table[T]) Select(ctx context.Context, cond squirrel.Sqlizer) ([]T, error) {
	log := logger.FromContext(ctx)

	b := t.builder().Select(t.cfg.Columns...).From(t.name)
	if cond != nil {
		b = b.Where(cond)
	}
	query, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Table.Select").Str("table", t.name).Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*Table.Select").Str("table", t.name).Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, t.classifier.Classify(err))
	}
	defer rows.Close()

	var objects []T
	for rows.Next() {
		obj, err := t.cfg.Scan(rows)
		if err != nil {
			log.Err(err).Str("func", "*Table.Select").Str("table", t.name).Msg("error: scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return objects, nil
}

// Exists reports whether at least one row matches cond.
func (t *Table[T]) Exists(ctx context.Context, cond squirrel.Sqlizer) (bool, error) {
	log := logger.FromContext(ctx)

	b := t.builder().Select("1").From(t.name)
	if cond != nil {
		b = b.Where(cond)
	}
	query, args, err := b.Limit(1).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Table.Exists").Str("table", t.name).Msg("error: building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = t.q.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", "*Table.Exists").Str("table", t.name).Msg("error: executing query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, t.classifier.Classify(err))
	}

	return true, nil
}

// SetBool updates one nullable boolean column for every row matching cond in
// a single set-based statement. A nil value resets the column to NULL; a nil
// cond touches every row.
func (t *Table[T]) SetBool(ctx context.Context, column string, value *bool, cond squirrel.Sqlizer) error {
	log := logger.FromContext(ctx)

	b := t.builder().Update(t.name).Set(column, value)
	if cond != nil {
		b = b.Where(cond)
	}
	query, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Table.SetBool").Str("table", t.name).Msg("error: building statement")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := t.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*Table.SetBool").Str("table", t.name).Str("column", column).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, t.classifier.Classify(err))
	}

	return nil
}

// SaveBool persists one nullable boolean column of one row, addressed by its
// primary key, leaving every other column untouched.
func (t *Table[T]) SaveBool(ctx context.Context, obj T, column string, value *bool) error {
	log := logger.FromContext(ctx)

	query, args, err := t.builder().
		Update(t.name).
		Set(column, value).
		Where(squirrel.Eq{t.cfg.PKColumn: t.cfg.PK(obj)}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*Table.SaveBool").Str("table", t.name).Msg("error: building statement")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*Table.SaveBool").Str("table", t.name).Str("column", column).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, t.classifier.Classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("table %q: %w", t.name, ErrRowNotFound)
	}

	return nil
}
