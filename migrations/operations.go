// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/askarin/go-model-validation/validation"
)

// QuerysetFunc builds a queryset bound to the migration's transaction. The
// transaction is only known when the migration actually runs, not when the
// step is constructed, so it is threaded through here rather than captured
// at construction time.
type QuerysetFunc[T validation.Model] func(tx *sql.Tx) (validation.Queryset[T], error)

// CacheUpdate builds a one-shot migration step that recomputes and persists
// the cache values of the given validators for every existing row. Use it
// when a validator's logic changed and stored results went stale.
//
// The forward function fetches all rows through the transaction-bound
// queryset and runs every listed validator's bulk cache update against them;
// goose runs it inside the migration's transaction, so partial recomputation
// is never committed on failure. Each row write touches one cache column
// only; caches of validators not listed stay untouched even when their
// auto-update policy is on.
//
// Cache values are derived data, so the backward function is an explicit
// no-op rather than a restore of prior cache contents.
func CacheUpdate[T validation.Model](qs QuerysetFunc[T], validators ...*validation.Validator[T]) (up, down func(ctx context.Context, tx *sql.Tx) error) {
	up = func(ctx context.Context, tx *sql.Tx) error {
		source, err := qs(tx)
		if err != nil {
			return err
		}
		for _, v := range validators {
			if err := v.UpdateCache(ctx, source, nil); err != nil {
				return err
			}
		}
		return nil
	}

	down = func(ctx context.Context, tx *sql.Tx) error {
		return nil
	}

	return up, down
}

// RegisterCacheUpdate registers a CacheUpdate step with goose under the
// given migration filename (e.g. "00042_refresh_word_count_cache.go").
func RegisterCacheUpdate[T validation.Model](filename string, qs QuerysetFunc[T], validators ...*validation.Validator[T]) {
	up, down := CacheUpdate(qs, validators...)
	goose.AddNamedMigrationContext(filename, up, down)
}

// AddCacheColumns builds a migration step that adds the nullable boolean
// cache columns backing a model's cached validators; the backward function
// drops them again.
func AddCacheColumns(table string, columns []validation.CacheColumn) (up, down func(ctx context.Context, tx *sql.Tx) error) {
	up = func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range validation.AddCacheColumnsSQL(table, columns) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}

	down = func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range validation.DropCacheColumnsSQL(table, columns) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}

	return up, down
}

// RegisterAddCacheColumns registers an AddCacheColumns step with goose under
// the given migration filename.
func RegisterAddCacheColumns(filename, table string, columns []validation.CacheColumn) {
	up, down := AddCacheColumns(table, columns)
	goose.AddNamedMigrationContext(filename, up, down)
}
