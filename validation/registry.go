// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package validation

import (
	"context"
	"fmt"
	"iter"

	"github.com/Masterminds/squirrel"

	"github.com/askarin/go-model-validation/logger"
)

// ModelConfig carries the collaborators a model registration is wired with.
// Every field is optional; operations that need a missing collaborator fail
// with ErrNoQueryset or ErrNoSaver.
type ModelConfig[T Model] struct {
	// Source runs the registration's row queries and bulk cache writes.
	Source Queryset[T]

	// Saver persists one model instance, cache columns included. Save
	// delegates to it after refreshing the instance's caches.
	Saver func(ctx context.Context, obj T) error

	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

// ModelValidators is the per-model-type validator registration: an ordered,
// append-only collection of validators built once, before any instance
// exists, exposing the instance- and class-level validation and cache-query
// operations.
type ModelValidators[T Model] struct {
	table      string
	source     Queryset[T]
	saver      func(ctx context.Context, obj T) error
	validators []*Validator[T]
	byName     map[string]*Validator[T]
	columns    []CacheColumn
	logger     *logger.Logger
}

// NewModelValidators registers the given validators for model type T, in
// argument order. Each validator is bound exactly once; registering a
// validator twice (here or with another model) fails, as would declaring two
// validators that derive the same cache column.
func NewModelValidators[T Model](cfg ModelConfig[T], validators ...*Validator[T]) (*ModelValidators[T], error) {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	m := &ModelValidators[T]{
		table:  TableName[T](),
		source: cfg.Source,
		saver:  cfg.Saver,
		byName: make(map[string]*Validator[T], len(validators)),
		logger: log,
	}

	seenColumns := make(map[string]string, len(validators))
	for _, v := range validators {
		if err := v.bind(m); err != nil {
			return nil, err
		}
		if _, ok := m.byName[v.Name()]; ok {
			return nil, fmt.Errorf("validator %q: %w", v.Name(), ErrAlreadyRegistered)
		}
		m.validators = append(m.validators, v)
		m.byName[v.Name()] = v

		if !v.HasCache() {
			continue
		}
		column := v.CacheFieldName()
		if other, ok := seenColumns[column]; ok {
			return nil, fmt.Errorf("validators %q and %q both use column %q: %w",
				other, v.Name(), column, ErrDuplicateCacheField)
		}
		seenColumns[column] = v.Name()
		m.columns = append(m.columns, CacheColumn{
			Name:        column,
			VerboseName: v.CacheFieldVerboseName(),
		})
	}

	log.Debug().
		Str("func", "NewModelValidators").
		Str("table", m.table).
		Int("validators", len(m.validators)).
		Int("cache_columns", len(m.columns)).
		Msg("registered model validators")

	return m, nil
}

// Table returns the model's table name.
func (m *ModelValidators[T]) Table() string { return m.table }

// Validators returns the registered validators in declaration order.
func (m *ModelValidators[T]) Validators() []*Validator[T] {
	return append([]*Validator[T](nil), m.validators...)
}

// Validator looks up a registered validator by name.
func (m *ModelValidators[T]) Validator(name string) (*Validator[T], bool) {
	v, ok := m.byName[name]
	return v, ok
}

// CacheColumns returns the nullable boolean columns the registered cached
// validators require, in declaration order. The schema layer adds them to
// the model's table (see AddCacheColumnsSQL).
func (m *ModelValidators[T]) CacheColumns() []CacheColumn {
	return append([]CacheColumn(nil), m.columns...)
}

// ValidatorErrors produces a lazy sequence of validation failures, one
// attempt per registered validator in declaration order: every validator
// when useAll is true, otherwise only those marked auto. Failures from
// cache-enabled validators are recorded into the instance cache as a side
// effect.
func (m *ModelValidators[T]) ValidatorErrors(ctx context.Context, obj T, useAll bool) iter.Seq[error] {
	return func(yield func(error) bool) {
		for _, v := range m.validators {
			if !useAll && !v.auto {
				continue
			}
			if err := v.For(obj).Validate(ctx, true); err != nil {
				if !yield(err) {
					return
				}
			}
		}
	}
}

// RunValidators evaluates the selected validators and raises their failures
// as one aggregate, or returns nil when all pass.
func (m *ModelValidators[T]) RunValidators(ctx context.Context, obj T, useAll bool) error {
	return Collect(m.ValidatorErrors(ctx, obj, useAll))
}

// CheckValidators reports whether the selected validators all pass. It stops
// at the first failing validator, in declaration order; later predicates are
// not invoked. useCaches overrides each validator's default read-cache
// behavior when non-nil.
func (m *ModelValidators[T]) CheckValidators(ctx context.Context, obj T, useAll bool, useCaches *bool) bool {
	for _, v := range m.validators {
		if !useAll && !v.auto {
			continue
		}
		if !v.For(obj).IsValid(ctx, useCaches, true) {
			return false
		}
	}
	return true
}

// ValidatorResults evaluates every selected validator (no short-circuit) and
// returns the outcome of each, keyed by cache field name.
func (m *ModelValidators[T]) ValidatorResults(ctx context.Context, obj T, useAll bool, useCaches *bool) map[string]bool {
	results := make(map[string]bool)
	for _, v := range m.validators {
		if !useAll && !v.auto {
			continue
		}
		results[v.CacheFieldName()] = v.For(obj).IsValid(ctx, useCaches, true)
	}
	return results
}

// IsValid first runs the model's built-in field validation (when obj
// implements [FieldCleaner]); a failure there returns false without running
// any custom validator. Otherwise the custom validators decide: all of them
// when useCustom is true, the auto ones when nil, none (returning true) when
// false.
func (m *ModelValidators[T]) IsValid(ctx context.Context, obj T, useCustom, useCaches *bool) bool {
	if cleaner, ok := any(obj).(FieldCleaner); ok {
		if err := cleaner.CleanFields(ctx); err != nil {
			return false
		}
	}

	if useCustom != nil && !*useCustom {
		return true
	}
	useAll := useCustom != nil && *useCustom

	return m.CheckValidators(ctx, obj, useAll, useCaches)
}

// FullClean mirrors IsValid but aggregates every failure, built-in field
// validation plus custom validators, into one raised aggregate instead of
// short-circuiting. Disabling custom validators does not affect whether
// field errors are collected.
func (m *ModelValidators[T]) FullClean(ctx context.Context, obj T, useCustom *bool) error {
	return Collect(func(yield func(error) bool) {
		if cleaner, ok := any(obj).(FieldCleaner); ok {
			if err := cleaner.CleanFields(ctx); err != nil {
				if !yield(err) {
					return
				}
			}
		}

		if useCustom != nil && !*useCustom {
			return
		}
		useAll := useCustom != nil && *useCustom

		for err := range m.ValidatorErrors(ctx, obj, useAll) {
			if !yield(err) {
				return
			}
		}
	})
}

// Save refreshes the instance's cache values and delegates to the configured
// persistence callback. updateCaches selects which caches to refresh: those
// whose auto-update policy is on when nil, every cached validator when true,
// none when false.
func (m *ModelValidators[T]) Save(ctx context.Context, obj T, updateCaches *bool) error {
	if m.saver == nil {
		return fmt.Errorf("model %q: %w", m.table, ErrNoSaver)
	}

	if updateCaches == nil || *updateCaches {
		for _, v := range m.validators {
			if !v.cache {
				continue
			}
			if updateCaches == nil && !v.autoUpdateCache {
				continue
			}
			// The saver persists the whole row, so the refreshed value only
			// needs to land on the instance here.
			_ = v.For(obj).Validate(ctx, true)
		}
	}

	return m.saver(ctx, obj)
}

// UpdateCachesGlobally recomputes and persists cache values across rows
// matching cond (nil = every row): for every cached validator when updateAll
// is true, for those whose auto-update policy is on when nil, for none when
// false.
func (m *ModelValidators[T]) UpdateCachesGlobally(ctx context.Context, cond squirrel.Sqlizer, updateAll *bool) error {
	if updateAll != nil && !*updateAll {
		return nil
	}
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		if updateAll == nil && !v.autoUpdateCache {
			continue
		}
		if err := v.UpdateCache(ctx, nil, cond); err != nil {
			return err
		}
	}
	return nil
}

// ClearCachesGlobally resets cache values to unknown across rows matching
// cond. Selection follows each validator's clear policy (AutoClearCache)
// when clearAll is nil; the clear policy is named apart from the update
// policy even though it mirrors it by default.
func (m *ModelValidators[T]) ClearCachesGlobally(ctx context.Context, cond squirrel.Sqlizer, clearAll *bool) error {
	if clearAll != nil && !*clearAll {
		return nil
	}
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		if clearAll == nil && !v.AutoClearCache() {
			continue
		}
		if err := v.ClearCache(ctx, nil, cond); err != nil {
			return err
		}
	}
	return nil
}

// ValidityCondition returns the conjunction of every cached validator's
// is-valid condition: rows matching it are cached as valid by all of them.
// It returns nil when no cached validator is registered (every row matches).
func (m *ModelValidators[T]) ValidityCondition() squirrel.Sqlizer {
	var and squirrel.And
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		and = append(and, squirrel.Eq{v.CacheFieldName(): true})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// ResultsCachedCondition returns the conjunction of every cached validator's
// is-cached condition: rows matching it hold a computed value for all of
// them. It returns nil when no cached validator is registered.
func (m *ModelValidators[T]) ResultsCachedCondition() squirrel.Sqlizer {
	var and squirrel.And
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		and = append(and, squirrel.NotEq{v.CacheFieldName(): nil})
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

// notAllValidCondition matches rows where at least one cached validator is
// false or unknown; nil when no cached validator is registered.
func (m *ModelValidators[T]) notAllValidCondition() squirrel.Sqlizer {
	var or squirrel.Or
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		column := v.CacheFieldName()
		or = append(or, squirrel.Eq{column: false}, squirrel.Eq{column: nil})
	}
	if len(or) == 0 {
		return nil
	}
	return or
}

// notAllCachedCondition matches rows where at least one cached validator has
// no computed value; nil when no cached validator is registered.
func (m *ModelValidators[T]) notAllCachedCondition() squirrel.Sqlizer {
	var or squirrel.Or
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		or = append(or, squirrel.Eq{v.CacheFieldName(): nil})
	}
	if len(or) == 0 {
		return nil
	}
	return or
}

// CheckValidatorsGlobally reports whether every row matching cond is cached
// as valid by every cached validator. With no cached validators it is
// vacuously true.
func (m *ModelValidators[T]) CheckValidatorsGlobally(ctx context.Context, cond squirrel.Sqlizer) (bool, error) {
	violating := m.notAllValidCondition()
	if violating == nil {
		return true, nil
	}
	return m.noneMatch(ctx, cond, violating)
}

// AreResultsCachedGlobally reports whether every row matching cond holds a
// computed value for every cached validator.
func (m *ModelValidators[T]) AreResultsCachedGlobally(ctx context.Context, cond squirrel.Sqlizer) (bool, error) {
	violating := m.notAllCachedCondition()
	if violating == nil {
		return true, nil
	}
	return m.noneMatch(ctx, cond, violating)
}

// noneMatch reports that no row within cond matches the violating condition.
func (m *ModelValidators[T]) noneMatch(ctx context.Context, cond, violating squirrel.Sqlizer) (bool, error) {
	if m.source == nil {
		return false, fmt.Errorf("model %q: %w", m.table, ErrNoQueryset)
	}
	if cond != nil {
		violating = squirrel.And{cond, violating}
	}
	exists, err := m.source.Exists(ctx, violating)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// All returns every row of the model's table.
func (m *ModelValidators[T]) All(ctx context.Context) ([]T, error) {
	if m.source == nil {
		return nil, fmt.Errorf("model %q: %w", m.table, ErrNoQueryset)
	}
	return m.source.Select(ctx, nil)
}

// ValidObjects returns the rows currently cached as valid by every cached
// validator.
func (m *ModelValidators[T]) ValidObjects(ctx context.Context) ([]T, error) {
	if m.source == nil {
		return nil, fmt.Errorf("model %q: %w", m.table, ErrNoQueryset)
	}
	return m.source.Select(ctx, m.ValidityCondition())
}

// InvalidObjects returns the rows currently cached as invalid by at least
// one cached validator. Rows with unknown validity are not included.
func (m *ModelValidators[T]) InvalidObjects(ctx context.Context) ([]T, error) {
	if m.source == nil {
		return nil, fmt.Errorf("model %q: %w", m.table, ErrNoQueryset)
	}

	var or squirrel.Or
	for _, v := range m.validators {
		if !v.cache {
			continue
		}
		or = append(or, squirrel.Eq{v.CacheFieldName(): false})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return m.source.Select(ctx, or)
}
