// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package validation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Predicate evaluates one model instance and reports its validity.
//
// The returned value is interpreted as follows:
//   - nil                → valid;
//   - bool               → false fails with a synthesized message, true passes;
//   - *Error             → returned as-is (the predicate's own message
//     structure is preserved, never re-wrapped);
//   - error              → unwrapped to *Error when it carries one, otherwise
//     its text becomes a single failure message;
//   - []string, []error  → non-empty wraps into one aggregate failure;
//   - iter.Seq[error], iter.Seq[string] → drained eagerly, then as above;
//   - string             → non-empty fails with that message;
//   - anything else non-nil → fails with the value's fmt.Sprint text.
type Predicate[T Model] func(ctx context.Context, obj T) any

// Validator is the registered, type-level representation of one validation
// predicate and its configuration. It is created once, bound to at most one
// model registration, and shared by every instance of the model; all
// per-instance state lives in [InstanceValidator] and the cache column.
type Validator[T Model] struct {
	name string
	fn   Predicate[T]

	auto            bool
	cache           bool
	autoUseCache    bool
	autoUpdateCache bool
	autoClearCache  *bool

	cacheField        string
	cacheFieldVerbose string

	owner *ModelValidators[T]
}

type settings struct {
	auto            bool
	cache           bool
	autoUseCache    bool
	autoUpdateCache bool
	autoClearCache  *bool
	cacheField      string
	cacheVerbose    string
}

// Option configures a validator at construction time.
type Option func(*settings)

// WithoutAuto excludes the validator from default "run all auto validators"
// sweeps; it then only runs when explicitly requested.
func WithoutAuto() Option {
	return func(s *settings) { s.auto = false }
}

// WithCache backs the validator with a persisted nullable boolean column.
func WithCache() Option {
	return func(s *settings) { s.cache = true }
}

// WithAutoUseCache sets the default read-cache behavior: when true, IsValid
// returns the stored value without re-evaluating the predicate whenever the
// cache is known.
func WithAutoUseCache(use bool) Option {
	return func(s *settings) { s.autoUseCache = use }
}

// WithAutoUpdateCache sets the default write-cache behavior on save and on
// class-level bulk updates.
func WithAutoUpdateCache(update bool) Option {
	return func(s *settings) { s.autoUpdateCache = update }
}

// WithAutoClearCache sets whether class-level bulk clears include this
// validator. When unset the clear policy follows the update policy.
func WithAutoClearCache(clear bool) Option {
	return func(s *settings) { s.autoClearCache = &clear }
}

// WithCacheField overrides the derived cache column name.
func WithCacheField(name string) Option {
	return func(s *settings) { s.cacheField = name }
}

// WithCacheFieldVerboseName overrides the derived human-readable column label.
func WithCacheFieldVerboseName(verbose string) Option {
	return func(s *settings) { s.cacheVerbose = verbose }
}

// New constructs a validator wrapping the given predicate.
//
// Defaults: included in auto sweeps, no cache column; when WithCache is set,
// the cache is not consulted on reads but is refreshed on saves.
//
// New panics when name is empty, fn is nil, or a cache column is requested
// for a model type that does not implement [CacheCarrier]. These are
// declaration-time programming errors, detected where the validator is
// declared rather than on first use.
func New[T Model](name string, fn Predicate[T], opts ...Option) *Validator[T] {
	if name == "" {
		panic("validation: validator name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("validation: validator %q has a nil predicate", name))
	}

	s := settings{
		auto:            true,
		autoUpdateCache: true,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.cache && !isCacheCarrier[T]() {
		panic(fmt.Sprintf("validation: validator %q is cached but %s does not embed validation.CacheState",
			name, TableName[T]()))
	}

	return &Validator[T]{
		name:              name,
		fn:                fn,
		auto:              s.auto,
		cache:             s.cache,
		autoUseCache:      s.autoUseCache,
		autoUpdateCache:   s.autoUpdateCache,
		autoClearCache:    s.autoClearCache,
		cacheField:        s.cacheField,
		cacheFieldVerbose: s.cacheVerbose,
	}
}

// Name returns the validator's identifier.
func (v *Validator[T]) Name() string { return v.name }

// Auto reports whether the validator participates in default sweeps.
func (v *Validator[T]) Auto() bool { return v.auto }

// HasCache reports whether a persisted cache column backs the validator.
func (v *Validator[T]) HasCache() bool { return v.cache }

// AutoUseCache reports the default read-cache behavior.
func (v *Validator[T]) AutoUseCache() bool { return v.autoUseCache }

// AutoUpdateCache reports the default write-cache behavior.
func (v *Validator[T]) AutoUpdateCache() bool { return v.autoUpdateCache }

// AutoClearCache reports whether class-level bulk clears include this
// validator. Unless configured explicitly it mirrors AutoUpdateCache.
func (v *Validator[T]) AutoClearCache() bool {
	if v.autoClearCache != nil {
		return *v.autoClearCache
	}
	return v.autoUpdateCache
}

// CacheFieldName returns the cache column name: the explicit override if one
// was configured, otherwise "is_<name>_successful".
func (v *Validator[T]) CacheFieldName() string {
	if v.cacheField != "" {
		return v.cacheField
	}
	return "is_" + v.name + "_successful"
}

// CacheFieldVerboseName returns the human-readable column label: the explicit
// override if one was configured, otherwise the column name with underscores
// replaced by spaces.
func (v *Validator[T]) CacheFieldVerboseName() string {
	if v.cacheFieldVerbose != "" {
		return v.cacheFieldVerbose
	}
	return underscoresToSpaces(v.CacheFieldName())
}

// For binds the validator to one model instance. A fresh [InstanceValidator]
// is constructed on every call; it is never cached.
func (v *Validator[T]) For(obj T) *InstanceValidator[T] {
	return &InstanceValidator[T]{validator: v, obj: obj}
}

// bind registers the validator with its owning model. It runs exactly once;
// a second call fails because it would register a duplicate cache column.
func (v *Validator[T]) bind(owner *ModelValidators[T]) error {
	if v.owner != nil {
		return fmt.Errorf("validator %q: %w", v.name, ErrAlreadyRegistered)
	}
	v.owner = owner
	return nil
}

// noCache wraps ErrNoCache with the validator identity.
func (v *Validator[T]) noCache() error {
	return fmt.Errorf("validator %q: %w", v.name, ErrNoCache)
}

// queryset resolves the queryset backing bulk and query operations: the
// explicit one when given, else the owning registration's source.
func (v *Validator[T]) queryset(qs Queryset[T]) (Queryset[T], error) {
	if qs != nil {
		return qs, nil
	}
	if v.owner == nil {
		return nil, fmt.Errorf("validator %q: %w", v.name, ErrNotRegistered)
	}
	if v.owner.source == nil {
		return nil, fmt.Errorf("validator %q: %w", v.name, ErrNoQueryset)
	}
	return v.owner.source, nil
}

// IsValidCondition returns a filter matching rows whose cache column holds
// true.
func (v *Validator[T]) IsValidCondition() (squirrel.Sqlizer, error) {
	if !v.cache {
		return nil, v.noCache()
	}
	return squirrel.Eq{v.CacheFieldName(): true}, nil
}

// IsInvalidCondition returns a filter matching rows whose cache column holds
// false; with includeUnknown it also matches rows whose validity has not
// been computed yet.
func (v *Validator[T]) IsInvalidCondition(includeUnknown bool) (squirrel.Sqlizer, error) {
	if !v.cache {
		return nil, v.noCache()
	}
	invalid := squirrel.Eq{v.CacheFieldName(): false}
	if !includeUnknown {
		return invalid, nil
	}
	return squirrel.Or{invalid, squirrel.Eq{v.CacheFieldName(): nil}}, nil
}

// IsCachedCondition returns a filter matching rows whose cache column holds a
// known value.
func (v *Validator[T]) IsCachedCondition() (squirrel.Sqlizer, error) {
	if !v.cache {
		return nil, v.noCache()
	}
	return squirrel.NotEq{v.CacheFieldName(): nil}, nil
}

// notCachedCondition matches rows whose validity is unknown.
func (v *Validator[T]) notCachedCondition() squirrel.Sqlizer {
	return squirrel.Eq{v.CacheFieldName(): nil}
}

// UpdateCache recomputes and persists the cache column for every row matching
// cond, one row at a time in the order the query yields them. Each row's
// other cache columns are left untouched. The first row whose persist fails
// aborts the whole operation.
//
// A nil qs uses the owning registration's queryset; migrations pass a
// transaction-bound one explicitly.
func (v *Validator[T]) UpdateCache(ctx context.Context, qs Queryset[T], cond squirrel.Sqlizer) error {
	if !v.cache {
		return v.noCache()
	}
	source, err := v.queryset(qs)
	if err != nil {
		return err
	}

	rows, err := source.Select(ctx, cond)
	if err != nil {
		return fmt.Errorf("validator %q: selecting rows for cache update: %w", v.name, err)
	}

	column := v.CacheFieldName()
	for _, obj := range rows {
		valid := v.For(obj).Validate(ctx, true) == nil
		if err := source.SaveBool(ctx, obj, column, &valid); err != nil {
			return fmt.Errorf("validator %q: persisting cache value: %w", v.name, err)
		}
	}

	return nil
}

// ClearCache resets the cache column to unknown for every row matching cond
// without evaluating the predicate. The reset is a single set-based update.
func (v *Validator[T]) ClearCache(ctx context.Context, qs Queryset[T], cond squirrel.Sqlizer) error {
	if !v.cache {
		return v.noCache()
	}
	source, err := v.queryset(qs)
	if err != nil {
		return err
	}
	if err := source.SetBool(ctx, v.CacheFieldName(), nil, cond); err != nil {
		return fmt.Errorf("validator %q: clearing cache: %w", v.name, err)
	}
	return nil
}

// ValidObjects returns all rows currently cached as valid.
func (v *Validator[T]) ValidObjects(ctx context.Context) ([]T, error) {
	cond, err := v.IsValidCondition()
	if err != nil {
		return nil, err
	}
	source, err := v.queryset(nil)
	if err != nil {
		return nil, err
	}
	return source.Select(ctx, cond)
}

// InvalidObjects returns all rows currently cached as invalid; with
// includeUnknown it also returns rows whose validity is unknown.
func (v *Validator[T]) InvalidObjects(ctx context.Context, includeUnknown bool) ([]T, error) {
	cond, err := v.IsInvalidCondition(includeUnknown)
	if err != nil {
		return nil, err
	}
	source, err := v.queryset(nil)
	if err != nil {
		return nil, err
	}
	return source.Select(ctx, cond)
}

// IsAllValid reports whether every row is currently cached as valid. Rows
// with unknown validity count as not valid.
func (v *Validator[T]) IsAllValid(ctx context.Context) (bool, error) {
	cond, err := v.IsInvalidCondition(true)
	if err != nil {
		return false, err
	}
	source, err := v.queryset(nil)
	if err != nil {
		return false, err
	}
	exists, err := source.Exists(ctx, cond)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// IsAllCached reports whether every row currently holds a computed cache
// value.
func (v *Validator[T]) IsAllCached(ctx context.Context) (bool, error) {
	if !v.cache {
		return false, v.noCache()
	}
	source, err := v.queryset(nil)
	if err != nil {
		return false, err
	}
	exists, err := source.Exists(ctx, v.notCachedCondition())
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// runPredicate evaluates the predicate against obj and normalizes the result
// into a validation failure or nil.
func (v *Validator[T]) runPredicate(ctx context.Context, obj T) *Error {
	switch result := v.fn(ctx, obj).(type) {
	case nil:
		return nil
	case bool:
		if result {
			return nil
		}
		return NewError(fmt.Sprintf("The validator %q failed.", v.CacheFieldVerboseName()))
	case *Error:
		if result.Empty() {
			return nil
		}
		return result
	case error:
		return asValidationError(result)
	case string:
		if result == "" {
			return nil
		}
		return NewError(result)
	case []string:
		if len(result) == 0 {
			return nil
		}
		return NewError(result...)
	case []error:
		return v.collectErrors(func(yield func(error) bool) {
			for _, err := range result {
				if !yield(err) {
					return
				}
			}
		})
	case iter.Seq[error]:
		return v.collectErrors(result)
	case func(func(error) bool):
		return v.collectErrors(result)
	case iter.Seq[string]:
		return v.collectStrings(result)
	case func(func(string) bool):
		return v.collectStrings(result)
	default:
		return NewError(fmt.Sprint(result))
	}
}

// collectErrors drains a lazy error sequence into one aggregate failure.
func (v *Validator[T]) collectErrors(seq iter.Seq[error]) *Error {
	agg := &Error{}
	for err := range seq {
		if err == nil {
			continue
		}
		var verr *Error
		if errors.As(err, &verr) {
			agg.Merge(verr)
			continue
		}
		agg.Messages = append(agg.Messages, err.Error())
	}
	if agg.Empty() {
		return nil
	}
	return agg
}

// collectStrings drains a lazy message sequence into one aggregate failure.
func (v *Validator[T]) collectStrings(seq iter.Seq[string]) *Error {
	var messages []string
	for msg := range seq {
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return nil
	}
	return NewError(messages...)
}

func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
