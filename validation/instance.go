package validation

import (
	"context"
	"fmt"
)

// InstanceValidator is the transient binding of one [Validator] to one model
// instance. It carries no state beyond the pair itself: validation outcomes
// are recomputed or read from the cache column each time, never stored on
// the InstanceValidator.
//
// Obtain one via [Validator.For]; a fresh value is constructed on each call.
type InstanceValidator[T Model] struct {
	validator *Validator[T]
	obj       T
}

// Validator returns the shared, type-level validator.
func (iv *InstanceValidator[T]) Validator() *Validator[T] { return iv.validator }

// Object returns the bound model instance.
func (iv *InstanceValidator[T]) Object() T { return iv.obj }

// Validate runs the predicate against the bound instance and returns its
// validation failure, or nil when the instance is valid.
//
// When the validator is cache-enabled and updateCache is true, the instance's
// cache value is set to the boolean outcome as a side effect, regardless of
// which result form the predicate produced. The value is persisted on the
// next save or explicit cache write.
func (iv *InstanceValidator[T]) Validate(ctx context.Context, updateCache bool) error {
	verr := iv.validator.runPredicate(ctx, iv.obj)

	if iv.validator.cache && updateCache {
		valid := verr == nil
		iv.carrier().SetValidatorCache(iv.validator.CacheFieldName(), &valid)
	}

	if verr == nil {
		return nil
	}
	return verr
}

// IsValid reports whether the bound instance passes the validator.
//
// For cache-enabled validators the read-cache behavior is resolved from
// useCache when non-nil, else from the validator's default; when cache use
// resolves true and the stored value is known, that value is returned without
// invoking the predicate. In every other case the predicate runs, updating
// the cache according to updateCache.
func (iv *InstanceValidator[T]) IsValid(ctx context.Context, useCache *bool, updateCache bool) bool {
	if iv.validator.cache {
		use := iv.validator.autoUseCache
		if useCache != nil {
			use = *useCache
		}
		if use {
			if cached := iv.carrier().ValidatorCache(iv.validator.CacheFieldName()); cached != nil {
				return *cached
			}
		}
	}

	return iv.Validate(ctx, updateCache) == nil
}

// IsCached reports whether the instance currently holds a computed cache
// value.
func (iv *InstanceValidator[T]) IsCached() (bool, error) {
	if !iv.validator.cache {
		return false, iv.validator.noCache()
	}
	return iv.carrier().ValidatorCache(iv.validator.CacheFieldName()) != nil, nil
}

// Cache returns the instance's current cache value; nil means unknown.
func (iv *InstanceValidator[T]) Cache() (*bool, error) {
	if !iv.validator.cache {
		return nil, iv.validator.noCache()
	}
	return iv.carrier().ValidatorCache(iv.validator.CacheFieldName()), nil
}

// UpdateCache force-recomputes the cache value for the bound instance. When
// the owning registration has a queryset, the single column is persisted
// immediately; otherwise the value stays on the instance until it is saved.
func (iv *InstanceValidator[T]) UpdateCache(ctx context.Context) error {
	if !iv.validator.cache {
		return iv.validator.noCache()
	}

	_ = iv.Validate(ctx, true)

	return iv.persist(ctx)
}

// ClearCache resets the instance's cache value to unknown without evaluating
// the predicate. When the owning registration has a queryset, the reset is
// persisted immediately.
func (iv *InstanceValidator[T]) ClearCache(ctx context.Context) error {
	if !iv.validator.cache {
		return iv.validator.noCache()
	}

	iv.carrier().SetValidatorCache(iv.validator.CacheFieldName(), nil)

	return iv.persist(ctx)
}

// persist writes the instance's current cache value through the owning
// registration's queryset, when one is configured.
func (iv *InstanceValidator[T]) persist(ctx context.Context) error {
	owner := iv.validator.owner
	if owner == nil || owner.source == nil {
		return nil
	}

	column := iv.validator.CacheFieldName()
	value := iv.carrier().ValidatorCache(column)
	if err := owner.source.SaveBool(ctx, iv.obj, column, value); err != nil {
		return fmt.Errorf("validator %q: persisting cache value: %w", iv.validator.name, err)
	}
	return nil
}

// carrier exposes the instance's cache storage. Cached validators verify at
// declaration time that the model type implements [CacheCarrier], so the
// assertion cannot fail here.
func (iv *InstanceValidator[T]) carrier() CacheCarrier {
	return any(iv.obj).(CacheCarrier)
}
