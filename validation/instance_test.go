// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_CacheOpsRequireCache(t *testing.T) {
	v := New[*widget]("is_even", evenValue)
	iv := v.For(&widget{ID: 1})
	ctx := context.Background()

	_, err := iv.IsCached()
	assert.ErrorIs(t, err, ErrNoCache)
	_, err = iv.Cache()
	assert.ErrorIs(t, err, ErrNoCache)
	assert.ErrorIs(t, iv.UpdateCache(ctx), ErrNoCache)
	assert.ErrorIs(t, iv.ClearCache(ctx), ErrNoCache)
}

func TestInstance_ValidateUpdatesCache(t *testing.T) {
	v := New[*widget]("is_even", evenValue, WithCache())
	obj := &widget{ID: 1, Value: 3}
	ctx := context.Background()

	err := v.For(obj).Validate(ctx, true)
	require.Error(t, err)

	cached, cerr := v.For(obj).Cache()
	require.NoError(t, cerr)
	require.NotNil(t, cached)
	assert.False(t, *cached)

	obj.Value = 4
	require.NoError(t, v.For(obj).Validate(ctx, true))

	cached, cerr = v.For(obj).Cache()
	require.NoError(t, cerr)
	require.NotNil(t, cached)
	assert.True(t, *cached)
}

func TestInstance_ValidateWithoutUpdateLeavesCacheAlone(t *testing.T) {
	v := New[*widget]("is_even", evenValue, WithCache())
	obj := &widget{ID: 1, Value: 3}

	_ = v.For(obj).Validate(context.Background(), false)

	cached, err := v.For(obj).Cache()
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestInstance_UpdateThenReadRoundTrip(t *testing.T) {
	v := New[*widget]("is_even", evenValue, WithCache())
	obj := &widget{ID: 1, Value: 4}
	ctx := context.Background()

	isCached, err := v.For(obj).IsCached()
	require.NoError(t, err)
	assert.False(t, isCached)

	require.NoError(t, v.For(obj).UpdateCache(ctx))

	isCached, err = v.For(obj).IsCached()
	require.NoError(t, err)
	assert.True(t, isCached)

	cached, err := v.For(obj).Cache()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, *cached)
}

func TestInstance_ClearCacheResetsToUnknown(t *testing.T) {
	v := New[*widget]("is_even", evenValue, WithCache())
	obj := &widget{ID: 1, Value: 4}
	ctx := context.Background()

	require.NoError(t, v.For(obj).UpdateCache(ctx))
	require.NoError(t, v.For(obj).ClearCache(ctx))

	isCached, err := v.For(obj).IsCached()
	require.NoError(t, err)
	assert.False(t, isCached)
}

func TestInstance_ClearCacheNeverRunsPredicate(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, true), WithCache())
	obj := &widget{ID: 1}
	obj.SetValidatorCache(v.CacheFieldName(), boolPtr(true))

	require.NoError(t, v.For(obj).ClearCache(context.Background()))
	assert.Zero(t, calls)
}

func TestInstance_IsValidUsesKnownCache(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, false), WithCache())
	obj := &widget{ID: 1}
	obj.SetValidatorCache(v.CacheFieldName(), boolPtr(true))

	// The stored value is trusted even though the predicate would fail now.
	valid := v.For(obj).IsValid(context.Background(), boolPtr(true), false)

	assert.True(t, valid)
	assert.Zero(t, calls, "a known cache value must short-circuit the predicate")
}

func TestInstance_IsValidFalseCacheShortCircuits(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, true), WithCache())
	obj := &widget{ID: 1}
	obj.SetValidatorCache(v.CacheFieldName(), boolPtr(false))

	valid := v.For(obj).IsValid(context.Background(), boolPtr(true), false)

	assert.False(t, valid)
	assert.Zero(t, calls)
}

func TestInstance_IsValidUnknownCacheRunsPredicate(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, true), WithCache(), WithAutoUseCache(true))
	obj := &widget{ID: 1}

	valid := v.For(obj).IsValid(context.Background(), nil, true)

	assert.True(t, valid)
	assert.Equal(t, 1, calls, "an unknown cache cannot short-circuit")

	cached, err := v.For(obj).Cache()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, *cached)
}

func TestInstance_IsValidExplicitOverridesDefault(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, true), WithCache(), WithAutoUseCache(true))
	obj := &widget{ID: 1}
	obj.SetValidatorCache(v.CacheFieldName(), boolPtr(false))

	// useCache=false forces re-evaluation despite the default and the stored
	// false value.
	valid := v.For(obj).IsValid(context.Background(), boolPtr(false), true)

	assert.True(t, valid)
	assert.Equal(t, 1, calls)
}

func TestInstance_IsValidDefaultIgnoresCache(t *testing.T) {
	calls := 0
	v := New[*widget]("is_even", countingPredicate(&calls, true), WithCache())
	obj := &widget{ID: 1}
	obj.SetValidatorCache(v.CacheFieldName(), boolPtr(false))

	// AutoUseCache defaults to false, so the predicate decides.
	valid := v.For(obj).IsValid(context.Background(), nil, false)

	assert.True(t, valid)
	assert.Equal(t, 1, calls)
}

func TestInstance_UpdateCachePersistsThroughOwner(t *testing.T) {
	obj := &widget{ID: 1, Value: 4}
	qs := &fakeQueryset{rows: []*widget{obj}}
	v := newRegistered(t, qs)

	require.NoError(t, v.For(obj).UpdateCache(context.Background()))

	require.Len(t, qs.saveBoolCalls, 1)
	call := qs.saveBoolCalls[0]
	assert.Equal(t, 1, call.id)
	assert.Equal(t, "is_is_even_successful", call.column)
	require.NotNil(t, call.value)
	assert.True(t, *call.value)
}

func TestInstance_ClearCachePersistsThroughOwner(t *testing.T) {
	obj := &widget{ID: 1, Value: 4}
	obj.SetValidatorCache("is_is_even_successful", boolPtr(true))
	qs := &fakeQueryset{rows: []*widget{obj}}
	v := newRegistered(t, qs)

	require.NoError(t, v.For(obj).ClearCache(context.Background()))

	require.Len(t, qs.saveBoolCalls, 1)
	assert.Nil(t, qs.saveBoolCalls[0].value)
}

func TestInstance_UpdateCachePersistErrorSurfaces(t *testing.T) {
	obj := &widget{ID: 1, Value: 4}
	qs := &fakeQueryset{rows: []*widget{obj}, saveErr: errors.New("connection reset")}
	v := newRegistered(t, qs)

	err := v.For(obj).UpdateCache(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInstance_UpdateCacheWithoutOwnerStaysLocal(t *testing.T) {
	// An unregistered validator has nowhere to persist; the value still lands
	// on the instance and goes out with the next full save.
	v := New[*widget]("is_even", evenValue, WithCache())
	obj := &widget{ID: 1, Value: 4}

	require.NoError(t, v.For(obj).UpdateCache(context.Background()))

	cached, err := v.For(obj).Cache()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, *cached)
}
