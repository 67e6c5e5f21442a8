// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package validation

import (
	"context"
	"reflect"
)

// Model is implemented by every type that validators can be declared for.
//
// TableName should be declared with a pointer receiver returning a constant
// so the table name can be derived from the type parameter alone:
//
//	func (d *Document) TableName() string { return "documents" }
type Model interface {
	TableName() string
}

// CacheCarrier is implemented by models that store per-instance validator
// cache values. Embed [CacheState] to satisfy it.
//
// A nil value means "not yet computed / unknown", true means "last computed
// as valid" and false means "last computed as invalid".
type CacheCarrier interface {
	// ValidatorCache returns the current cache value for the given column,
	// or nil when the value is unknown.
	ValidatorCache(column string) *bool

	// SetValidatorCache replaces the cache value for the given column.
	// Passing nil resets the value to unknown.
	SetValidatorCache(column string, value *bool)
}

// FieldCleaner is implemented by models carrying built-in field validation.
// IsValid and FullClean run it ahead of any custom validators.
type FieldCleaner interface {
	CleanFields(ctx context.Context) error
}

// CacheState is the embeddable per-instance storage for validator cache
// columns. Model types that declare cached validators must embed it:
//
//	type Document struct {
//		validation.CacheState
//		ID uuid.UUID
//		...
//	}
//
// Values are keyed by cache column name. The zero value is ready to use.
type CacheState struct {
	caches map[string]*bool
}

// ValidatorCache returns a copy of the stored value for column, or nil when
// the value is unknown.
func (s *CacheState) ValidatorCache(column string) *bool {
	if s.caches == nil {
		return nil
	}
	stored := s.caches[column]
	if stored == nil {
		return nil
	}
	value := *stored
	return &value
}

// SetValidatorCache stores a copy of value under column. Passing nil resets
// the column to unknown.
func (s *CacheState) SetValidatorCache(column string, value *bool) {
	if s.caches == nil {
		s.caches = make(map[string]*bool)
	}
	if value == nil {
		s.caches[column] = nil
		return
	}
	stored := *value
	s.caches[column] = &stored
}

// ValidatorCaches returns a copy of all known cache values, keyed by column
// name. Savers can use it to persist every cache column alongside the row.
func (s *CacheState) ValidatorCaches() map[string]*bool {
	out := make(map[string]*bool, len(s.caches))
	for column, stored := range s.caches {
		if stored == nil {
			out[column] = nil
			continue
		}
		value := *stored
		out[column] = &value
	}
	return out
}

// TableName derives the table name of T without requiring a live instance.
// When T is a pointer type a fresh value is allocated so pointer-receiver
// implementations returning constants work as expected.
func TableName[T Model]() string {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(Model).TableName()
	}
	return zero.TableName()
}

// isCacheCarrier reports whether T implements [CacheCarrier]. The check is a
// pure type assertion; no method is called, so a nil pointer is fine.
func isCacheCarrier[T Model]() bool {
	var zero T
	_, ok := any(zero).(CacheCarrier)
	return ok
}
