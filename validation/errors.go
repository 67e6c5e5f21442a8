package validation

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Configuration and registration errors. These signal programming mistakes
// rather than invalid data; they are never swallowed into booleans. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrNoCache is returned when a cache-only operation (condition builder,
	// bulk update/clear, per-instance cache read/write) is invoked on a
	// validator that was declared without a cache column.
	ErrNoCache = errors.New("validator has no cache")

	// ErrNotRegistered is returned when an operation that needs the owning
	// model registration (bulk operations, object queries) is invoked on a
	// validator that has not been bound to a model yet.
	ErrNotRegistered = errors.New("validator is not registered with a model")

	// ErrAlreadyRegistered is returned when a validator is bound to a model
	// a second time. Rebinding would register a duplicate cache column.
	ErrAlreadyRegistered = errors.New("validator is already registered with a model")

	// ErrDuplicateCacheField is returned when two validators registered with
	// the same model derive the same cache column name.
	ErrDuplicateCacheField = errors.New("duplicate cache field")

	// ErrNoQueryset is returned by query-backed operations when the model
	// registration was constructed without a queryset.
	ErrNoQueryset = errors.New("no queryset configured")

	// ErrNoSaver is returned by Save when the model registration was
	// constructed without a persistence callback.
	ErrNoSaver = errors.New("no saver configured")

	// ErrNotCacheCarrier is returned when a cached validator is declared for
	// a model type that does not embed [CacheState] (or otherwise implement
	// [CacheCarrier]).
	ErrNotCacheCarrier = errors.New("model does not carry validator cache state")
)

// Error is a validation failure carrying one or more human-readable messages,
// optionally grouped by field or validator cache-field name.
//
// A nil *Error and an *Error with no messages both mean "valid"; every
// constructor in this package returns nil in that case, so callers can rely
// on a plain nil check.
type Error struct {
	// Messages holds failure messages attached directly to this error.
	Messages []string

	// FieldErrors groups failure messages by field name or validator
	// cache-field name.
	FieldErrors map[string][]string
}

// NewError constructs a validation failure from plain messages.
func NewError(messages ...string) *Error {
	return &Error{Messages: append([]string(nil), messages...)}
}

// Error implements the error interface. Field-grouped messages are rendered
// as "field: message" in sorted field order so the output is deterministic.
func (e *Error) Error() string {
	parts := append([]string(nil), e.Messages...)

	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, msg := range e.FieldErrors[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}

	return strings.Join(parts, "; ")
}

// Add records messages under the given field. An empty field attaches the
// messages directly to the error.
func (e *Error) Add(field string, messages ...string) {
	if field == "" {
		e.Messages = append(e.Messages, messages...)
		return
	}
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], messages...)
}

// Merge folds another validation failure into e, keeping field grouping.
func (e *Error) Merge(other *Error) {
	if other == nil {
		return
	}
	e.Messages = append(e.Messages, other.Messages...)
	for field, messages := range other.FieldErrors {
		e.Add(field, messages...)
	}
}

// Empty reports whether e carries no messages at all.
func (e *Error) Empty() bool {
	return e == nil || (len(e.Messages) == 0 && len(e.FieldErrors) == 0)
}

// Collect drains a lazily-produced sequence of validation errors into a
// single aggregate. It returns nil when the sequence yields nothing.
//
// Elements that are themselves *Error are merged with their field grouping
// preserved; any other error contributes its Error() text as a plain message.
func Collect(errs iter.Seq[error]) error {
	agg := &Error{}
	for err := range errs {
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

// asValidationError unwraps err into *Error, or wraps its message into a
// fresh one. A nil err yields nil.
func asValidationError(err error) *Error {
	if err == nil {
		return nil
	}
	var verr *Error
	if errors.As(err, &verr) {
		if verr.Empty() {
			return nil
		}
		return verr
	}
	return NewError(err.Error())
}
