package validation

import (
	"context"
	"sync"

	"github.com/Masterminds/squirrel"
)

// ─────────────────────────────────────────────
// Test models
// ─────────────────────────────────────────────

// widget is the cache-carrying model used across the package tests.
type widget struct {
	CacheState
	ID    int
	Value int
}

func (w *widget) TableName() string { return "widgets" }

// plainRow carries no cache state, so cached validators must be rejected
// for it at declaration time.
type plainRow struct {
	ID int
}

func (p *plainRow) TableName() string { return "plain_rows" }

// form implements FieldCleaner on top of CacheState.
type form struct {
	CacheState
	Title string

	cleanCalls int
}

func (f *form) TableName() string { return "forms" }

func (f *form) CleanFields(_ context.Context) error {
	f.cleanCalls++
	if f.Title == "" {
		verr := &Error{}
		verr.Add("title", "This field is required.")
		return verr
	}
	return nil
}

// ─────────────────────────────────────────────
// Fake queryset
// ─────────────────────────────────────────────

type saveBoolCall struct {
	id     int
	column string
	value  *bool
}

type setBoolCall struct {
	column string
	value  *bool
	cond   squirrel.Sqlizer
}

// fakeQueryset is a memory-backed Queryset over widget rows. It evaluates
// squirrel conditions structurally against each row's cache columns, which
// covers every condition the engine builds (Eq, NotEq on nil, And, Or).
type fakeQueryset struct {
	mu   sync.Mutex
	rows []*widget

	saveBoolCalls []saveBoolCall
	setBoolCalls  []setBoolCall

	selectErr error
	existsErr error
	setErr    error
	saveErr   error
}

func (f *fakeQueryset) Select(_ context.Context, cond squirrel.Sqlizer) ([]*widget, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*widget
	for _, row := range f.rows {
		if rowMatches(row, cond) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeQueryset) Exists(_ context.Context, cond squirrel.Sqlizer) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if rowMatches(row, cond) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQueryset) SetBool(_ context.Context, column string, value *bool, cond squirrel.Sqlizer) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setBoolCalls = append(f.setBoolCalls, setBoolCall{column: column, value: value, cond: cond})
	for _, row := range f.rows {
		if rowMatches(row, cond) {
			row.SetValidatorCache(column, value)
		}
	}
	return nil
}

func (f *fakeQueryset) SaveBool(_ context.Context, obj *widget, column string, value *bool) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveBoolCalls = append(f.saveBoolCalls, saveBoolCall{id: obj.ID, column: column, value: value})
	for _, row := range f.rows {
		if row.ID == obj.ID {
			row.SetValidatorCache(column, value)
		}
	}
	return nil
}

// rowMatches evaluates the condition shapes the engine produces. A nil
// condition selects every row.
func rowMatches(row *widget, cond squirrel.Sqlizer) bool {
	switch c := cond.(type) {
	case nil:
		return true
	case squirrel.Eq:
		for column, want := range c {
			got := row.ValidatorCache(column)
			switch w := want.(type) {
			case nil:
				if got != nil {
					return false
				}
			case bool:
				if got == nil || *got != w {
					return false
				}
			default:
				return false
			}
		}
		return true
	case squirrel.NotEq:
		for column, want := range c {
			if want != nil {
				return false
			}
			if row.ValidatorCache(column) == nil {
				return false
			}
		}
		return true
	case squirrel.And:
		for _, sub := range c {
			if !rowMatches(row, sub) {
				return false
			}
		}
		return true
	case squirrel.Or:
		for _, sub := range c {
			if rowMatches(row, sub) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func boolPtr(v bool) *bool { return &v }

// evenValue reports a widget valid when its Value is even.
func evenValue(_ context.Context, w *widget) any {
	return w.Value%2 == 0
}

// countingPredicate wraps a predicate and records how many times it runs.
func countingPredicate(calls *int, result any) Predicate[*widget] {
	return func(_ context.Context, _ *widget) any {
		*calls++
		return result
	}
}
