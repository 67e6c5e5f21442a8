package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddCacheColumnsSQL(t *testing.T) {
	columns := []CacheColumn{
		{Name: "is_is_even_successful", VerboseName: "is is even successful"},
		{Name: "even_cache", VerboseName: "even cache"},
	}

	want := []string{
		"ALTER TABLE widgets ADD COLUMN is_is_even_successful boolean;",
		"ALTER TABLE widgets ADD COLUMN even_cache boolean;",
	}
	if diff := cmp.Diff(want, AddCacheColumnsSQL("widgets", columns)); diff != "" {
		t.Errorf("add statements mismatch (-want +got):\n%s", diff)
	}
}

func TestDropCacheColumnsSQL(t *testing.T) {
	columns := []CacheColumn{{Name: "even_cache"}}

	want := []string{"ALTER TABLE widgets DROP COLUMN even_cache;"}
	if diff := cmp.Diff(want, DropCacheColumnsSQL("widgets", columns)); diff != "" {
		t.Errorf("drop statements mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheColumnsSQL_Empty(t *testing.T) {
	if got := AddCacheColumnsSQL("widgets", nil); len(got) != 0 {
		t.Fatalf("expected no statements, got %v", got)
	}
}
