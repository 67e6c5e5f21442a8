package validation

import "fmt"

// CacheColumn describes the nullable boolean storage column backing one
// cached validator.
type CacheColumn struct {
	// Name is the column identifier, e.g. "is_is_even_successful".
	Name string

	// VerboseName is the human-readable label used in synthesized failure
	// messages and column comments.
	VerboseName string
}

// AddCacheColumnsSQL emits the ALTER TABLE statements that add the given
// cache columns to table, one statement per column, in order. Columns are
// nullable booleans: NULL means "not yet computed".
func AddCacheColumnsSQL(table string, columns []CacheColumn) []string {
	statements := make([]string, 0, len(columns))
	for _, column := range columns {
		statements = append(statements,
			fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s boolean;", table, column.Name))
	}
	return statements
}

// DropCacheColumnsSQL emits the ALTER TABLE statements that remove the given
// cache columns from table.
func DropCacheColumnsSQL(table string, columns []CacheColumn) []string {
	statements := make([]string, 0, len(columns))
	for _, column := range columns {
		statements = append(statements,
			fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, column.Name))
	}
	return statements
}
