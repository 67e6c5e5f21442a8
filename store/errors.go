package store

import "errors"

// Sentinel errors returned (or wrapped) by table gateway methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrNilDB is returned when a connector or gateway is constructed with a
	// nil database handle.
	ErrNilDB = errors.New("db is nil")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty column list or a malformed condition).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (UPDATE of cache columns) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrNoCacheColumn is returned when a statement references a validator
	// cache column that does not exist in the table, usually because the
	// cache-column migration has not been applied yet.
	ErrNoCacheColumn = errors.New("cache column does not exist")

	// ErrNoTable is returned when the model's table does not exist.
	ErrNoTable = errors.New("table does not exist")

	// ErrRowNotFound is returned when a single-row cache write matches no
	// row, meaning the instance was never persisted or has been deleted.
	ErrRowNotFound = errors.New("row was not found")

	// ErrInvalidTableConfig is returned when a table gateway is constructed
	// with an incomplete configuration.
	ErrInvalidTableConfig = errors.New("invalid table configuration")
)
