package dataset

import "errors"

var (
	// ErrNoColumns is returned when a CSV or frame has no columns at all.
	ErrNoColumns = errors.New("dataset has no columns")

	// ErrNoRows is returned when a CSV has a header but no data rows.
	ErrNoRows = errors.New("dataset has no data rows")

	// ErrRaggedRow is returned when a row's length differs from the header.
	ErrRaggedRow = errors.New("row length does not match header")

	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrFeatureExists is returned when a derived feature collides with an
	// existing column or feature name.
	ErrFeatureExists = errors.New("feature name already in use")
)
