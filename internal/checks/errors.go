package checks

import "errors"

var (
	// ErrNoReferenceDataset is returned when a drift check runs without a
	// reference dataset.
	ErrNoReferenceDataset = errors.New("reference dataset is required")

	// ErrNoValues is returned when a column has no parseable numeric
	// values.
	ErrNoValues = errors.New("column has no numeric values")

	// ErrNoDescription is returned when a generator runs without a column
	// description.
	ErrNoDescription = errors.New("column description is required")

	// ErrInvalidQuantile is returned for quantiles outside (0, 1).
	ErrInvalidQuantile = errors.New("quantile must be between 0 and 1 exclusive")

	// ErrInvalidThreshold is returned for thresholds outside the valid
	// range of the check.
	ErrInvalidThreshold = errors.New("threshold out of range")

	// ErrNoCondition is returned when a bounds check has neither a lower
	// nor an upper bound.
	ErrNoCondition = errors.New("at least one bound is required")

	// ErrFeatureNotMaterialized is returned when a check needs a derived
	// column that was not materialized before the run.
	ErrFeatureNotMaterialized = errors.New("derived feature not materialized")
)
