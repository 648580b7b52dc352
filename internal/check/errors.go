package check

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCurrentDataset is returned when a run is started without a
	// current dataset. Detected before any computation happens.
	ErrNoCurrentDataset = errors.New("current dataset is required")

	// ErrResultNotReady is returned when a result is requested for a check
	// that has not been computed in this run.
	ErrResultNotReady = errors.New("result requested before compute")

	// ErrResultExists is returned when a result would overwrite one already
	// recorded for the same identity within a run.
	ErrResultExists = errors.New("result already recorded")

	// ErrNilCheck is returned when a preset or generator produces a nil
	// element.
	ErrNilCheck = errors.New("nil check produced")

	// ErrUnknownCheckType is returned when a type tag has no registered
	// check factory.
	ErrUnknownCheckType = errors.New("unknown check type")

	// ErrUnknownPresetType is returned when a type tag has no registered
	// preset factory.
	ErrUnknownPresetType = errors.New("unknown preset type")

	// ErrUnknownGeneratorType is returned when a type tag has no registered
	// generator factory.
	ErrUnknownGeneratorType = errors.New("unknown generator type")
)

// GenerationError reports that a preset or generator failed to produce a
// valid check list. Expansion aborts; no partial list is registered.
type GenerationError struct {
	// Source is the name of the preset or generator that failed.
	Source string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed in %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error { return e.Err }

// ComputationError reports that a check's own computation failed. The
// failing check's identity is attached so the failure is attributable.
// Computations are not retried.
type ComputationError struct {
	// Check identifies the failing check.
	Check Identity
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Check, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ComputationError) Unwrap() error { return e.Err }
