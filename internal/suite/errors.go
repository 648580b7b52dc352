package suite

import "errors"

var (
	// ErrNotAcceptingChecks is returned when Register is called outside
	// the RESET state.
	ErrNotAcceptingChecks = errors.New("suite is not accepting check registrations; call Reset first")

	// ErrNotReset is returned when Verify is called before Reset.
	ErrNotReset = errors.New("suite must be reset before verification")

	// ErrNotVerified is returned when Run is called before Verify.
	ErrNotVerified = errors.New("suite inputs must be verified before running")

	// ErrNotComplete is returned when results are requested from a suite
	// that has not finished a run.
	ErrNotComplete = errors.New("suite run is not complete")

	// ErrMissingResult is returned by MarkComplete when a registered
	// check has no stored result.
	ErrMissingResult = errors.New("registered check has no stored result")

	// ErrNilItem is returned when a check list contains a nil check,
	// preset, or generator.
	ErrNilItem = errors.New("nil entry in check list")
)
