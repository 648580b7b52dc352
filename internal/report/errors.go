package report

import "errors"

var (
	// ErrUnknownGroup is returned when a table is requested for a check
	// type the report does not contain.
	ErrUnknownGroup = errors.New("unknown result group")

	// ErrIndexOutOfRange is returned when a restored first-level index
	// does not refer to a registered unit.
	ErrIndexOutOfRange = errors.New("first-level index out of range")
)
