package snapshot

import "errors"

// ErrCorruptSnapshot is returned when persisted snapshot data cannot be
// decoded or fails structural validation. Loading aborts; no partial
// report is ever produced.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// ErrIncompleteReport is returned by Capture when the report has not
// finished running. Only complete reports serialize.
var ErrIncompleteReport = errors.New("report is not complete")
