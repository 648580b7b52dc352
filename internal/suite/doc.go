// Package suite owns the run protocol: it expands declarative check lists,
// registers the resulting checks in insertion order, and executes them once
// each through a shared memoization context.
//
// A Suite moves through a fixed state machine:
//
//	UNINITIALIZED → RESET → VERIFIED → RUNNING → COMPLETE
//
// Reset clears the context and the unit list; registration is only legal in
// the RESET state; Verify checks required inputs before any computation
// starts; Run computes every registered check sequentially; COMPLETE means
// every result is available and the suite is read-only until the next
// Reset.
//
// A Suite instance is single-flight. Overlapping runs on one instance are
// not supported; callers that need concurrency use one Suite per logical
// run.
package suite
