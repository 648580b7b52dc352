// Package dataset provides the tabular input model for check execution.
//
// A Frame is a column-major, string-backed table (typically read from CSV).
// Before a run, Describe inspects the current frame and produces:
//   - Description: per-column name, inferred type, and role
//   - Definition: which columns act as target, prediction, id, timestamp
//
// Both are computed once per run and shared read-only by every check, so no
// check re-infers column types on its own. A ColumnMapping overrides
// inference for datasets where heuristics guess wrong.
//
// Checks that need derived columns declare a Feature; features are
// materialized after check registration and travel with the input as plain
// float columns.
package dataset
