// Package report provides the user-facing façade over the check suite.
// A Report expands a declarative item list, runs the resulting units
// against a pair of datasets, and projects the computed results into
// dictionary, table, dashboard, markdown, and HTML views through an
// explicit renderer registry.
//
// A Report wraps one suite.Suite and tracks which units the item list
// produced at its top level (the first-level view). The first-level view
// holds indices into the suite's unit list, never copies: a unit exposed
// through two code paths yields two index entries, one computation, and
// one serialized unit.
package report
