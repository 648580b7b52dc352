// Package dashboard aggregates check results across many snapshots into
// panel series.
//
// A Project bundles named panels. Each panel filters the snapshot
// history by metadata and tags, locates one check per snapshot through a
// (type, args) template with subset semantics, pulls a single field out
// of the check's result by dotted path, and reduces the collected points
// with a named aggregation. The package never computes anything itself;
// it only reads results that reports stored earlier.
package dashboard
