// Package snapshot serializes completed reports to a portable JSON
// document and rebuilds equivalent reports from it.
//
// A snapshot flattens the full unit list of a report's suite into an
// ordered array of (type, args, result) entries plus the first-level
// indices into that array. Restoring reverses the flattening: every
// check is reconstructed from its type tag and canonical arguments
// through a type registry, and its stored result is installed without
// recomputation. A restored report answers every view exactly as the
// original did.
package snapshot
