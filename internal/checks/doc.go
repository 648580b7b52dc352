// Package checks holds the built-in check types: dataset size and missing
// value quality checks, quantile summaries, PSI-based drift detection,
// bounds-style status checks, presets bundling them, and generators that
// fan checks out over described columns.
//
// Each check type pairs with a renderer; DefaultTypes and DefaultRegistry
// assemble the registries the application starts with.
package checks
