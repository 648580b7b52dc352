// Package check defines the computational-unit contracts the engine runs.
//
// A Check is one executable verification (a metric or a test) with a stable
// structural identity: its type tag plus the canonical JSON form of its
// constructor arguments. Two checks with equal identity are the same check,
// however they were constructed; identity is the join key for memoization
// within a run and for matching checks across stored snapshots.
//
// A Context is the per-run memoization cache. Once a result is recorded for
// an identity it is never overwritten within that run, which is what makes
// "each check computes at most once" hold no matter how many places
// reference the check.
//
// Declarative check lists are built from Item values, a closed sum of three
// cases: a single Check, a Preset (a named bundle that expands into checks),
// and a Generator (produces checks from the dataset's column description).
// Presets may emit nested generators one level deep; the expander in the
// suite package resolves them.
//
// The TypeRegistry maps type tags back to factories so persisted snapshots
// and YAML configurations can reconstruct checks by name.
package check
