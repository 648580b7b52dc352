// Package main provides the entry point for the driftwatch CLI.
//
// Driftwatch executes data quality and drift checks against CSV datasets,
// stores the results as snapshots in a workspace, and answers questions
// over the accumulated history.
//
// Usage:
//
//	driftwatch run --current data.csv --checks checks.yaml
//	driftwatch series --project NAME
//	driftwatch dashboard --project NAME
//
// See --help for all available options.
package main

// main is the entry point for driftwatch.
func main() {
	Execute()
}
