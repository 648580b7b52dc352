package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods and the YAML loaders
// and provide specific information about what is wrong with the input.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each validation site. This allows
// callers to use errors.Is() for programmatic error handling while still
// providing human-readable messages. Dynamic detail (the offending value,
// the file path) is attached by wrapping with fmt.Errorf at the call site.
var (
	// ErrNoCurrentFile is returned when run is invoked without a current
	// dataset. Every run inspects exactly one current dataset.
	ErrNoCurrentFile = errors.New("no current dataset: provide --current")

	// ErrNoChecksFile is returned when run is invoked without a check
	// list. An empty run would compute nothing.
	ErrNoChecksFile = errors.New("no check list: provide --checks")

	// ErrNoProject is returned when a workspace command is invoked
	// without naming the project to operate on.
	ErrNoProject = errors.New("no project specified: provide --project")

	// ErrInvalidFormat is returned when the report format is not one of
	// the supported encodings.
	ErrInvalidFormat = errors.New("invalid format: must be json, markdown, or html")

	// ErrInvalidMetadata is returned when a --meta flag value does not
	// parse as a key=value pair.
	ErrInvalidMetadata = errors.New("invalid metadata: must be key=value")

	// ErrInvalidTimestamp is returned when a --from or --to bound does
	// not parse with any accepted layout.
	ErrInvalidTimestamp = errors.New("invalid timestamp: must be RFC 3339 or YYYY-MM-DD")

	// ErrInvalidCheckSpec is returned when a --check flag value does not
	// parse as TYPE or TYPE:argsJSON.
	ErrInvalidCheckSpec = errors.New("invalid check spec: must be TYPE or TYPE:argsJSON")

	// ErrAggregationNeedsField is returned when --agg names a reducer but
	// no --field is given. Aggregations fold scalar values, not whole
	// results.
	ErrAggregationNeedsField = errors.New("aggregation requires a field: provide --field")

	// ErrConfigNotFound is returned when a named configuration file does
	// not exist. Callers decide whether that is fatal; a missing explicit
	// --checks file is, a missing scaffold candidate is not.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidCheckList is returned when a check-list file is
	// syntactically valid YAML but structurally wrong.
	ErrInvalidCheckList = errors.New("invalid check list")

	// ErrInvalidProject is returned when a project file is syntactically
	// valid YAML but structurally wrong.
	ErrInvalidProject = errors.New("invalid project file")
)
