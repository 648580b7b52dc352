package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Report output formats accepted by the --format flag.
const (
	// FormatJSON emits the report's AsDict document as indented JSON.
	FormatJSON = "json"

	// FormatMarkdown emits the report as GitHub Flavored Markdown.
	FormatMarkdown = "markdown"

	// FormatHTML emits the report as a self-contained HTML page.
	FormatHTML = "html"
)

// Default configuration values.
const (
	// AppName is the application name used for workspace and scaffold
	// paths.
	AppName = "driftwatch"

	// DefaultFormat is the report encoding used when --output is given
	// without an explicit --format.
	DefaultFormat = FormatJSON

	// DefaultAggregation leaves extracted series values untouched.
	DefaultAggregation = "none"

	// DefaultChecksFile is the check-list file name init scaffolds.
	DefaultChecksFile = "checks.yaml"

	// DefaultProjectFile is the project file name init scaffolds.
	DefaultProjectFile = "project.yaml"
)

// timestampFormats are the layouts accepted for --from and --to, tried in
// order. The date-only form reads as midnight UTC.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02",
}

// Config holds all configuration options for the driftwatch CLI.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of per-command
// structs. The commands share most fields (workspace, project, time
// window), and nesting would add complexity without significant benefit.
// Validation is per command instead, since run and series require
// different fields.
type Config struct {
	// Workspace is the directory holding the snapshot store. Empty means
	// the store's default under the XDG data home.
	Workspace string

	// Debug enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Debug bool

	// CurrentPath is the CSV file with the dataset under inspection.
	// Required by run.
	CurrentPath string

	// ReferencePath is an optional CSV file with the baseline dataset
	// drift checks compare against.
	ReferencePath string

	// ChecksPath is the YAML check-list file executed by run.
	ChecksPath string

	// Project is the project name snapshots are filed under. Optional
	// for run (an ad-hoc run computes and prints without persisting),
	// required by series and dashboard.
	Project string

	// Tags are free-form labels attached to the saved snapshot.
	Tags []string

	// Metadata holds raw key=value pairs from the --meta flag, parsed by
	// MetadataPairs.
	Metadata []string

	// Output is the destination file for the rendered report or
	// dashboard. Empty writes to stdout.
	Output string

	// Format selects the report encoding: json, markdown, or html.
	Format string

	// From is the inclusive lower bound of the snapshot time window,
	// RFC 3339 or YYYY-MM-DD. Empty means unbounded.
	From string

	// To is the inclusive upper bound of the snapshot time window.
	// Empty means unbounded.
	To string

	// CheckSpec restricts series to one check: TYPE or TYPE:argsJSON.
	// Empty keeps every first-level check.
	CheckSpec string

	// FieldPath extracts a single dotted-path value from each matching
	// result. Empty keeps whole results.
	FieldPath string

	// Aggregation reduces the extracted series: none, last, or sum.
	Aggregation string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because some defaults are non-zero strings. This also
// serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		Aggregation: DefaultAggregation,
	}
}

// ValidateRun checks the fields the run command uses.
// It returns the first error found; fixing one error often makes others
// irrelevant.
func (c *Config) ValidateRun() error {
	if c.CurrentPath == "" {
		return ErrNoCurrentFile
	}
	if c.ChecksPath == "" {
		return ErrNoChecksFile
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Format)
	}
	if _, err := c.MetadataPairs(); err != nil {
		return err
	}
	return nil
}

// ValidateSeries checks the fields the series command uses.
func (c *Config) ValidateSeries() error {
	if c.Project == "" {
		return ErrNoProject
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if _, _, err := c.ParseCheckSpec(); err != nil {
		return err
	}
	if c.FieldPath == "" && c.Aggregation != "" && c.Aggregation != DefaultAggregation {
		return fmt.Errorf("%w: got --agg %q", ErrAggregationNeedsField, c.Aggregation)
	}
	return nil
}

// ValidateDashboard checks the fields the dashboard command uses.
func (c *Config) ValidateDashboard() error {
	if c.Project == "" {
		return ErrNoProject
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// validFormat reports whether f names a supported report encoding.
func validFormat(f string) bool {
	switch f {
	case FormatJSON, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// MetadataPairs parses the raw --meta values into a map. A missing '='
// or an empty key is an error; an empty value is allowed.
func (c *Config) MetadataPairs() (map[string]string, error) {
	if len(c.Metadata) == 0 {
		return nil, nil
	}
	pairs := make(map[string]string, len(c.Metadata))
	for _, raw := range c.Metadata {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidMetadata, raw)
		}
		pairs[key] = value
	}
	return pairs, nil
}

// Window parses the --from/--to bounds. A nil pointer means that side is
// unbounded. Bounds are not ordered here; an inverted window is a valid
// request for an empty series.
func (c *Config) Window() (from, to *time.Time, err error) {
	if from, err = parseBound(c.From); err != nil {
		return nil, nil, err
	}
	if to, err = parseBound(c.To); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// parseBound parses one window bound, empty meaning unbounded.
func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timestampFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("%w: got %q", ErrInvalidTimestamp, s)
}

// ParseCheckSpec splits the --check value into a type tag and optional
// JSON arguments. An empty spec returns empty values, meaning no check
// filter.
func (c *Config) ParseCheckSpec() (typeTag string, args json.RawMessage, err error) {
	if c.CheckSpec == "" {
		return "", nil, nil
	}
	typeTag, rest, found := strings.Cut(c.CheckSpec, ":")
	if typeTag == "" {
		return "", nil, fmt.Errorf("%w: got %q", ErrInvalidCheckSpec, c.CheckSpec)
	}
	if !found || rest == "" {
		return typeTag, nil, nil
	}
	if !json.Valid([]byte(rest)) {
		return "", nil, fmt.Errorf("%w: args in %q are not valid JSON", ErrInvalidCheckSpec, c.CheckSpec)
	}
	return typeTag, json.RawMessage(rest), nil
}
