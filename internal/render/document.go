package render

import (
	"html/template"
	"sort"
	"time"
)

// Doc is a format-independent report document. The report façade assembles
// one Doc and hands it to the markdown or HTML writer, so both formats
// present the same content.
type Doc struct {
	// Title is the document heading.
	Title string
	// ID is the run identifier.
	ID string
	// Timestamp is the run time.
	Timestamp time.Time
	// Tags are the run's tags, in insertion order.
	Tags []string
	// Metadata holds display-formatted metadata values.
	Metadata map[string]string
	// Summary counts passed and failed status checks; nil when the
	// document has no status checks.
	Summary *StatusSummary
	// Sections holds one entry per rendered check, in first-level order.
	Sections []Section
}

// StatusSummary aggregates the pass/fail outcome of status-bearing checks.
type StatusSummary struct {
	Passed int
	Failed int
}

// Total returns the number of status-bearing checks.
func (s *StatusSummary) Total() int {
	return s.Passed + s.Failed
}

// Section is one rendered check: its table plus an optional prebuilt HTML
// fragment. The markdown writer uses the table; the HTML writer prefers the
// fragment and falls back to the table.
type Section struct {
	Title string
	Table *Table
	HTML  string
}

// Fragment returns the prebuilt HTML as a trusted template value.
// Fragments come from renderers that escape through html/template.
func (s Section) Fragment() template.HTML {
	return template.HTML(s.HTML)
}

// Generated returns the timestamp formatted for display.
func (d *Doc) Generated() string {
	return d.Timestamp.Format("2006-01-02 15:04:05 MST")
}

// MetadataRows returns metadata as key/value pairs sorted by key, for
// deterministic rendering.
func (d *Doc) MetadataRows() [][2]string {
	keys := make([]string, 0, len(d.Metadata))
	for k := range d.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{k, d.Metadata[k]})
	}
	return rows
}
