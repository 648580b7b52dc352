package dashboard

import (
	"github.com/nao1215/driftwatch/internal/snapshot"
)

// PanelKind selects how a panel presents its series.
type PanelKind string

const (
	// PanelCounter reduces the series to a single headline value.
	PanelCounter PanelKind = "counter"
	// PanelPlot keeps the full series for plotting over time.
	PanelPlot PanelKind = "plot"
)

// Valid reports whether the kind is one of the known panel kinds.
func (k PanelKind) Valid() bool {
	return k == PanelCounter || k == PanelPlot
}

// Project is a named collection of dashboard panels evaluated over one
// snapshot history.
type Project struct {
	// ID is the project identifier, assigned by the store on creation.
	ID string `json:"id" yaml:"id,omitempty"`
	// Name is the human-facing project name, unique within a workspace.
	Name string `json:"name" yaml:"name"`
	// Description explains what the project observes.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Panels are evaluated independently; one failing panel does not
	// block its siblings.
	Panels []Panel `json:"panels,omitempty" yaml:"panels,omitempty"`
}

// Panel extracts one field from one check across the snapshot history.
type Panel struct {
	// Title labels the panel.
	Title string `json:"title" yaml:"title"`
	// Kind is counter or plot.
	Kind PanelKind `json:"kind" yaml:"kind"`
	// Filter restricts which snapshots contribute.
	Filter Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
	// Values name the checks and result fields to extract.
	Values []PanelValue `json:"values" yaml:"values"`
	// Agg names the aggregation applied to each extracted series.
	// Empty means none.
	Agg string `json:"agg,omitempty" yaml:"agg,omitempty"`
}

// PanelValue addresses one field of one check's result.
type PanelValue struct {
	// CheckType is the type tag of the check to look up.
	CheckType string `json:"check_type" yaml:"check_type"`
	// CheckArgs is an args template matched with subset semantics
	// against the check's canonical arguments. Keys may be dotted to
	// reach nested argument fields. Empty matches any args.
	CheckArgs map[string]any `json:"check_args,omitempty" yaml:"check_args,omitempty"`
	// FieldPath is the dotted path of the result field to extract.
	FieldPath string `json:"field_path" yaml:"field_path"`
	// Legend labels the extracted series. Empty falls back to the
	// field path.
	Legend string `json:"legend,omitempty" yaml:"legend,omitempty"`
}

// legend returns the series label.
func (v PanelValue) legend() string {
	if v.Legend != "" {
		return v.Legend
	}
	return v.FieldPath
}

// Filter restricts snapshots by metadata and tags. Zero value matches
// everything; adding entries only ever narrows the match.
type Filter struct {
	// MetadataValues must all be present in the snapshot metadata with
	// equal values.
	MetadataValues map[string]any `json:"metadata_values,omitempty" yaml:"metadata_values,omitempty"`
	// TagValues must all be carried by the snapshot.
	TagValues []string `json:"tag_values,omitempty" yaml:"tag_values,omitempty"`
}

// Matches reports whether the snapshot satisfies the filter: snapshot
// metadata is a superset of MetadataValues and snapshot tags are a
// superset of TagValues.
func (f Filter) Matches(snap *snapshot.Snapshot) bool {
	for key, want := range f.MetadataValues {
		got, ok := snap.Metadata[key]
		if !ok || !equalValues(want, got) {
			return false
		}
	}
	for _, tag := range f.TagValues {
		if !containsString(snap.Tags, tag) {
			return false
		}
	}
	return true
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
