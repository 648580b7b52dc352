package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nao1215/driftwatch/internal/dashboard"
)

func TestLoadProject(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "project.yaml", `name: fraud model
description: input quality over time
panels:
  - title: missing share
    kind: plot
    filter:
      metadata_values:
        env: prod
      tag_values:
        - nightly
    values:
      - check_type: missing_values
        check_args:
          column: age
        field_path: current.share_of_missing_values
        legend: age
  - title: row count
    kind: counter
    agg: last
    values:
      - check_type: row_count
        field_path: rows
`)

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if p.ID != "" {
		t.Errorf("ID = %q, want empty before store assignment", p.ID)
	}
	if p.Name != "fraud model" || p.Description != "input quality over time" {
		t.Errorf("header = %q / %q", p.Name, p.Description)
	}
	if len(p.Panels) != 2 {
		t.Fatalf("len(Panels) = %d, want 2", len(p.Panels))
	}

	plot := p.Panels[0]
	if plot.Kind != dashboard.PanelPlot {
		t.Errorf("Panels[0].Kind = %q, want plot", plot.Kind)
	}
	if plot.Filter.MetadataValues["env"] != "prod" {
		t.Errorf("Filter.MetadataValues = %v", plot.Filter.MetadataValues)
	}
	if len(plot.Filter.TagValues) != 1 || plot.Filter.TagValues[0] != "nightly" {
		t.Errorf("Filter.TagValues = %v", plot.Filter.TagValues)
	}
	value := plot.Values[0]
	if value.CheckType != "missing_values" || value.FieldPath != "current.share_of_missing_values" {
		t.Errorf("Values[0] = %+v", value)
	}
	if value.CheckArgs["column"] != "age" {
		t.Errorf("CheckArgs = %v", value.CheckArgs)
	}

	counter := p.Panels[1]
	if counter.Kind != dashboard.PanelCounter || counter.Agg != dashboard.AggLast {
		t.Errorf("Panels[1] = %+v", counter)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing name",
			content: `description: nameless`,
		},
		{
			name: "panel without title",
			content: `name: p
panels:
  - kind: plot
    values:
      - check_type: row_count
        field_path: rows
`,
		},
		{
			name: "unknown panel kind",
			content: `name: p
panels:
  - title: t
    kind: gauge
    values:
      - check_type: row_count
        field_path: rows
`,
		},
		{
			name: "panel without values",
			content: `name: p
panels:
  - title: t
    kind: plot
`,
		},
		{
			name: "value without check type",
			content: `name: p
panels:
  - title: t
    kind: plot
    values:
      - field_path: rows
`,
		},
		{
			name: "unknown field rejected",
			content: `name: p
dashboards: []
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "project.yaml", tt.content)
			if _, err := LoadProject(path); !errors.Is(err, ErrInvalidProject) {
				t.Errorf("LoadProject() error = %v, want ErrInvalidProject", err)
			}
		})
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := LoadProject(path); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadProject() error = %v, want ErrConfigNotFound", err)
	}
}
