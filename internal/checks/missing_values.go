package checks

import (
	"fmt"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
	"github.com/nao1215/driftwatch/internal/render"
)

// TypeMissingValues is the type tag of the missing values check.
const TypeMissingValues = "missing_values"

// MissingValues reports how many cells across the whole dataset are
// missing, as a count and as a share of all cells.
type MissingValues struct{}

// NewMissingValues creates a missing values check.
func NewMissingValues() *MissingValues {
	return &MissingValues{}
}

// Type returns the check's type tag.
func (*MissingValues) Type() string { return TypeMissingValues }

// Args returns the constructor arguments; the check has none.
func (*MissingValues) Args() any { return nil }

// Compute counts missing cells on each available dataset.
func (*MissingValues) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}

	cur, err := missingStats(in.Current)
	if err != nil {
		return nil, err
	}
	res := check.Result{"current": cur}

	if in.Reference != nil {
		ref, err := missingStats(in.Reference)
		if err != nil {
			return nil, err
		}
		res["reference"] = ref
	}
	return res, nil
}

// missingStats counts missing cells over every column of a frame.
func missingStats(f *dataset.Frame) (map[string]any, error) {
	columns := f.ColumnNames()
	missing := 0
	for _, col := range columns {
		n, err := f.MissingCount(col)
		if err != nil {
			return nil, fmt.Errorf("count missing in %q: %w", col, err)
		}
		missing += n
	}

	total := f.Rows() * len(columns)
	share := 0.0
	if total > 0 {
		share = float64(missing) / float64(total)
	}
	return map[string]any{
		"number_of_rows":           float64(f.Rows()),
		"number_of_columns":        float64(len(columns)),
		"number_of_missing_values": float64(missing),
		"share_of_missing_values":  share,
	}, nil
}

// missingValuesRenderer shows the missing share as a counter plus the
// generic table.
type missingValuesRenderer struct {
	render.DefaultRenderer
}

// RenderWidgets returns a share counter followed by the full table.
func (r missingValuesRenderer) RenderWidgets(id check.Identity, result check.Result) ([]render.Widget, []render.Graph, error) {
	widgets, graphs, err := r.DefaultRenderer.RenderWidgets(id, result)
	if err != nil {
		return nil, nil, err
	}

	counter := render.Widget{
		Title:  "Share Of Missing Values",
		Kind:   render.WidgetCounter,
		Params: map[string]any{"value": nestedValue(result, "current", "share_of_missing_values")},
	}
	return append([]render.Widget{counter}, widgets...), graphs, nil
}
