package checks

import (
	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// TypeRowCount is the type tag of the row count check.
const TypeRowCount = "row_count"

// RowCount reports the number of rows in the current dataset and, when
// present, the reference dataset.
type RowCount struct{}

// NewRowCount creates a row count check.
func NewRowCount() *RowCount {
	return &RowCount{}
}

// Type returns the check's type tag.
func (*RowCount) Type() string { return TypeRowCount }

// Args returns the constructor arguments; the check has none.
func (*RowCount) Args() any { return nil }

// Compute counts rows on each available dataset.
func (*RowCount) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}

	res := check.Result{
		"current": map[string]any{"row_count": float64(in.Current.Rows())},
	}
	if in.Reference != nil {
		res["reference"] = map[string]any{"row_count": float64(in.Reference.Rows())}
	}
	return res, nil
}

// rowCountRenderer shows the row count as a counter widget.
type rowCountRenderer struct {
	render.DefaultRenderer
}

// RenderWidgets returns one counter per available dataset.
func (r rowCountRenderer) RenderWidgets(id check.Identity, result check.Result) ([]render.Widget, []render.Graph, error) {
	widgets := []render.Widget{{
		Title:  "Rows (current)",
		Kind:   render.WidgetCounter,
		Params: map[string]any{"value": nestedValue(result, "current", "row_count")},
	}}
	if _, ok := result["reference"]; ok {
		widgets = append(widgets, render.Widget{
			Title:  "Rows (reference)",
			Kind:   render.WidgetCounter,
			Params: map[string]any{"value": nestedValue(result, "reference", "row_count")},
		})
	}
	return widgets, nil, nil
}

// nestedValue reads result[outer][inner], tolerating absent maps.
func nestedValue(result check.Result, outer, inner string) any {
	m, ok := result[outer].(map[string]any)
	if !ok {
		return nil
	}
	return m[inner]
}
