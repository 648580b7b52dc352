package checks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
	"github.com/nao1215/driftwatch/internal/render"
)

// TypeColumnDrift is the type tag of the column drift check.
const TypeColumnDrift = "column_drift"

// defaultColumnDriftThreshold is the PSI score above which a column counts
// as drifted.
const defaultColumnDriftThreshold = 0.1

// ColumnDriftArgs parameterizes a ColumnDrift check.
type ColumnDriftArgs struct {
	// Column is the numeric column to score.
	Column string `json:"column"`
	// Threshold is the PSI score at which drift is reported.
	Threshold float64 `json:"threshold"`
}

// ColumnDrift scores the distribution shift of one numeric column between
// the reference and current datasets using the Population Stability Index.
type ColumnDrift struct {
	args ColumnDriftArgs
}

// NewColumnDrift creates a drift check for a column with the default
// threshold.
func NewColumnDrift(column string) *ColumnDrift {
	return NewColumnDriftWithThreshold(column, defaultColumnDriftThreshold)
}

// NewColumnDriftWithThreshold creates a drift check with an explicit
// threshold. A non-positive threshold falls back to the default.
func NewColumnDriftWithThreshold(column string, threshold float64) *ColumnDrift {
	if threshold <= 0 {
		threshold = defaultColumnDriftThreshold
	}
	return &ColumnDrift{args: ColumnDriftArgs{Column: column, Threshold: threshold}}
}

// Type returns the check's type tag.
func (*ColumnDrift) Type() string { return TypeColumnDrift }

// Args returns the constructor arguments.
func (c *ColumnDrift) Args() any { return c.args }

// Compute scores the column and records the binned distributions of both
// sides for rendering.
func (c *ColumnDrift) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}
	if in.Reference == nil {
		return nil, fmt.Errorf("column %q: %w", c.args.Column, ErrNoReferenceDataset)
	}

	reference, err := numericValues(in.Reference, c.args.Column)
	if err != nil {
		return nil, err
	}
	current, err := numericValues(in.Current, c.args.Column)
	if err != nil {
		return nil, err
	}
	if len(reference) == 0 || len(current) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoValues, c.args.Column)
	}

	score, err := psiScore(reference, current, defaultHistogramBins)
	if err != nil {
		return nil, err
	}

	lo, hi := combinedRange(reference, current)
	return check.Result{
		"column":         c.args.Column,
		"stattest":       "psi",
		"threshold":      c.args.Threshold,
		"score":          score,
		"drift_detected": score >= c.args.Threshold,
		"current": map[string]any{
			"small_histogram": histogramPayload(current, lo, hi, defaultHistogramBins),
		},
		"reference": map[string]any{
			"small_histogram": histogramPayload(reference, lo, hi, defaultHistogramBins),
		},
	}, nil
}

// TypeColumnDriftGenerator is the type tag of the drift generator.
const TypeColumnDriftGenerator = "column_drift_generator"

// ColumnDriftGeneratorArgs parameterizes a ColumnDriftGenerator.
type ColumnDriftGeneratorArgs struct {
	// Columns restricts generation; empty means every numeric feature
	// column.
	Columns []string `json:"columns,omitempty"`
	// Threshold overrides the per-column PSI threshold when positive.
	Threshold float64 `json:"threshold,omitempty"`
}

// ColumnDriftGenerator emits one ColumnDrift check per numeric feature
// column.
type ColumnDriftGenerator struct {
	args ColumnDriftGeneratorArgs
}

// NewColumnDriftGenerator creates a drift generator.
func NewColumnDriftGenerator(columns ...string) *ColumnDriftGenerator {
	return &ColumnDriftGenerator{args: ColumnDriftGeneratorArgs{Columns: columns}}
}

// Name returns the generator's provenance name.
func (*ColumnDriftGenerator) Name() string { return TypeColumnDriftGenerator }

// Args returns the constructor arguments.
func (g *ColumnDriftGenerator) Args() any { return g.args }

// Generate emits drift checks for the targeted columns in description
// order.
func (g *ColumnDriftGenerator) Generate(columns *dataset.Description) ([]check.Check, error) {
	targets, err := targetColumns(g.args.Columns, columns)
	if err != nil {
		return nil, err
	}

	out := make([]check.Check, 0, len(targets))
	for _, col := range targets {
		if g.args.Threshold > 0 {
			out = append(out, NewColumnDriftWithThreshold(col, g.args.Threshold))
		} else {
			out = append(out, NewColumnDrift(col))
		}
	}
	return out, nil
}

// columnDriftRenderer shows the drift score as a counter and attaches the
// two distributions as histogram graphs.
type columnDriftRenderer struct {
	render.DefaultRenderer
}

// RenderTable keeps the histogram payloads out of the tabular view.
func (r columnDriftRenderer) RenderTable(id check.Identity, result check.Result) (*render.Table, error) {
	t := render.NewTable(render.TitleFor(id), "field", "value")
	for _, key := range []string{"column", "stattest", "score", "threshold", "drift_detected"} {
		if v, ok := result[key]; ok {
			if err := t.AddRow(key, render.FormatValue(v)); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// RenderWidgets returns a drift plot referencing one histogram graph per
// dataset side.
func (r columnDriftRenderer) RenderWidgets(id check.Identity, result check.Result) ([]render.Widget, []render.Graph, error) {
	column, _ := result["column"].(string)

	var graphs []render.Graph
	var graphIDs []string
	for _, side := range []string{"reference", "current"} {
		hist, ok := nestedValue(result, side, "small_histogram").(map[string]any)
		if !ok {
			continue
		}
		g := render.Graph{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("%s distribution (%s)", column, side),
			Kind:  "histogram",
			Data:  hist,
		}
		graphs = append(graphs, g)
		graphIDs = append(graphIDs, g.ID)
	}

	widget := render.Widget{
		Title: render.TitleFor(id),
		Kind:  render.WidgetPlot,
		Params: map[string]any{
			"score":          result["score"],
			"threshold":      result["threshold"],
			"drift_detected": result["drift_detected"],
		},
		GraphIDs: graphIDs,
	}
	return []render.Widget{widget}, graphs, nil
}
