package checks

import (
	"fmt"
	"sort"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// TypeDatasetDrift is the type tag of the dataset drift check.
const TypeDatasetDrift = "dataset_drift"

// defaultDriftShare is the share of drifted columns at which the whole
// dataset counts as drifted.
const defaultDriftShare = 0.5

// DatasetDriftArgs parameterizes a DatasetDrift check.
type DatasetDriftArgs struct {
	// Columns restricts scoring; empty means every numeric feature column.
	Columns []string `json:"columns,omitempty"`
	// DriftShare is the drifted-column share at which the dataset drifts.
	DriftShare float64 `json:"drift_share"`
	// ColumnThreshold is the per-column PSI threshold.
	ColumnThreshold float64 `json:"column_threshold"`
}

// DatasetDrift scores every numeric feature column and reports the share
// of drifted columns against a dataset-level threshold.
type DatasetDrift struct {
	args DatasetDriftArgs
}

// NewDatasetDrift creates a dataset drift check with default thresholds.
func NewDatasetDrift() *DatasetDrift {
	return NewDatasetDriftWithShare(defaultDriftShare)
}

// NewDatasetDriftWithShare creates a dataset drift check with an explicit
// drifted-column share. Non-positive values fall back to the default.
func NewDatasetDriftWithShare(share float64) *DatasetDrift {
	if share <= 0 {
		share = defaultDriftShare
	}
	return &DatasetDrift{args: DatasetDriftArgs{
		DriftShare:      share,
		ColumnThreshold: defaultColumnDriftThreshold,
	}}
}

// Type returns the check's type tag.
func (*DatasetDrift) Type() string { return TypeDatasetDrift }

// Args returns the constructor arguments.
func (c *DatasetDrift) Args() any { return c.args }

// Compute scores each targeted column and aggregates the drifted share.
func (c *DatasetDrift) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}
	if in.Reference == nil {
		return nil, ErrNoReferenceDataset
	}

	targets, err := targetColumns(c.args.Columns, in.Columns)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[string]any, len(targets))
	drifted := 0
	for _, col := range targets {
		reference, err := numericValues(in.Reference, col)
		if err != nil {
			return nil, err
		}
		current, err := numericValues(in.Current, col)
		if err != nil {
			return nil, err
		}
		if len(reference) == 0 || len(current) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoValues, col)
		}

		score, err := psiScore(reference, current, defaultHistogramBins)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}

		detected := score >= c.args.ColumnThreshold
		if detected {
			drifted++
		}
		byColumn[col] = map[string]any{
			"score":          score,
			"drift_detected": detected,
		}
	}

	share := 0.0
	if len(targets) > 0 {
		share = float64(drifted) / float64(len(targets))
	}
	return check.Result{
		"number_of_columns":         float64(len(targets)),
		"number_of_drifted_columns": float64(drifted),
		"share_of_drifted_columns":  share,
		"dataset_drift":             len(targets) > 0 && share >= c.args.DriftShare,
		"drift_by_column":           byColumn,
	}, nil
}

// datasetDriftRenderer shows the drifted share as a counter and the
// per-column scores as a table.
type datasetDriftRenderer struct {
	render.DefaultRenderer
}

// RenderTable lists one row per scored column, sorted by name.
func (r datasetDriftRenderer) RenderTable(id check.Identity, result check.Result) (*render.Table, error) {
	t := render.NewTable(render.TitleFor(id), "column", "score", "drift detected")

	byColumn, _ := result["drift_by_column"].(map[string]any)
	names := make([]string, 0, len(byColumn))
	for name := range byColumn {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, ok := byColumn[name].(map[string]any)
		if !ok {
			continue
		}
		err := t.AddRow(name, render.FormatValue(entry["score"]), render.FormatValue(entry["drift_detected"]))
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RenderWidgets returns a share counter followed by the per-column table.
func (r datasetDriftRenderer) RenderWidgets(id check.Identity, result check.Result) ([]render.Widget, []render.Graph, error) {
	t, err := r.RenderTable(id, result)
	if err != nil {
		return nil, nil, err
	}

	counter := render.Widget{
		Title: "Share Of Drifted Columns",
		Kind:  render.WidgetCounter,
		Params: map[string]any{
			"value":         result["share_of_drifted_columns"],
			"dataset_drift": result["dataset_drift"],
		},
	}
	return []render.Widget{counter, render.TableWidget(t)}, nil, nil
}

// RenderHTML renders the per-column table as the HTML fragment.
func (r datasetDriftRenderer) RenderHTML(id check.Identity, result check.Result) (string, error) {
	t, err := r.RenderTable(id, result)
	if err != nil {
		return "", err
	}
	return render.FragmentHTML(t)
}
