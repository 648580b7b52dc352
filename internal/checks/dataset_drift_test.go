package checks

import (
	"errors"
	"math"
	"testing"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

func TestDatasetDriftCompute(t *testing.T) {
	t.Parallel()

	res, err := NewDatasetDrift().Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := res["number_of_columns"]; got != float64(2) {
		t.Errorf("number_of_columns = %v, want 2", got)
	}
	if got := res["number_of_drifted_columns"]; got != float64(1) {
		t.Errorf("number_of_drifted_columns = %v, want 1 (only age shifted)", got)
	}
	share, _ := res["share_of_drifted_columns"].(float64)
	if math.Abs(share-0.5) > 1e-12 {
		t.Errorf("share_of_drifted_columns = %v, want 0.5", share)
	}
	if got := res["dataset_drift"]; got != true {
		t.Errorf("dataset_drift = %v, want true at share 0.5 with default threshold", got)
	}

	byColumn, ok := res["drift_by_column"].(map[string]any)
	if !ok {
		t.Fatalf("drift_by_column missing from %v", res)
	}
	age, _ := byColumn["age"].(map[string]any)
	if age["drift_detected"] != true {
		t.Errorf("age entry = %v, want drift_detected true", age)
	}
	height, _ := byColumn["height"].(map[string]any)
	if height["drift_detected"] != false {
		t.Errorf("height entry = %v, want drift_detected false", height)
	}
}

func TestDatasetDriftComputeShareThreshold(t *testing.T) {
	t.Parallel()

	res, err := NewDatasetDriftWithShare(0.6).Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := res["dataset_drift"]; got != false {
		t.Errorf("dataset_drift = %v, want false when share 0.5 < 0.6", got)
	}
}

func TestDatasetDriftComputeColumnSubset(t *testing.T) {
	t.Parallel()

	c := &DatasetDrift{args: DatasetDriftArgs{
		Columns:         []string{"height"},
		DriftShare:      defaultDriftShare,
		ColumnThreshold: defaultColumnDriftThreshold,
	}}
	res, err := c.Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := res["number_of_columns"]; got != float64(1) {
		t.Errorf("number_of_columns = %v, want 1", got)
	}
	if got := res["dataset_drift"]; got != false {
		t.Errorf("dataset_drift = %v, want false for the stable column", got)
	}
}

func TestDatasetDriftComputeRequiresReference(t *testing.T) {
	t.Parallel()

	current := numericFrame(t, []string{"age"}, sequence(1, 10))
	_, err := NewDatasetDrift().Compute(inputFor(t, current, nil), nil)
	if !errors.Is(err, ErrNoReferenceDataset) {
		t.Errorf("Compute() error = %v, want ErrNoReferenceDataset", err)
	}
}

func TestDatasetDriftShareDefaulting(t *testing.T) {
	t.Parallel()

	args := NewDatasetDriftWithShare(0).Args().(DatasetDriftArgs)
	if args.DriftShare != 0.5 {
		t.Errorf("non-positive share normalized to %v, want 0.5", args.DriftShare)
	}
	if args.ColumnThreshold != 0.1 {
		t.Errorf("column threshold = %v, want 0.1", args.ColumnThreshold)
	}
}

func TestDatasetDriftRenderer(t *testing.T) {
	t.Parallel()

	drift := NewDatasetDrift()
	id, err := check.IdentityOf(drift)
	if err != nil {
		t.Fatalf("IdentityOf() error = %v", err)
	}
	result, err := drift.Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	table, err := datasetDriftRenderer{}.RenderTable(id, result)
	if err != nil {
		t.Fatalf("RenderTable() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("table rows = %d, want 2", table.Len())
	}
	if table.Rows[0][0] != "age" || table.Rows[1][0] != "height" {
		t.Errorf("rows not sorted by column: %v", table.Rows)
	}

	widgets, graphs, err := datasetDriftRenderer{}.RenderWidgets(id, result)
	if err != nil {
		t.Fatalf("RenderWidgets() error = %v", err)
	}
	if len(graphs) != 0 {
		t.Errorf("graphs = %v, want none", graphs)
	}
	if len(widgets) != 2 || widgets[0].Kind != render.WidgetCounter || widgets[1].Kind != render.WidgetTable {
		t.Errorf("widgets = %+v, want counter then table", widgets)
	}

	html, err := datasetDriftRenderer{}.RenderHTML(id, result)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if html == "" {
		t.Error("RenderHTML() returned an empty fragment")
	}
}
