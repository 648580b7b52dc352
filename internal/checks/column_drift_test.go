package checks

import (
	"errors"
	"testing"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

func TestColumnDriftComputeDetectsShift(t *testing.T) {
	t.Parallel()

	res, err := NewColumnDrift("age").Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if got := res["stattest"]; got != "psi" {
		t.Errorf("stattest = %v, want psi", got)
	}
	if got := res["threshold"]; got != 0.1 {
		t.Errorf("threshold = %v, want 0.1", got)
	}
	score, _ := res["score"].(float64)
	if score < 0.1 {
		t.Errorf("score = %v, want >= 0.1 for a shifted column", score)
	}
	if got := res["drift_detected"]; got != true {
		t.Errorf("drift_detected = %v, want true", got)
	}

	for _, side := range []string{"current", "reference"} {
		hist, ok := nestedValue(res, side, "small_histogram").(map[string]any)
		if !ok {
			t.Fatalf("%s small_histogram missing from %v", side, res)
		}
		bins, _ := hist["bins"].([]any)
		counts, _ := hist["counts"].([]any)
		if len(bins) != defaultHistogramBins+1 {
			t.Errorf("%s bins len = %d, want %d", side, len(bins), defaultHistogramBins+1)
		}
		if len(counts) != defaultHistogramBins {
			t.Errorf("%s counts len = %d, want %d", side, len(counts), defaultHistogramBins)
		}
	}
}

func TestColumnDriftComputeStableColumn(t *testing.T) {
	t.Parallel()

	res, err := NewColumnDrift("height").Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	score, _ := res["score"].(float64)
	if score >= 0.1 {
		t.Errorf("score = %v, want < 0.1 for an unchanged column", score)
	}
	if got := res["drift_detected"]; got != false {
		t.Errorf("drift_detected = %v, want false", got)
	}
}

func TestColumnDriftComputeRequiresReference(t *testing.T) {
	t.Parallel()

	current := numericFrame(t, []string{"age"}, sequence(1, 10))
	_, err := NewColumnDrift("age").Compute(inputFor(t, current, nil), nil)
	if !errors.Is(err, ErrNoReferenceDataset) {
		t.Errorf("Compute() error = %v, want ErrNoReferenceDataset", err)
	}
}

func TestColumnDriftThresholdDefaulting(t *testing.T) {
	t.Parallel()

	if got := NewColumnDriftWithThreshold("age", -1).Args().(ColumnDriftArgs).Threshold; got != 0.1 {
		t.Errorf("non-positive threshold normalized to %v, want 0.1", got)
	}
	if got := NewColumnDriftWithThreshold("age", 0.3).Args().(ColumnDriftArgs).Threshold; got != 0.3 {
		t.Errorf("explicit threshold = %v, want 0.3", got)
	}
}

func TestColumnDriftGenerator(t *testing.T) {
	t.Parallel()

	in := driftInput(t)

	t.Run("defaults to numeric features", func(t *testing.T) {
		t.Parallel()

		got, err := NewColumnDriftGenerator().Generate(in.Columns)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Generate() produced %d checks, want 2", len(got))
		}
		for i, wantCol := range []string{"age", "height"} {
			args := got[i].Args().(ColumnDriftArgs)
			if args.Column != wantCol || args.Threshold != 0.1 {
				t.Errorf("check %d args = %+v, want column %s threshold 0.1", i, args, wantCol)
			}
		}
	})

	t.Run("threshold override", func(t *testing.T) {
		t.Parallel()

		g := &ColumnDriftGenerator{args: ColumnDriftGeneratorArgs{Threshold: 0.3}}
		got, err := g.Generate(in.Columns)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for i, c := range got {
			if args := c.Args().(ColumnDriftArgs); args.Threshold != 0.3 {
				t.Errorf("check %d threshold = %v, want 0.3", i, args.Threshold)
			}
		}
	})

	t.Run("needs description", func(t *testing.T) {
		t.Parallel()

		if _, err := NewColumnDriftGenerator().Generate(nil); !errors.Is(err, ErrNoDescription) {
			t.Errorf("Generate() error = %v, want ErrNoDescription", err)
		}
	})
}

func TestColumnDriftRenderer(t *testing.T) {
	t.Parallel()

	drift := NewColumnDrift("age")
	id, err := check.IdentityOf(drift)
	if err != nil {
		t.Fatalf("IdentityOf() error = %v", err)
	}
	result, err := drift.Compute(driftInput(t), nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	t.Run("table omits histograms", func(t *testing.T) {
		t.Parallel()

		table, err := columnDriftRenderer{}.RenderTable(id, result)
		if err != nil {
			t.Fatalf("RenderTable() error = %v", err)
		}
		if table.Len() != 5 {
			t.Errorf("table rows = %d, want 5", table.Len())
		}
		for _, row := range table.Rows {
			if row[0] == "current" || row[0] == "reference" {
				t.Errorf("table carries histogram row %v", row)
			}
		}
	})

	t.Run("widgets link histogram graphs", func(t *testing.T) {
		t.Parallel()

		widgets, graphs, err := columnDriftRenderer{}.RenderWidgets(id, result)
		if err != nil {
			t.Fatalf("RenderWidgets() error = %v", err)
		}
		if len(widgets) != 1 {
			t.Fatalf("widgets len = %d, want 1", len(widgets))
		}
		if widgets[0].Kind != render.WidgetPlot {
			t.Errorf("widget kind = %v, want plot", widgets[0].Kind)
		}
		if len(graphs) != 2 {
			t.Fatalf("graphs len = %d, want 2", len(graphs))
		}
		if graphs[0].ID == graphs[1].ID {
			t.Error("graph ids are not unique")
		}

		linked := map[string]bool{}
		for _, gid := range widgets[0].GraphIDs {
			linked[gid] = true
		}
		for _, g := range graphs {
			if !linked[g.ID] {
				t.Errorf("graph %s is not referenced by the widget", g.ID)
			}
			if g.Kind != "histogram" {
				t.Errorf("graph kind = %s, want histogram", g.Kind)
			}
		}
	})
}
