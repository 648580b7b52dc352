package checks

import (
	"fmt"
	"testing"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// textInput builds an input whose "comment" column is high-cardinality
// enough to be described as text.
func textInput(t *testing.T) *check.Input {
	t.Helper()

	records := make([][]string, 60)
	for i := range records {
		records[i] = []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("review note %d with detail", i)}
	}
	f, err := dataset.NewFrame([]string{"age", "comment"}, records)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	return inputFor(t, f, nil)
}

func TestDataQualityPresetExpand(t *testing.T) {
	t.Parallel()

	in := textInput(t)
	if got := in.Columns.ColumnsOf(dataset.TypeText); len(got) != 1 || got[0] != "comment" {
		t.Fatalf("text columns = %v, want [comment]", got)
	}

	elements, err := NewDataQualityPreset().Expand(in)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("Expand() produced %d elements, want 3", len(elements))
	}

	wantTypes := []string{TypeRowCount, TypeMissingValues, TypeTextLength}
	for i, el := range elements {
		pc, ok := el.(check.PresetCheck)
		if !ok {
			t.Fatalf("element %d is %T, want PresetCheck", i, el)
		}
		if pc.Check.Type() != wantTypes[i] {
			t.Errorf("element %d type = %s, want %s", i, pc.Check.Type(), wantTypes[i])
		}
	}

	tl := elements[2].(check.PresetCheck).Check.(*TextLength)
	if tl.args.Column != "comment" {
		t.Errorf("text length column = %s, want comment", tl.args.Column)
	}
}

func TestDataQualityPresetExpandWithoutDescription(t *testing.T) {
	t.Parallel()

	elements, err := NewDataQualityPreset().Expand(nil)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("Expand() produced %d elements, want 2 without a description", len(elements))
	}
}

func TestDataDriftPresetExpand(t *testing.T) {
	t.Parallel()

	elements, err := NewDataDriftPreset().Expand(nil)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("Expand() produced %d elements, want 2", len(elements))
	}

	summary, ok := elements[0].(check.PresetCheck)
	if !ok || summary.Check.Type() != TypeDatasetDrift {
		t.Errorf("element 0 = %+v, want dataset drift check", elements[0])
	}
	if args := summary.Check.Args().(DatasetDriftArgs); args.DriftShare != 0.5 {
		t.Errorf("default drift share = %v, want 0.5", args.DriftShare)
	}

	nested, ok := elements[1].(check.PresetGenerator)
	if !ok || nested.Generator.Name() != TypeColumnDriftGenerator {
		t.Errorf("element 1 = %+v, want column drift generator", elements[1])
	}
}

func TestDataDriftPresetExpandOverrides(t *testing.T) {
	t.Parallel()

	p := &DataDriftPreset{args: DataDriftPresetArgs{DriftShare: 0.8, ColumnThreshold: 0.25}}
	elements, err := p.Expand(nil)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	summary := elements[0].(check.PresetCheck).Check.Args().(DatasetDriftArgs)
	if summary.DriftShare != 0.8 {
		t.Errorf("drift share = %v, want 0.8", summary.DriftShare)
	}

	nested := elements[1].(check.PresetGenerator).Generator.(*ColumnDriftGenerator)
	if nested.args.Threshold != 0.25 {
		t.Errorf("nested threshold = %v, want 0.25", nested.args.Threshold)
	}
}
