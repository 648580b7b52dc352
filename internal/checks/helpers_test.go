package checks

import (
	"strconv"
	"testing"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// numericFrame builds a frame of float columns, formatted as CSV-like
// strings.
func numericFrame(t *testing.T, names []string, cols ...[]float64) *dataset.Frame {
	t.Helper()

	if len(names) != len(cols) {
		t.Fatalf("numericFrame: %d names for %d columns", len(names), len(cols))
	}
	rows := len(cols[0])
	records := make([][]string, rows)
	for i := 0; i < rows; i++ {
		rec := make([]string, len(cols))
		for j := range cols {
			rec[j] = strconv.FormatFloat(cols[j][i], 'g', -1, 64)
		}
		records[i] = rec
	}

	f, err := dataset.NewFrame(names, records)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	return f
}

// sequence returns n evenly spaced values starting at from.
func sequence(from float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)
	}
	return out
}

// inputFor describes the current frame and bundles it with an optional
// reference.
func inputFor(t *testing.T, current, reference *dataset.Frame) *check.Input {
	t.Helper()

	desc, def, err := dataset.Describe(current, nil)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	return &check.Input{
		Current:    current,
		Reference:  reference,
		Columns:    desc,
		Definition: def,
	}
}

// driftInput builds a two-column input where "age" is shifted against the
// reference and "height" is unchanged.
func driftInput(t *testing.T) *check.Input {
	t.Helper()

	names := []string{"age", "height"}
	reference := numericFrame(t, names, sequence(1, 50), sequence(150, 50))
	current := numericFrame(t, names, sequence(31, 50), sequence(150, 50))
	return inputFor(t, current, reference)
}
