package checks

import (
	"fmt"
	"math"
	"sort"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// defaultHistogramBins is the bin count used for drift scoring and
// histogram payloads.
const defaultHistogramBins = 10

// psiEpsilon keeps PSI finite when a bin is empty on one side.
const psiEpsilon = 1e-4

// requireCurrent guards direct Compute calls; runs going through a Suite
// have already verified the input.
func requireCurrent(in *check.Input) error {
	if in == nil || in.Current == nil {
		return check.ErrNoCurrentDataset
	}
	return nil
}

// numericValues extracts the parseable numeric values of a column,
// dropping missing and unparseable cells.
func numericValues(f *dataset.Frame, column string) ([]float64, error) {
	vals, ok, err := f.Floats(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals))
	for i, v := range vals {
		if ok[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// quantileOf returns the q-quantile of values using linear interpolation
// between closest ranks. values must be non-empty; the input is not
// modified.
func quantileOf(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// histogramCounts bins values into bins equal-width buckets over [lo, hi].
// Values outside the range clamp into the edge buckets.
func histogramCounts(values []float64, lo, hi float64, bins int) []float64 {
	counts := make([]float64, bins)
	if len(values) == 0 {
		return counts
	}
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		var idx int
		if width > 0 {
			idx = int((v - lo) / width)
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts
}

// binEdges returns the bins+1 bucket boundaries over [lo, hi].
func binEdges(lo, hi float64, bins int) []float64 {
	edges := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := 0; i <= bins; i++ {
		edges[i] = lo + width*float64(i)
	}
	return edges
}

// psiScore computes the Population Stability Index between a reference and
// a current sample, binned over their combined range. Both samples must be
// non-empty.
func psiScore(reference, current []float64, bins int) (float64, error) {
	if len(reference) == 0 || len(current) == 0 {
		return 0, fmt.Errorf("psi: %w", ErrNoValues)
	}

	lo, hi := combinedRange(reference, current)
	refCounts := histogramCounts(reference, lo, hi, bins)
	curCounts := histogramCounts(current, lo, hi, bins)

	score := 0.0
	for i := 0; i < bins; i++ {
		refShare := refCounts[i] / float64(len(reference))
		curShare := curCounts[i] / float64(len(current))
		if refShare == 0 {
			refShare = psiEpsilon
		}
		if curShare == 0 {
			curShare = psiEpsilon
		}
		score += (curShare - refShare) * math.Log(curShare/refShare)
	}
	return score, nil
}

// combinedRange returns the min and max over both samples. A degenerate
// range widens by one to keep bucket width positive.
func combinedRange(a, b []float64) (float64, float64) {
	lo, hi := a[0], a[0]
	for _, v := range a {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, v := range b {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// floatsToAny converts a float slice to the JSON-native []any form results
// require.
func floatsToAny(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// histogramPayload builds the JSON-native histogram map stored in drift
// results and rendered as a graph.
func histogramPayload(values []float64, lo, hi float64, bins int) map[string]any {
	return map[string]any{
		"bins":   floatsToAny(binEdges(lo, hi, bins)),
		"counts": floatsToAny(histogramCounts(values, lo, hi, bins)),
	}
}
