package checks

import (
	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// TypeDataQualityPreset is the type tag of the data quality preset.
const TypeDataQualityPreset = "data_quality"

// DataQualityPreset bundles the dataset-level quality checks: row count,
// missing values, and a length summary per text column.
type DataQualityPreset struct{}

// NewDataQualityPreset creates a data quality preset.
func NewDataQualityPreset() *DataQualityPreset {
	return &DataQualityPreset{}
}

// Name returns the preset's provenance name.
func (*DataQualityPreset) Name() string { return TypeDataQualityPreset }

// Expand emits the quality checks. Text length checks are emitted per
// described text column, so the preset adapts to the dataset at hand.
func (*DataQualityPreset) Expand(in *check.Input) ([]check.PresetElement, error) {
	elements := []check.PresetElement{
		check.Emit(NewRowCount()),
		check.Emit(NewMissingValues()),
	}
	if in != nil && in.Columns != nil {
		for _, col := range in.Columns.ColumnsOf(dataset.TypeText) {
			elements = append(elements, check.Emit(NewTextLength(col)))
		}
	}
	return elements, nil
}

// TypeDataDriftPreset is the type tag of the data drift preset.
const TypeDataDriftPreset = "data_drift"

// DataDriftPresetArgs parameterizes a DataDriftPreset.
type DataDriftPresetArgs struct {
	// DriftShare overrides the dataset-level drifted share when positive.
	DriftShare float64 `json:"drift_share,omitempty"`
	// ColumnThreshold overrides the per-column PSI threshold when
	// positive.
	ColumnThreshold float64 `json:"column_threshold,omitempty"`
}

// DataDriftPreset bundles the dataset drift summary with one drift check
// per numeric feature column, produced through a nested generator.
type DataDriftPreset struct {
	args DataDriftPresetArgs
}

// NewDataDriftPreset creates a data drift preset with default thresholds.
func NewDataDriftPreset() *DataDriftPreset {
	return &DataDriftPreset{}
}

// Name returns the preset's provenance name.
func (*DataDriftPreset) Name() string { return TypeDataDriftPreset }

// Expand emits the dataset summary followed by a generator that fans out
// over the numeric feature columns.
func (p *DataDriftPreset) Expand(_ *check.Input) ([]check.PresetElement, error) {
	summary := NewDatasetDriftWithShare(p.args.DriftShare)
	generator := &ColumnDriftGenerator{args: ColumnDriftGeneratorArgs{
		Threshold: p.args.ColumnThreshold,
	}}
	return []check.PresetElement{
		check.Emit(summary),
		check.EmitGenerator(generator),
	}, nil
}
