package checks

import (
	"encoding/json"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// DefaultTypes assembles the type registry holding every built-in check,
// preset, and generator. Snapshot restore and YAML loading resolve names
// against it.
func DefaultTypes() *check.TypeRegistry {
	reg := check.NewTypeRegistry()

	reg.RegisterCheck(TypeRowCount, func(_ json.RawMessage) (check.Check, error) {
		return NewRowCount(), nil
	})
	reg.RegisterCheck(TypeMissingValues, func(_ json.RawMessage) (check.Check, error) {
		return NewMissingValues(), nil
	})
	reg.RegisterCheck(TypeColumnQuantile, func(args json.RawMessage) (check.Check, error) {
		var a ColumnQuantileArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &ColumnQuantile{args: a}, nil
	})
	reg.RegisterCheck(TypeColumnDrift, func(args json.RawMessage) (check.Check, error) {
		var a ColumnDriftArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return NewColumnDriftWithThreshold(a.Column, a.Threshold), nil
	})
	reg.RegisterCheck(TypeDatasetDrift, func(args json.RawMessage) (check.Check, error) {
		var a DatasetDriftArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		c := NewDatasetDriftWithShare(a.DriftShare)
		if a.ColumnThreshold > 0 {
			c.args.ColumnThreshold = a.ColumnThreshold
		}
		c.args.Columns = a.Columns
		return c, nil
	})
	reg.RegisterCheck(TypeRowCountBounds, func(args json.RawMessage) (check.Check, error) {
		var a RowCountBoundsArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &RowCountBounds{args: a}, nil
	})
	reg.RegisterCheck(TypeMissingShareLimit, func(args json.RawMessage) (check.Check, error) {
		var a MissingShareLimitArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &MissingShareLimit{args: a}, nil
	})
	reg.RegisterCheck(TypeTextLength, func(args json.RawMessage) (check.Check, error) {
		var a TextLengthArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &TextLength{args: a}, nil
	})

	reg.RegisterPreset(TypeDataQualityPreset, func(_ json.RawMessage) (check.Preset, error) {
		return NewDataQualityPreset(), nil
	})
	reg.RegisterPreset(TypeDataDriftPreset, func(args json.RawMessage) (check.Preset, error) {
		var a DataDriftPresetArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &DataDriftPreset{args: a}, nil
	})

	reg.RegisterGenerator(TypeColumnDriftGenerator, func(args json.RawMessage) (check.Generator, error) {
		var a ColumnDriftGeneratorArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &ColumnDriftGenerator{args: a}, nil
	})
	reg.RegisterGenerator(TypeColumnQuantileGenerator, func(args json.RawMessage) (check.Generator, error) {
		var a ColumnQuantileGeneratorArgs
		if err := check.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		return &ColumnQuantileGenerator{args: a}, nil
	})

	return reg
}

// DefaultRegistry assembles the renderer registry for every built-in check
// type.
func DefaultRegistry() *render.Registry {
	reg := render.NewRegistry()
	reg.Register(TypeRowCount, rowCountRenderer{})
	reg.Register(TypeMissingValues, missingValuesRenderer{})
	reg.Register(TypeColumnQuantile, render.DefaultRenderer{})
	reg.Register(TypeColumnDrift, columnDriftRenderer{})
	reg.Register(TypeDatasetDrift, datasetDriftRenderer{})
	reg.Register(TypeRowCountBounds, statusRenderer{})
	reg.Register(TypeMissingShareLimit, statusRenderer{})
	reg.Register(TypeTextLength, render.DefaultRenderer{})
	return reg
}
