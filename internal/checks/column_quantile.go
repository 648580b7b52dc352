package checks

import (
	"fmt"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// TypeColumnQuantile is the type tag of the column quantile check.
const TypeColumnQuantile = "column_quantile"

// ColumnQuantileArgs parameterizes a ColumnQuantile check.
type ColumnQuantileArgs struct {
	// Column is the numeric column to summarize.
	Column string `json:"column"`
	// Quantile is the quantile level, exclusive between 0 and 1.
	Quantile float64 `json:"quantile"`
}

// ColumnQuantile computes one quantile of a numeric column on the current
// dataset and, when present, the reference dataset.
type ColumnQuantile struct {
	args ColumnQuantileArgs
}

// NewColumnQuantile creates a quantile check for a column.
func NewColumnQuantile(column string, quantile float64) *ColumnQuantile {
	return &ColumnQuantile{args: ColumnQuantileArgs{Column: column, Quantile: quantile}}
}

// Type returns the check's type tag.
func (*ColumnQuantile) Type() string { return TypeColumnQuantile }

// Args returns the constructor arguments.
func (c *ColumnQuantile) Args() any { return c.args }

// Compute evaluates the quantile on each available dataset.
func (c *ColumnQuantile) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}
	if c.args.Quantile <= 0 || c.args.Quantile >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuantile, c.args.Quantile)
	}

	cur, err := c.valueOn(in.Current)
	if err != nil {
		return nil, err
	}
	res := check.Result{
		"column":   c.args.Column,
		"quantile": c.args.Quantile,
		"current":  map[string]any{"value": cur},
	}

	if in.Reference != nil {
		ref, err := c.valueOn(in.Reference)
		if err != nil {
			return nil, err
		}
		res["reference"] = map[string]any{"value": ref}
	}
	return res, nil
}

// valueOn evaluates the quantile on one frame.
func (c *ColumnQuantile) valueOn(f *dataset.Frame) (float64, error) {
	values, err := numericValues(f, c.args.Column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoValues, c.args.Column)
	}
	return quantileOf(values, c.args.Quantile), nil
}

// TypeColumnQuantileGenerator is the type tag of the quantile generator.
const TypeColumnQuantileGenerator = "column_quantile_generator"

// defaultQuantiles are generated when none are configured.
var defaultQuantiles = []float64{0.25, 0.5, 0.75}

// ColumnQuantileGeneratorArgs parameterizes a ColumnQuantileGenerator.
type ColumnQuantileGeneratorArgs struct {
	// Columns restricts generation; empty means every numeric feature
	// column.
	Columns []string `json:"columns,omitempty"`
	// Quantiles are the levels to generate per column; empty means
	// quartiles.
	Quantiles []float64 `json:"quantiles,omitempty"`
}

// ColumnQuantileGenerator emits one ColumnQuantile check per column and
// quantile level.
type ColumnQuantileGenerator struct {
	args ColumnQuantileGeneratorArgs
}

// NewColumnQuantileGenerator creates a quantile generator with the default
// quartile levels.
func NewColumnQuantileGenerator(columns ...string) *ColumnQuantileGenerator {
	return &ColumnQuantileGenerator{args: ColumnQuantileGeneratorArgs{Columns: columns}}
}

// Name returns the generator's provenance name.
func (*ColumnQuantileGenerator) Name() string { return TypeColumnQuantileGenerator }

// Args returns the constructor arguments.
func (g *ColumnQuantileGenerator) Args() any { return g.args }

// Generate emits checks for every targeted column and level, columns in
// description order, levels in configuration order.
func (g *ColumnQuantileGenerator) Generate(columns *dataset.Description) ([]check.Check, error) {
	targets, err := targetColumns(g.args.Columns, columns)
	if err != nil {
		return nil, err
	}
	levels := g.args.Quantiles
	if len(levels) == 0 {
		levels = defaultQuantiles
	}

	out := make([]check.Check, 0, len(targets)*len(levels))
	for _, col := range targets {
		for _, q := range levels {
			out = append(out, NewColumnQuantile(col, q))
		}
	}
	return out, nil
}

// targetColumns resolves the explicit column list, defaulting to the
// numeric feature columns of the description.
func targetColumns(explicit []string, columns *dataset.Description) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if columns == nil {
		return nil, ErrNoDescription
	}
	return columns.ColumnsOf(dataset.TypeNumeric), nil
}
