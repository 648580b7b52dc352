package checks

import (
	"fmt"
	"math"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
)

// TypeTextLength is the type tag of the text length check.
const TypeTextLength = "text_length"

// TextLengthArgs parameterizes a TextLength check.
type TextLengthArgs struct {
	// Column is the text column to summarize.
	Column string `json:"column"`
}

// TextLength summarizes the value lengths of a text column. The lengths
// come from a derived feature column planned before the run, so several
// checks over the same column share one derivation.
type TextLength struct {
	args TextLengthArgs
}

// NewTextLength creates a text length check for a column.
func NewTextLength(column string) *TextLength {
	return &TextLength{args: TextLengthArgs{Column: column}}
}

// Type returns the check's type tag.
func (*TextLength) Type() string { return TypeTextLength }

// Args returns the constructor arguments.
func (c *TextLength) Args() any { return c.args }

// PlanFeatures requests the length derivation for the column.
func (c *TextLength) PlanFeatures(_ *dataset.Definition) []dataset.Feature {
	return []dataset.Feature{dataset.TextLength(c.args.Column)}
}

// Compute summarizes the derived lengths. Missing cells derive to zero.
func (c *TextLength) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}

	featureName := c.args.Column + "_length"
	lengths, ok := in.Features[featureName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotMaterialized, featureName)
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoValues, c.args.Column)
	}

	minLen, maxLen := lengths[0], lengths[0]
	sum := 0.0
	for _, l := range lengths {
		minLen = math.Min(minLen, l)
		maxLen = math.Max(maxLen, l)
		sum += l
	}

	return check.Result{
		"column": c.args.Column,
		"current": map[string]any{
			"mean_length": sum / float64(len(lengths)),
			"min_length":  minLen,
			"max_length":  maxLen,
		},
	}, nil
}
