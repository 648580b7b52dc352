package checks

import (
	"fmt"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// TypeRowCountBounds is the type tag of the row count bounds check.
const TypeRowCountBounds = "row_count_bounds"

// RowCountBoundsArgs parameterizes a RowCountBounds check. At least one
// bound must be set.
type RowCountBoundsArgs struct {
	// Gte is the inclusive lower bound on the row count.
	Gte *float64 `json:"gte,omitempty"`
	// Lte is the inclusive upper bound on the row count.
	Lte *float64 `json:"lte,omitempty"`
}

// RowCountBounds verifies that the current dataset's row count lies inside
// configured inclusive bounds.
type RowCountBounds struct {
	args RowCountBoundsArgs
}

// NewRowCountBounds creates a bounds check. Nil disables a bound.
func NewRowCountBounds(gte, lte *float64) *RowCountBounds {
	return &RowCountBounds{args: RowCountBoundsArgs{Gte: gte, Lte: lte}}
}

// Type returns the check's type tag.
func (*RowCountBounds) Type() string { return TypeRowCountBounds }

// Args returns the constructor arguments.
func (c *RowCountBounds) Args() any { return c.args }

// Compute evaluates the bounds against the current row count.
func (c *RowCountBounds) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}
	if c.args.Gte == nil && c.args.Lte == nil {
		return nil, fmt.Errorf("%s: %w", TypeRowCountBounds, ErrNoCondition)
	}

	rows := float64(in.Current.Rows())
	status := check.StatusSuccess
	if c.args.Gte != nil && rows < *c.args.Gte {
		status = check.StatusFail
	}
	if c.args.Lte != nil && rows > *c.args.Lte {
		status = check.StatusFail
	}

	condition := map[string]any{}
	if c.args.Gte != nil {
		condition["gte"] = *c.args.Gte
	}
	if c.args.Lte != nil {
		condition["lte"] = *c.args.Lte
	}

	return check.Result{
		"status":      status,
		"value":       rows,
		"condition":   condition,
		"description": fmt.Sprintf("row count is %v", rows),
	}, nil
}

// TypeMissingShareLimit is the type tag of the missing share limit check.
const TypeMissingShareLimit = "missing_share_limit"

// MissingShareLimitArgs parameterizes a MissingShareLimit check.
type MissingShareLimitArgs struct {
	// Column restricts the check to one column; empty covers the whole
	// dataset.
	Column string `json:"column,omitempty"`
	// Lt is the exclusive upper bound on the missing share.
	Lt float64 `json:"lt"`
}

// MissingShareLimit verifies that the share of missing values stays below
// a limit, either for one column or across the whole dataset.
type MissingShareLimit struct {
	args MissingShareLimitArgs
}

// NewMissingShareLimit creates a dataset-wide missing share check.
func NewMissingShareLimit(lt float64) *MissingShareLimit {
	return &MissingShareLimit{args: MissingShareLimitArgs{Lt: lt}}
}

// NewColumnMissingShareLimit creates a per-column missing share check.
func NewColumnMissingShareLimit(column string, lt float64) *MissingShareLimit {
	return &MissingShareLimit{args: MissingShareLimitArgs{Column: column, Lt: lt}}
}

// Type returns the check's type tag.
func (*MissingShareLimit) Type() string { return TypeMissingShareLimit }

// Args returns the constructor arguments.
func (c *MissingShareLimit) Args() any { return c.args }

// Compute measures the missing share and compares it against the limit.
func (c *MissingShareLimit) Compute(in *check.Input, _ *check.Context) (check.Result, error) {
	if err := requireCurrent(in); err != nil {
		return nil, err
	}
	if c.args.Lt <= 0 || c.args.Lt > 1 {
		return nil, fmt.Errorf("%w: lt=%v", ErrInvalidThreshold, c.args.Lt)
	}

	var share float64
	if c.args.Column != "" {
		missing, err := in.Current.MissingCount(c.args.Column)
		if err != nil {
			return nil, err
		}
		if rows := in.Current.Rows(); rows > 0 {
			share = float64(missing) / float64(rows)
		}
	} else {
		stats, err := missingStats(in.Current)
		if err != nil {
			return nil, err
		}
		share = stats["share_of_missing_values"].(float64)
	}

	status := check.StatusSuccess
	if share >= c.args.Lt {
		status = check.StatusFail
	}

	res := check.Result{
		"status":      status,
		"value":       share,
		"condition":   map[string]any{"lt": c.args.Lt},
		"description": fmt.Sprintf("share of missing values is %v", share),
	}
	if c.args.Column != "" {
		res["column"] = c.args.Column
	}
	return res, nil
}

// statusRenderer shows a status check as a pass/fail counter plus the
// generic table.
type statusRenderer struct {
	render.DefaultRenderer
}

// RenderWidgets returns a status counter followed by the full table.
func (r statusRenderer) RenderWidgets(id check.Identity, result check.Result) ([]render.Widget, []render.Graph, error) {
	widgets, graphs, err := r.DefaultRenderer.RenderWidgets(id, result)
	if err != nil {
		return nil, nil, err
	}

	counter := render.Widget{
		Title: render.TitleFor(id),
		Kind:  render.WidgetCounter,
		Params: map[string]any{
			"status": result["status"],
			"value":  result["value"],
		},
	}
	return append([]render.Widget{counter}, widgets...), graphs, nil
}
