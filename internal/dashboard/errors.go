package dashboard

import "errors"

var (
	// ErrFieldNotFound is returned when a dotted field path does not
	// resolve inside a check result. It aborts the affected panel only;
	// sibling panels still evaluate.
	ErrFieldNotFound = errors.New("field not found in result")

	// ErrUnknownAggregation is returned when a panel names an
	// aggregation that is not registered.
	ErrUnknownAggregation = errors.New("unknown aggregation")

	// ErrUnknownPanelKind is returned when a panel carries a kind other
	// than counter or plot.
	ErrUnknownPanelKind = errors.New("unknown panel kind")
)
