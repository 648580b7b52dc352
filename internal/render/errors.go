package render

import "errors"

var (
	// ErrRendererNotFound is returned when no renderer is registered for a
	// check type.
	ErrRendererNotFound = errors.New("no renderer registered for check type")

	// ErrGraphNotFound is returned when a dashboard is asked for a graph
	// id it does not hold.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrGraphExists is returned when a graph id is added to a dashboard
	// twice.
	ErrGraphExists = errors.New("graph id already present")
)
