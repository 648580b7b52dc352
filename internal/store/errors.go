package store

import "errors"

var (
	// ErrProjectNotFound is returned when a project id or name does not
	// exist in the workspace.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSnapshotNotFound is returned when a snapshot id is not indexed
	// for the project or its document is gone.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
