package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// indexFile is the SQLite index filename inside the workspace root.
const indexFile = "index.db"

// Workspace is a directory of snapshot documents plus a SQLite index.
//
// Design decision: snapshots live as plain JSON files and the database
// only indexes them. This keeps every snapshot readable without the
// index, makes backups a file copy, and leaves SQLite with the single
// job it is good at here: listing and filtering metadata.
type Workspace struct {
	// root is the workspace directory.
	root string

	// db is the SQLite index connection.
	db *sql.DB

	// types rebuilds checks from stored (type, args) pairs when a
	// series needs results resolved through a restored report.
	types *check.TypeRegistry

	// renderers is passed into restored reports. Series loading never
	// renders, so an empty registry suffices.
	renderers *render.Registry

	// logger is used for workspace-level logging.
	logger *slog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets a custom logger for the workspace.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithRenderers sets the renderer registry handed to reports restored
// by the workspace.
func WithRenderers(reg *render.Registry) Option {
	return func(w *Workspace) {
		w.renderers = reg
	}
}

// DefaultRoot returns the default workspace directory under the XDG
// data home.
func DefaultRoot() string {
	return filepath.Join(xdg.DataHome, "driftwatch")
}

// Open opens or creates a workspace rooted at the given directory. An
// empty root selects DefaultRoot. The type registry is used to rebuild
// checks when series loading resolves results through restored reports;
// a nil registry leaves restoration failing on every type.
func Open(root string, types *check.TypeRegistry, opts ...Option) (*Workspace, error) {
	if root == "" {
		root = DefaultRoot()
	}
	if types == nil {
		types = check.NewTypeRegistry()
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	// modernc.org/sqlite connection string; mode=rwc creates the index
	// on first open.
	db, err := sql.Open("sqlite", filepath.Join(root, indexFile)+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace index: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection
	// avoids database-locked errors under concurrent series loads.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	w := &Workspace{
		root:      root,
		db:        db,
		types:     types,
		renderers: render.NewRegistry(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	ctx := context.Background()
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}
	if err := w.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create index tables: %w", err)
	}
	return w, nil
}

// Close closes the index connection.
func (w *Workspace) Close() error {
	return w.db.Close()
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// createTables creates the index schema if it doesn't exist.
func (w *Workspace) createTables(ctx context.Context) error {
	schema := `
	-- Projects are named panel collections.
	CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		panels      TEXT NOT NULL DEFAULT '[]',
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Snapshot rows index the JSON documents on disk.
	CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		timestamp  DATETIME NOT NULL,
		tags       TEXT NOT NULL DEFAULT '[]',
		metadata   TEXT NOT NULL DEFAULT '{}',
		path       TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);
	`

	_, err := w.db.ExecContext(ctx, schema)
	return err
}

// projectDir returns the directory of one project's data.
func (w *Workspace) projectDir(projectID string) string {
	return filepath.Join(w.root, "projects", projectID)
}

// snapshotsDir returns the directory holding one project's snapshot
// documents.
func (w *Workspace) snapshotsDir(projectID string) string {
	return filepath.Join(w.projectDir(projectID), "snapshots")
}

// snapshotPath returns the document path of one snapshot.
func (w *Workspace) snapshotPath(projectID, snapshotID string) string {
	return filepath.Join(w.snapshotsDir(projectID), snapshotID+".json")
}

// timestampFormats contains the timestamp formats SQLite may return.
// The order matters: more specific formats come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a stored timestamp using multiple formats.
// SQLite may return timestamps in different formats depending on how
// the value was written. Returns zero time when nothing matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
