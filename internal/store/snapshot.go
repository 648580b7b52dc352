package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nao1215/driftwatch/internal/snapshot"
)

// SnapshotInfo is one indexed snapshot row, enough to list histories
// without reading the documents.
type SnapshotInfo struct {
	// ID is the snapshot identifier.
	ID string
	// ProjectID names the owning project.
	ProjectID string
	// Timestamp is the report run time.
	Timestamp time.Time
	// Tags are the report tags.
	Tags []string
	// Metadata is the report metadata.
	Metadata map[string]any
	// Path is the document location on disk.
	Path string
	// CreatedAt is when the row was written.
	CreatedAt time.Time
}

// SaveSnapshot writes the snapshot document under the project and
// upserts its index row. Saving the same snapshot id again replaces
// both.
func (w *Workspace) SaveSnapshot(ctx context.Context, projectID string, snap *snapshot.Snapshot) error {
	if _, err := w.Project(ctx, projectID); err != nil {
		return err
	}
	if err := os.MkdirAll(w.snapshotsDir(projectID), 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := w.snapshotPath(projectID, snap.ID)
	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write snapshot document: %w", err)
	}

	tagsJSON, err := json.Marshal(snap.Tags)
	if err != nil {
		return fmt.Errorf("failed to serialize tags: %w", err)
	}
	metadataJSON, err := json.Marshal(snap.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	query := `
	INSERT INTO snapshots (id, project_id, timestamp, tags, metadata, path)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		project_id = excluded.project_id,
		timestamp = excluded.timestamp,
		tags = excluded.tags,
		metadata = excluded.metadata,
		path = excluded.path
	`
	_, err = w.db.ExecContext(ctx, query,
		snap.ID,
		projectID,
		snap.Timestamp.UTC().Format(time.RFC3339Nano),
		string(tagsJSON),
		string(metadataJSON),
		path,
	)
	if err != nil {
		return fmt.Errorf("failed to index snapshot %s: %w", snap.ID, err)
	}

	w.logger.Info("saved snapshot",
		"snapshot_id", snap.ID,
		"project_id", projectID,
		"units", len(snap.Units),
	)
	return nil
}

// LoadSnapshot reads one snapshot document back by id.
func (w *Workspace) LoadSnapshot(ctx context.Context, projectID, snapshotID string) (*snapshot.Snapshot, error) {
	query := `
	SELECT path FROM snapshots
	WHERE id = ? AND project_id = ?
	`
	var path string
	err := w.db.QueryRowContext(ctx, query, snapshotID, projectID).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot %s: %w", snapshotID, err)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("snapshot %s document missing: %w", snapshotID, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot document: %w", err)
	}
	defer f.Close()

	return snapshot.Decode(f)
}

// ListSnapshots returns the indexed snapshots of a project ordered by
// timestamp.
func (w *Workspace) ListSnapshots(ctx context.Context, projectID string) ([]SnapshotInfo, error) {
	if _, err := w.Project(ctx, projectID); err != nil {
		return nil, err
	}

	query := `
	SELECT id, project_id, timestamp, tags, metadata, path, created_at
	FROM snapshots
	WHERE project_id = ?
	ORDER BY timestamp
	`
	rows, err := w.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var timestamp, tagsJSON, metadataJSON, createdAt string
		if err := rows.Scan(&info.ID, &info.ProjectID, &timestamp, &tagsJSON, &metadataJSON, &info.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		info.Timestamp = parseTimestamp(timestamp)
		info.CreatedAt = parseTimestamp(createdAt)
		if err := json.Unmarshal([]byte(tagsJSON), &info.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags of %s: %w", info.ID, err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &info.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse metadata of %s: %w", info.ID, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
