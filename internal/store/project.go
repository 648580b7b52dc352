package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nao1215/driftwatch/internal/dashboard"
)

// CreateProject registers a project and prepares its snapshot
// directory. An empty project id gets a fresh UUID assigned in place.
// Project names are unique within a workspace.
func (w *Workspace) CreateProject(ctx context.Context, p *dashboard.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	panelsJSON, err := marshalPanels(p.Panels)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO projects (id, name, description, panels)
	VALUES (?, ?, ?, ?)
	`
	if _, err := w.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, panelsJSON); err != nil {
		return fmt.Errorf("failed to create project %s: %w", p.Name, err)
	}
	if err := os.MkdirAll(w.snapshotsDir(p.ID), 0750); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	w.logger.Info("created project",
		"project_id", p.ID,
		"name", p.Name,
	)
	return nil
}

// Project retrieves a project by id.
func (w *Workspace) Project(ctx context.Context, id string) (*dashboard.Project, error) {
	query := `
	SELECT id, name, description, panels FROM projects
	WHERE id = ?
	`
	return w.scanProject(w.db.QueryRowContext(ctx, query, id), id)
}

// ProjectByName retrieves a project by its unique name.
func (w *Workspace) ProjectByName(ctx context.Context, name string) (*dashboard.Project, error) {
	query := `
	SELECT id, name, description, panels FROM projects
	WHERE name = ?
	`
	return w.scanProject(w.db.QueryRowContext(ctx, query, name), name)
}

// ListProjects returns every project ordered by name.
func (w *Workspace) ListProjects(ctx context.Context) ([]*dashboard.Project, error) {
	query := `
	SELECT id, name, description, panels FROM projects
	ORDER BY name
	`
	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*dashboard.Project
	for rows.Next() {
		var p dashboard.Project
		var panelsJSON string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &panelsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if err := json.Unmarshal([]byte(panelsJSON), &p.Panels); err != nil {
			return nil, fmt.Errorf("failed to parse panels of %s: %w", p.Name, err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// UpdateProject rewrites a project's name, description, and panels.
func (w *Workspace) UpdateProject(ctx context.Context, p *dashboard.Project) error {
	panelsJSON, err := marshalPanels(p.Panels)
	if err != nil {
		return err
	}

	query := `
	UPDATE projects SET name = ?, description = ?, panels = ?
	WHERE id = ?
	`
	result, err := w.db.ExecContext(ctx, query, p.Name, p.Description, panelsJSON, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("project %s: %w", p.ID, ErrProjectNotFound)
	}
	return nil
}

// DeleteProject removes a project, its index rows, and its snapshot
// documents.
func (w *Workspace) DeleteProject(ctx context.Context, id string) error {
	if _, err := w.db.ExecContext(ctx, `DELETE FROM snapshots WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshots of %s: %w", id, err)
	}
	result, err := w.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("project %s: %w", id, ErrProjectNotFound)
	}
	if err := os.RemoveAll(w.projectDir(id)); err != nil {
		return fmt.Errorf("failed to remove project directory: %w", err)
	}
	return nil
}

// scanProject scans one project row. ref names the id or name used for
// the lookup, for the not-found error.
func (w *Workspace) scanProject(row *sql.Row, ref string) (*dashboard.Project, error) {
	var p dashboard.Project
	var panelsJSON string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &panelsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", ref, ErrProjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", ref, err)
	}
	if err := json.Unmarshal([]byte(panelsJSON), &p.Panels); err != nil {
		return nil, fmt.Errorf("failed to parse panels of %s: %w", ref, err)
	}
	return &p, nil
}

// marshalPanels serializes panels for the panels column. Nil panels
// store as an empty list.
func marshalPanels(panels []dashboard.Panel) (string, error) {
	if panels == nil {
		panels = []dashboard.Panel{}
	}
	data, err := json.Marshal(panels)
	if err != nil {
		return "", fmt.Errorf("failed to serialize panels: %w", err)
	}
	return string(data), nil
}
