package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/driftwatch/internal/dashboard"
)

// LoadProject reads and validates a project YAML file: the project name,
// description, and panel definitions. The decoded project carries no ID;
// the store assigns one on creation.
func LoadProject(path string) (*dashboard.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p dashboard.Project
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProject, path, err)
	}
	if err := validateProject(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// validateProject rejects panels the dashboard builder could never
// evaluate. Aggregation names are not checked here; the aggregation
// registry is an application value the loader does not see.
func validateProject(p *dashboard.Project) error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProject)
	}
	for i, panel := range p.Panels {
		if panel.Title == "" {
			return fmt.Errorf("%w: panel %d: missing title", ErrInvalidProject, i)
		}
		if !panel.Kind.Valid() {
			return fmt.Errorf("%w: panel %q: unknown kind %q", ErrInvalidProject, panel.Title, panel.Kind)
		}
		if len(panel.Values) == 0 {
			return fmt.Errorf("%w: panel %q: no values", ErrInvalidProject, panel.Title)
		}
		for j, v := range panel.Values {
			if v.CheckType == "" {
				return fmt.Errorf("%w: panel %q: value %d: missing check type", ErrInvalidProject, panel.Title, j)
			}
		}
	}
	return nil
}
