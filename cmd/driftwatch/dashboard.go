package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/driftwatch/internal/checks"
	"github.com/nao1215/driftwatch/internal/config"
	"github.com/nao1215/driftwatch/internal/dashboard"
	"github.com/nao1215/driftwatch/internal/store"
)

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Aggregate a project's history into its dashboard panels",
		Long: `Dashboard evaluates the project's panel definitions over its
snapshot history and prints the aggregated panel data.

Each panel filters the history by tags and metadata, pulls one field
out of every matching check result, and folds the points with the
panel's aggregation. The project's panels come from the project file
registered at project creation.

Examples:
  # The full history
  driftwatch dashboard --project "fraud model"

  # A time window, written to a file
  driftwatch dashboard --project "fraud model" \
    --from 2026-03-01 --to 2026-03-31 --output dashboard.json`,
		RunE: runDashboardCmd,
	}

	cmd.Flags().StringP("project", "p", "",
		"Project name (required)")
	cmd.Flags().String("from", "",
		"History window start, RFC 3339 or YYYY-MM-DD (inclusive)")
	cmd.Flags().String("to", "",
		"History window end, RFC 3339 or YYYY-MM-DD (inclusive)")
	cmd.Flags().StringP("output", "o", "",
		"Write the panel data to this file instead of stdout")

	return cmd
}

// runDashboardCmd executes the dashboard command.
func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildDashboardConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDashboard(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Debug)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runDashboard(ctx, cfg, logger)
}

// buildDashboardConfig creates a Config from the dashboard command's flags.
func buildDashboardConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	fillGlobalConfig(cmd, cfg)

	var err error
	if cfg.Project, err = cmd.Flags().GetString("project"); err != nil {
		return nil, err
	}
	if cfg.From, err = cmd.Flags().GetString("from"); err != nil {
		return nil, err
	}
	if cfg.To, err = cmd.Flags().GetString("to"); err != nil {
		return nil, err
	}
	if cfg.Output, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDashboard loads the project's history and prints the aggregated
// panel data.
func runDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	w, err := store.Open(cfg.Workspace, checks.DefaultTypes(), store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	project, err := w.ProjectByName(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}

	from, to, err := cfg.Window()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	snaps, err := w.LoadSeries(ctx, project.ID, from, to)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}

	data, err := dashboard.BuildDashboard(project, snaps, dashboard.NewAggregations(), logger)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}
	return writeJSON(cfg.Output, data)
}
