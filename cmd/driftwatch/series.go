package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/checks"
	"github.com/nao1215/driftwatch/internal/config"
	"github.com/nao1215/driftwatch/internal/dashboard"
	"github.com/nao1215/driftwatch/internal/store"
)

// NewSeriesCmd creates the series command.
func NewSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print per-check result series from a project's history",
		Long: `Series reads a project's snapshots back from the workspace and
prints each check's results over time.

Without --check, every first-level check that ever appeared in the
history gets its own series. With --check, only snapshots carrying
that exact check contribute. --field narrows each point to one value
inside the result, and --agg folds the narrowed series.

Examples:
  # Every check's results over the full history
  driftwatch series --project "fraud model"

  # One check inside a time window
  driftwatch series --project "fraud model" \
    --check 'column_quantile:{"column":"amount","quantile":0.95}' \
    --from 2026-03-01 --to 2026-03-31

  # A single value per point, folded to the latest observation
  driftwatch series --project "fraud model" --check row_count \
    --field current.row_count --agg last`,
		RunE: runSeriesCmd,
	}

	cmd.Flags().StringP("project", "p", "",
		"Project name (required)")
	cmd.Flags().String("from", "",
		"Series window start, RFC 3339 or YYYY-MM-DD (inclusive)")
	cmd.Flags().String("to", "",
		"Series window end, RFC 3339 or YYYY-MM-DD (inclusive)")
	cmd.Flags().String("check", "",
		"Only this check: TYPE or TYPE:argsJSON")
	cmd.Flags().String("field", "",
		"Dotted path into each result, e.g. current.row_count")
	cmd.Flags().String("agg", config.DefaultAggregation,
		"Aggregation over field values: none, last, or sum")
	cmd.Flags().StringP("output", "o", "",
		"Write the series to this file instead of stdout")

	return cmd
}

// runSeriesCmd executes the series command.
func runSeriesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildSeriesConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateSeries(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Debug)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runSeries(ctx, cfg, logger)
}

// buildSeriesConfig creates a Config from the series command's flags.
func buildSeriesConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if cfg.CheckSpec, err = cmd.Flags().GetString("check"); err != nil {
		return nil, err
	}
	if cfg.FieldPath, err = cmd.Flags().GetString("field"); err != nil {
		return nil, err
	}
	if cfg.Aggregation, err = cmd.Flags().GetString("agg"); err != nil {
		return nil, err
	}
	if cfg.Output, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// seriesDoc is the series command's output document.
type seriesDoc struct {
	Project string      `json:"project"`
	Series  []seriesOut `json:"series"`
}

// seriesOut is one check's labeled point list.
type seriesOut struct {
	Check  seriesCheckOut   `json:"check"`
	Points []seriesPointOut `json:"points"`
}

// seriesCheckOut labels a series with the check it tracks.
type seriesCheckOut struct {
	Type string         `json:"type"`
	Args map[string]any `json:"args,omitempty"`
}

// seriesPointOut is one observation. Value is set when --field narrows
// the result, Result otherwise.
type seriesPointOut struct {
	Timestamp time.Time    `json:"timestamp"`
	Value     any          `json:"value,omitempty"`
	Result    check.Result `json:"result,omitempty"`
}

// runSeries loads the project's history and prints the series document.
func runSeries(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	types := checks.DefaultTypes()

	w, err := store.Open(cfg.Workspace, types, store.WithLogger(logger))
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
	typeTag, rawArgs, err := cfg.ParseCheckSpec()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	var entries []seriesEntry
	if typeTag != "" {
		entries, err = loadFilteredSeries(ctx, w, types, project.ID, from, to, typeTag, rawArgs)
	} else {
		entries, err = loadFullSeries(ctx, w, project.ID, from, to)
	}
	if err != nil {
		return err
	}

	doc := seriesDoc{Project: project.Name, Series: make([]seriesOut, 0, len(entries))}
	for _, entry := range entries {
		out, err := buildSeriesOut(entry, cfg)
		if err != nil {
			return err
		}
		doc.Series = append(doc.Series, out)
	}

	logger.Info("assembled series",
		"project", project.Name,
		"checks", len(doc.Series),
	)
	return writeJSON(cfg.Output, doc)
}

// seriesEntry pairs a check identity with its observed points.
type seriesEntry struct {
	ident  check.Identity
	points store.CheckSeries
}

// loadFilteredSeries builds the series of one named check. The check is
// constructed through the registry first so a bad type or argument
// document fails before any snapshot is read.
func loadFilteredSeries(ctx context.Context, w *store.Workspace, types *check.TypeRegistry, projectID string, from, to *time.Time, typeTag string, rawArgs json.RawMessage) ([]seriesEntry, error) {
	c, err := types.NewCheck(typeTag, rawArgs)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	ident, err := check.IdentityOf(c)
	if err != nil {
		return nil, fmt.Errorf("failed to compute check identity: %w", err)
	}

	series, err := w.LoadCheckSeries(ctx, projectID, from, to, []check.Identity{ident})
	if err != nil {
		return nil, fmt.Errorf("failed to load check series: %w", err)
	}
	return []seriesEntry{{ident: ident, points: series[ident.Fingerprint()]}}, nil
}

// loadFullSeries builds one series per distinct first-level check seen
// across the history. A check appearing twice at first level in one
// snapshot contributes a single point there.
func loadFullSeries(ctx context.Context, w *store.Workspace, projectID string, from, to *time.Time) ([]seriesEntry, error) {
	snaps, err := w.LoadSeries(ctx, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	idents := make(map[string]check.Identity)
	points := make(map[string]store.CheckSeries)
	for _, snap := range snaps {
		seen := make(map[string]bool)
		for _, unit := range snap.FirstLevelUnits() {
			ident := unit.Identity()
			fp := ident.Fingerprint()
			if seen[fp] {
				continue
			}
			seen[fp] = true
			idents[fp] = ident
			points[fp] = append(points[fp], store.SeriesPoint{
				Timestamp: snap.Timestamp,
				Result:    unit.Result,
			})
		}
	}

	entries := make([]seriesEntry, 0, len(idents))
	for fp, ident := range idents {
		entries = append(entries, seriesEntry{ident: ident, points: points[fp]})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ident.Less(entries[j].ident)
	})
	return entries, nil
}

// buildSeriesOut labels one entry and applies the field and aggregation
// narrowing from the configuration.
func buildSeriesOut(entry seriesEntry, cfg *config.Config) (seriesOut, error) {
	args, err := entry.ident.ArgsMap()
	if err != nil {
		return seriesOut{}, fmt.Errorf("check %s: %w", entry.ident, err)
	}
	out := seriesOut{
		Check:  seriesCheckOut{Type: entry.ident.Type, Args: args},
		Points: make([]seriesPointOut, 0, len(entry.points)),
	}

	if cfg.FieldPath == "" {
		for _, p := range entry.points {
			out.Points = append(out.Points, seriesPointOut{Timestamp: p.Timestamp, Result: p.Result})
		}
		return out, nil
	}

	values := make([]dashboard.Point, 0, len(entry.points))
	for _, p := range entry.points {
		value, err := dashboard.ExtractField(p.Result, cfg.FieldPath)
		if err != nil {
			return seriesOut{}, fmt.Errorf("check %s: %w", entry.ident, err)
		}
		values = append(values, dashboard.Point{Timestamp: p.Timestamp, Value: value})
	}

	agg, err := dashboard.NewAggregations().Lookup(cfg.Aggregation)
	if err != nil {
		return seriesOut{}, fmt.Errorf("configuration error: %w", err)
	}
	for _, p := range agg(values) {
		out.Points = append(out.Points, seriesPointOut{Timestamp: p.Timestamp, Value: p.Value})
	}
	return out, nil
}

// writeJSON writes the document as indented JSON to the named file, or
// to stdout when path is empty.
func writeJSON(path string, doc any) error {
	output := os.Stdout
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
