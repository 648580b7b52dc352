package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/checks"
	"github.com/nao1215/driftwatch/internal/config"
	"github.com/nao1215/driftwatch/internal/dashboard"
	"github.com/nao1215/driftwatch/internal/dataset"
	"github.com/nao1215/driftwatch/internal/report"
	"github.com/nao1215/driftwatch/internal/snapshot"
	"github.com/nao1215/driftwatch/internal/store"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a check list against a dataset",
		Long: `Run reads the current dataset, executes the checks named in the
check-list file, and prints the resulting report.

Checks cover row counts, missing values, text lengths, and distribution
drift against an optional reference dataset. With --project, the report
is also captured as a snapshot and saved into the workspace, where
series and dashboard read it back later.

Examples:
  # Run checks against one CSV file
  driftwatch run --current data.csv --checks checks.yaml

  # Compare against a reference dataset and save under a project
  driftwatch run --current today.csv --reference monday.csv \
    --checks checks.yaml --project "fraud model"

  # Tag the snapshot and attach metadata
  driftwatch run --current data.csv --checks checks.yaml \
    --project "fraud model" --tag nightly --meta model_id=fraud-v2

  # Write the report as markdown
  driftwatch run --current data.csv --checks checks.yaml \
    --output report.md --format markdown`,
		RunE: runRunCmd,
	}

	// Dataset flags
	cmd.Flags().StringP("current", "c", "",
		"Current dataset CSV file (required)")
	cmd.Flags().StringP("reference", "r", "",
		"Reference dataset CSV file drift checks compare against")

	// Check selection
	cmd.Flags().String("checks", "",
		"Check-list YAML file (required)")

	// Snapshot flags
	cmd.Flags().StringP("project", "p", "",
		"Project to save the snapshot under (created when missing)")
	cmd.Flags().StringArray("tag", nil,
		"Tag attached to the snapshot (repeatable)")
	cmd.Flags().StringArray("meta", nil,
		"key=value metadata attached to the snapshot (repeatable)")

	// Report flags
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Report format: json, markdown, or html")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateRun(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Debug)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runChecks(ctx, cfg, logger)
}

// signalContext returns a context cancelled on interrupt or termination.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildRunConfig creates a Config from the run command's flags.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	fillGlobalConfig(cmd, cfg)

	var err error
	if cfg.CurrentPath, err = cmd.Flags().GetString("current"); err != nil {
		return nil, err
	}
	if cfg.ReferencePath, err = cmd.Flags().GetString("reference"); err != nil {
		return nil, err
	}
	if cfg.ChecksPath, err = cmd.Flags().GetString("checks"); err != nil {
		return nil, err
	}
	if cfg.Project, err = cmd.Flags().GetString("project"); err != nil {
		return nil, err
	}
	if cfg.Tags, err = cmd.Flags().GetStringArray("tag"); err != nil {
		return nil, err
	}
	if cfg.Metadata, err = cmd.Flags().GetStringArray("meta"); err != nil {
		return nil, err
	}
	if cfg.Output, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Format, err = cmd.Flags().GetString("format"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runChecks loads the inputs, executes the report, saves the snapshot
// when a project is named, and writes the rendered report.
func runChecks(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	checkList, err := config.LoadCheckList(cfg.ChecksPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	kind, err := checkList.ReportKind()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	types := checks.DefaultTypes()
	renderers := checks.DefaultRegistry()

	items, err := checkList.ResolveItems(types)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	current, err := dataset.ReadCSVFile(cfg.CurrentPath)
	if err != nil {
		return fmt.Errorf("failed to read current dataset: %w", err)
	}
	var reference *dataset.Frame
	if cfg.ReferencePath != "" {
		if reference, err = dataset.ReadCSVFile(cfg.ReferencePath); err != nil {
			return fmt.Errorf("failed to read reference dataset: %w", err)
		}
	}

	logger.Info("starting run",
		"checks", cfg.ChecksPath,
		"current", cfg.CurrentPath,
		"reference", cfg.ReferencePath,
		"items", len(items),
		"kind", kind.String(),
	)

	rep := report.New(kind, items,
		report.WithRenderers(renderers),
		report.WithLogger(logger),
		report.WithTags(cfg.Tags...),
	)
	meta, err := cfg.MetadataPairs()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	for key, value := range meta {
		rep.SetMetadataValue(key, value)
	}
	rep.SetDatasetID(filepath.Base(cfg.CurrentPath))
	if cfg.ReferencePath != "" {
		rep.SetReferenceID(filepath.Base(cfg.ReferencePath))
	}

	fmt.Printf("Running %d check list items against %s...\n", len(items), cfg.CurrentPath)
	startTime := time.Now()

	if err := rep.Run(ctx, reference, current, nil); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Printf("Run completed in %s (%d checks)\n\n",
		time.Since(startTime).Round(time.Millisecond), len(rep.Units()))

	if cfg.Project != "" {
		if err := saveReportSnapshot(ctx, cfg, types, rep, logger); err != nil {
			return err
		}
	}

	return outputReport(cfg, rep)
}

// saveReportSnapshot captures the report and files it under the named
// project, creating the project on first use.
func saveReportSnapshot(ctx context.Context, cfg *config.Config, types *check.TypeRegistry, rep *report.Report, logger *slog.Logger) error {
	w, err := store.Open(cfg.Workspace, types, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	project, err := w.ProjectByName(ctx, cfg.Project)
	if errors.Is(err, store.ErrProjectNotFound) {
		project = &dashboard.Project{Name: cfg.Project}
		if err := w.CreateProject(ctx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		logger.Info("created project on first use", "name", project.Name, "id", project.ID)
	} else if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}

	snap, err := snapshot.Capture(rep)
	if err != nil {
		return fmt.Errorf("failed to capture snapshot: %w", err)
	}
	if err := w.SaveSnapshot(ctx, project.ID, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("Saved snapshot %s to project %q\n\n", snap.ID, project.Name)
	return nil
}

// outputReport writes the report in the requested format to the output
// file, or to stdout when no file is named.
func outputReport(cfg *config.Config, rep *report.Report) error {
	output := os.Stdout
	if cfg.Output != "" {
		dir := filepath.Dir(cfg.Output)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch cfg.Format {
	case config.FormatMarkdown:
		if _, err := rep.AsMarkdown(output); err != nil {
			return fmt.Errorf("failed to render markdown report: %w", err)
		}
		return nil
	case config.FormatHTML:
		if _, err := rep.AsHTML(output); err != nil {
			return fmt.Errorf("failed to render html report: %w", err)
		}
		return nil
	default:
		doc, err := rep.AsDict()
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	}
}
