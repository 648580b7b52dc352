package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/driftwatch/internal/checks"
	"github.com/nao1215/driftwatch/internal/config"
	"github.com/nao1215/driftwatch/internal/store"
)

//go:embed templates/checks.yaml templates/project.yaml
var scaffoldTemplates embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace and scaffold configuration files",
		Long: `Init creates the snapshot workspace and writes starter
configuration files into the target directory.

The generated files include:
- checks.yaml, a check list with data quality checks enabled and
  drift checks shown as commented examples
- project.yaml, a project definition with example dashboard panels

Examples:
  # Scaffold into the current directory
  driftwatch init

  # Scaffold into a specific directory
  driftwatch init -d configs

  # Force overwrite existing files
  driftwatch init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("dir", "d", ".",
		"Directory the configuration files are written into")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	fillGlobalConfig(cmd, cfg)

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Debug)
	slog.SetDefault(logger)

	// Opening the workspace creates its directory tree and index.
	w, err := store.Open(cfg.Workspace, checks.DefaultTypes(), store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	root := w.Root()
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close workspace: %w", err)
	}

	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	for _, name := range []string{config.DefaultChecksFile, config.DefaultProjectFile} {
		dst := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(dst); err == nil {
				return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", dst)
			}
		}

		content, err := scaffoldTemplates.ReadFile("templates/" + name)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		if err := os.WriteFile(dst, content, 0600); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
		fmt.Printf("Created %s\n", dst)
	}

	fmt.Printf("\nWorkspace ready at %s\n", root)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit checks.yaml to pick the checks for your dataset")
	fmt.Println("  2. Run: driftwatch run --current data.csv --checks checks.yaml")
	fmt.Println("  3. Add --project to start a snapshot history")

	return nil
}
