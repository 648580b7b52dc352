// Package main provides the entry point for the driftwatch CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/driftwatch/internal/config"
	"github.com/nao1215/driftwatch/internal/log"
)

// NewRootCmd creates the root command for driftwatch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driftwatch",
		Short: "Data quality and drift checks over CSV datasets",
		Long: `Driftwatch executes declarative check lists against CSV datasets and
keeps the results as snapshots in a workspace.

A run computes metrics such as row counts, missing value shares, and
distribution drift against a reference dataset. Saved snapshots
accumulate into a per-project history that series and dashboard read
back as time series and panel documents.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("workspace", "w", "",
		"Workspace directory (default: driftwatch under the XDG data home)")
	cmd.PersistentFlags().Bool("debug", false,
		"Enable debug logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewSeriesCmd())
	cmd.AddCommand(NewDashboardCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fillGlobalConfig copies the persistent flags into the config. A
// command built without the root keeps the zero values.
func fillGlobalConfig(cmd *cobra.Command, cfg *config.Config) {
	workspace, err := cmd.Flags().GetString("workspace")
	if err != nil {
		workspace, err = cmd.Root().PersistentFlags().GetString("workspace")
		if err != nil {
			workspace = ""
		}
	}
	cfg.Workspace = workspace

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		debug, err = cmd.Root().PersistentFlags().GetBool("debug")
		if err != nil {
			debug = false
		}
	}
	cfg.Debug = debug
}

// setupLogger creates a structured logger based on the debug setting.
// Records pass through a trimming handler so dataset and result payloads
// stay bounded in the output.
func setupLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewTrimHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}
