// Package log provides bounded logging for data-heavy workloads, built on
// top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic trimming of oversized attribute values
//   - Summarization of large slices and maps (dataset columns, result maps)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why trimming
//
// Check execution passes datasets and result documents through every layer.
// An innocent logger.Debug("computed", "result", res) can otherwise emit an
// entire result map on one line. TrimHandler keeps every record bounded:
//   - Collections above MaxCollectionItems become a "type (n items)" summary
//   - Scalar values above MaxValueLen are truncated with a byte count
//
// # Usage
//
//	// Create a trimmed logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("snapshot saved",
//	    "id", snap.ID,
//	    "units", unitTypes, // summarized if large
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
