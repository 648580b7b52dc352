// Package config provides the CLI configuration for driftwatch.
// It defines the flag-bound Config struct with per-command validation,
// and the YAML loaders for check-list and project files.
package config
