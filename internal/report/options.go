package report

import (
	"log/slog"
	"time"

	"github.com/nao1215/driftwatch/internal/render"
)

// Option configures a Report at construction time.
type Option func(*Report)

// WithID sets the report identifier. The default is a fresh UUID.
func WithID(id string) Option {
	return func(r *Report) {
		r.id = id
	}
}

// WithTimestamp sets the run timestamp. The default is the creation time.
func WithTimestamp(ts time.Time) Option {
	return func(r *Report) {
		r.timestamp = ts
	}
}

// WithTags appends tags to the report.
func WithTags(tags ...string) Option {
	return func(r *Report) {
		r.tags = append(r.tags, tags...)
	}
}

// WithMetadata copies the given entries into the report metadata. Values
// should be JSON-native so they survive snapshot serialization unchanged.
func WithMetadata(metadata map[string]any) Option {
	return func(r *Report) {
		for k, v := range metadata {
			r.metadata[k] = v
		}
	}
}

// WithOptions copies the given entries into the report options, an opaque
// map carried into snapshots for the caller's own use.
func WithOptions(options map[string]any) Option {
	return func(r *Report) {
		for k, v := range options {
			r.options[k] = v
		}
	}
}

// WithRenderers sets the renderer registry backing the report's views.
// Without it the report has no renderers and every view fails with
// render.ErrRendererNotFound.
func WithRenderers(reg *render.Registry) Option {
	return func(r *Report) {
		r.renderers = reg
	}
}

// WithLogger sets the logger used by the report and its suite.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Report) {
		r.logger = logger
	}
}
