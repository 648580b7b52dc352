package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

const (
	// MaxValueLen is the maximum rendered length of a single attribute
	// value. Longer values are truncated with a byte-count marker.
	MaxValueLen = 256

	// MaxCollectionItems is the maximum number of elements a slice or map
	// attribute may carry before it is summarized instead of printed.
	MaxCollectionItems = 8
)

// TrimHandler wraps an slog.Handler to keep log records bounded. Check runs
// routinely pass dataset columns, sample rows, and whole result maps around;
// logging one of them verbatim can emit megabytes on a single line.
// TrimHandler intercepts records, summarizes oversized collections, and
// truncates oversized scalar values before passing them on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components only need a *slog.Logger, not a package-specific type
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler
}

// NewTrimHandler creates a new TrimHandler wrapping the given handler.
// All log attributes are trimmed before being passed to the underlying
// handler. If handler is nil, the returned TrimHandler wraps
// slog.Default().Handler().
func NewTrimHandler(handler slog.Handler) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TrimHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name)}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindAny {
		if summary, ok := summarizeCollection(a.Value.Any()); ok {
			return slog.String(a.Key, summary)
		}
	}

	if rendered := a.Value.String(); len(rendered) > MaxValueLen {
		return slog.String(a.Key, truncate(rendered))
	}

	return a
}

// summarizeCollection reports a compact summary for slice and map values
// that exceed MaxCollectionItems. Small collections pass through untouched.
func summarizeCollection(v any) (string, bool) {
	var n int
	switch vv := v.(type) {
	case []any:
		n = len(vv)
	case []string:
		n = len(vv)
	case []float64:
		n = len(vv)
	case []int:
		n = len(vv)
	case map[string]any:
		n = len(vv)
	case map[string]string:
		n = len(vv)
	default:
		return "", false
	}
	if n <= MaxCollectionItems {
		return "", false
	}
	return fmt.Sprintf("%T (%d items)", v, n), true
}

// truncate cuts a rendered value down to MaxValueLen bytes, backing up to a
// rune boundary, and appends the number of bytes dropped.
func truncate(s string) string {
	cut := MaxValueLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...(+%d bytes)", s[:cut], len(s)-cut)
}

// NewLogger creates a new slog.Logger with trimmed text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)

	return slog.New(NewTrimHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with trimmed JSON output.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)

	return slog.New(NewTrimHandler(jsonHandler))
}
