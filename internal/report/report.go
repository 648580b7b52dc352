package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/dataset"
	"github.com/nao1215/driftwatch/internal/render"
	"github.com/nao1215/driftwatch/internal/suite"
)

// Well-known metadata keys written by the setters.
const (
	// MetaBatchSize records how many rows the current batch carried.
	MetaBatchSize = "batch_size"
	// MetaModelID names the model under observation.
	MetaModelID = "model_id"
	// MetaReferenceID names the reference dataset.
	MetaReferenceID = "reference_id"
	// MetaDatasetID names the current dataset.
	MetaDatasetID = "dataset_id"
)

// Report executes a declarative check list and exposes the results.
// Create one with New, run it once with Run, then read it through the
// As* views. A report restored from a snapshot skips Run; its results
// arrive through RestoreUnit.
type Report struct {
	kind       Kind
	id         string
	timestamp  time.Time
	metadata   map[string]any
	tags       []string
	options    map[string]any
	items      []check.Item
	suite      *suite.Suite
	firstLevel []int
	renderers  *render.Registry
	logger     *slog.Logger
}

// New creates a report over the given item list. The list is expanded
// when Run is called, so the same items can be evaluated against
// different datasets by separate Report values.
func New(kind Kind, items []check.Item, opts ...Option) *Report {
	r := &Report{
		kind:      kind,
		id:        uuid.NewString(),
		timestamp: time.Now().UTC(),
		metadata:  make(map[string]any),
		options:   make(map[string]any),
		items:     append([]check.Item(nil), items...),
		renderers: render.NewRegistry(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.suite = suite.New(suite.WithLogger(r.logger))
	r.suite.Reset()
	return r
}

// Run expands the item list against the current dataset and executes
// every produced unit once. The reference frame and mapping may be nil.
// A report runs at most once; the error from a second call reports the
// suite state.
func (r *Report) Run(ctx context.Context, reference, current *dataset.Frame, mapping *dataset.ColumnMapping) error {
	if current == nil {
		return check.ErrNoCurrentDataset
	}

	columns, definition, err := dataset.Describe(current, mapping)
	if err != nil {
		return fmt.Errorf("describe current dataset: %w", err)
	}
	in := &check.Input{
		Current:    current,
		Reference:  reference,
		Columns:    columns,
		Definition: definition,
	}

	units, prov, err := suite.Expand(r.items, in)
	if err != nil {
		return err
	}
	r.recordProvenance(prov)
	r.logger.Debug("expanded check items",
		slog.String("kind", r.kind.String()),
		slog.Int("items", len(r.items)),
		slog.Int("units", len(units)))

	for _, unit := range units {
		pos, err := r.suite.Register(unit)
		if err != nil {
			return err
		}
		r.firstLevel = append(r.firstLevel, pos)
	}

	// Second input-preparation pass: registered units may request derived
	// feature columns, which must exist before any unit computes.
	if planned := r.suite.PlannedFeatures(definition); len(planned) > 0 {
		features, err := dataset.ApplyFeatures(current, planned)
		if err != nil {
			return fmt.Errorf("materialize features: %w", err)
		}
		in.Features = features
	}

	if err := r.suite.Verify(in); err != nil {
		return err
	}
	r.logger.Info("running report",
		slog.String("kind", r.kind.String()),
		slog.String("id", r.id),
		slog.Int("units", r.suite.Len()))
	return r.suite.Run(ctx, in)
}

// recordProvenance stores preset and generator names under the kind's
// metadata keys. Values are JSON-native lists so they read back
// identically after a snapshot round-trip. Empty lists are not recorded.
func (r *Report) recordProvenance(prov *suite.Provenance) {
	if len(prov.Presets) > 0 {
		r.metadata[r.kind.prefix()+"_presets"] = stringsToAny(prov.Presets)
	}
	if len(prov.Generators) > 0 {
		r.metadata[r.kind.prefix()+"_generators"] = stringsToAny(prov.Generators)
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// SetBatchSize records the batch size. Stored as a float so the value
// reads back identically after a snapshot round-trip.
func (r *Report) SetBatchSize(n int) {
	r.metadata[MetaBatchSize] = float64(n)
}

// SetModelID records the observed model's identifier.
func (r *Report) SetModelID(id string) {
	r.metadata[MetaModelID] = id
}

// SetReferenceID records the reference dataset's identifier.
func (r *Report) SetReferenceID(id string) {
	r.metadata[MetaReferenceID] = id
}

// SetDatasetID records the current dataset's identifier.
func (r *Report) SetDatasetID(id string) {
	r.metadata[MetaDatasetID] = id
}

// SetMetadataValue records one metadata entry.
func (r *Report) SetMetadataValue(key string, value any) {
	r.metadata[key] = value
}

// AddTags appends tags to the report.
func (r *Report) AddTags(tags ...string) {
	r.tags = append(r.tags, tags...)
}

// Kind returns the report flavor.
func (r *Report) Kind() Kind { return r.kind }

// Complete reports whether every registered unit has a result, either
// from Run or from a finished restore. Views and capture require a
// complete report.
func (r *Report) Complete() bool {
	return r.suite.State() == suite.StateComplete
}

// ID returns the report identifier.
func (r *Report) ID() string { return r.id }

// Timestamp returns the run timestamp.
func (r *Report) Timestamp() time.Time { return r.timestamp }

// Tags returns a copy of the report's tags.
func (r *Report) Tags() []string {
	return append([]string(nil), r.tags...)
}

// Metadata returns a shallow copy of the report's metadata.
func (r *Report) Metadata() map[string]any {
	out := make(map[string]any, len(r.metadata))
	for k, v := range r.metadata {
		out[k] = v
	}
	return out
}

// Options returns a shallow copy of the report's options.
func (r *Report) Options() map[string]any {
	out := make(map[string]any, len(r.options))
	for k, v := range r.options {
		out[k] = v
	}
	return out
}

// Units returns the identities of every registered unit, in execution
// order. This is the full unit list, not the first-level view.
func (r *Report) Units() []check.Identity {
	return r.suite.Identities()
}

// UnitResult returns the computed result of the unit at pos.
func (r *Report) UnitResult(pos int) (check.Result, error) {
	return r.suite.Result(pos)
}

// FirstLevel returns a copy of the first-level indices, in emission
// order. Duplicates are preserved.
func (r *Report) FirstLevel() []int {
	return append([]int(nil), r.firstLevel...)
}

// RestoreUnit registers a reconstructed check together with its stored
// result. Used when loading a snapshot; nothing is recomputed. Valid only
// before FinishRestore.
func (r *Report) RestoreUnit(c check.Check, result check.Result) (int, error) {
	pos, err := r.suite.Register(c)
	if err != nil {
		return 0, err
	}
	id, err := r.suite.Identity(pos)
	if err != nil {
		return 0, err
	}
	if err := r.suite.RestoreResult(id, result); err != nil {
		return 0, err
	}
	return pos, nil
}

// RestoreFirstLevel replaces the first-level view with stored indices.
// Every index must refer to a unit registered through RestoreUnit.
func (r *Report) RestoreFirstLevel(indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= r.suite.Len() {
			return fmt.Errorf("%w: %d of %d units", ErrIndexOutOfRange, idx, r.suite.Len())
		}
	}
	r.firstLevel = append([]int(nil), indices...)
	return nil
}

// FinishRestore seals a restored report as complete without running it.
// Fails if any registered unit is missing its result.
func (r *Report) FinishRestore() error {
	return r.suite.MarkComplete()
}
