package snapshot

import (
	"fmt"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
	"github.com/nao1215/driftwatch/internal/report"
)

// Restore rebuilds a complete report from a snapshot. Every check is
// reconstructed from its stored (type, args) through the type registry
// and its result installed without recomputation, so the restored
// report answers every view exactly as the captured one did. Any
// failure reports ErrCorruptSnapshot; no partial report is returned.
func Restore(s *Snapshot, types *check.TypeRegistry, reg *render.Registry) (*report.Report, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	kind, err := kindFromString(s.Kind)
	if err != nil {
		return nil, err
	}

	r := report.New(kind, nil,
		report.WithID(s.ID),
		report.WithTimestamp(s.Timestamp),
		report.WithTags(s.Tags...),
		report.WithMetadata(s.Metadata),
		report.WithOptions(s.Options),
		report.WithRenderers(reg),
	)

	for i, unit := range s.Units {
		c, err := types.NewCheck(unit.Type, unit.Args)
		if err != nil {
			return nil, fmt.Errorf("%w: unit %d: %w", ErrCorruptSnapshot, i, err)
		}
		if _, err := r.RestoreUnit(c, unit.Result.Clone()); err != nil {
			return nil, fmt.Errorf("%w: unit %d: %w", ErrCorruptSnapshot, i, err)
		}
	}
	if err := r.RestoreFirstLevel(s.FirstLevelIndices); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if err := r.FinishRestore(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return r, nil
}

// kindFromString maps the stored kind tag back to a report kind. The
// empty string reads as metrics so documents without the field load.
func kindFromString(s string) (report.Kind, error) {
	switch s {
	case "", report.KindMetrics.String():
		return report.KindMetrics, nil
	case report.KindTests.String():
		return report.KindTests, nil
	default:
		return report.KindMetrics, fmt.Errorf("%w: unknown report kind %q", ErrCorruptSnapshot, s)
	}
}
