package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/driftwatch/internal/report"
)

// Capture flattens a complete report into a snapshot. The full unit
// list is serialized, not only the first-level view, so shared units
// survive without duplication. Results are cloned; the snapshot and the
// report do not alias.
func Capture(r *report.Report) (*Snapshot, error) {
	if !r.Complete() {
		return nil, fmt.Errorf("capture report %s: %w", r.ID(), ErrIncompleteReport)
	}

	ids := r.Units()
	units := make([]Unit, 0, len(ids))
	for pos, id := range ids {
		result, err := r.UnitResult(pos)
		if err != nil {
			return nil, fmt.Errorf("capture unit %s: %w", id, err)
		}
		units = append(units, Unit{
			Type:   id.Type,
			Args:   json.RawMessage(id.Args),
			Result: result.Clone(),
		})
	}

	return &Snapshot{
		ID:                r.ID(),
		Kind:              r.Kind().String(),
		Timestamp:         r.Timestamp(),
		Metadata:          r.Metadata(),
		Tags:              r.Tags(),
		Options:           r.Options(),
		Units:             units,
		FirstLevelIndices: r.FirstLevel(),
	}, nil
}
