package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/driftwatch/internal/check"
)

// Unit is one serialized check: its type tag, the canonical JSON of its
// constructor arguments, and its computed result.
type Unit struct {
	// Type is the stable check type tag, e.g. "column_drift".
	Type string `json:"type"`
	// Args is the canonical argument document. "{}" for argument-free
	// checks.
	Args json.RawMessage `json:"args"`
	// Result is the stored computation outcome.
	Result check.Result `json:"result"`
}

// Identity returns the unit's structural identity as stored. Units
// written by Capture carry canonical args, so the identity matches the
// one the original check computed.
func (u Unit) Identity() check.Identity {
	return check.Identity{Type: u.Type, Args: string(u.Args)}
}

// Snapshot is the portable form of one completed report. The unit list
// holds every computed check in execution order; FirstLevelIndices
// references the user-visible subset by position, so shared units are
// stored once no matter how many first-level entries point at them.
type Snapshot struct {
	// ID is the report identifier, a UUID string.
	ID string `json:"id"`
	// Kind is the report flavor, "metrics" or "tests". An absent kind
	// reads as metrics.
	Kind string `json:"kind"`
	// Timestamp is the report's run time.
	Timestamp time.Time `json:"timestamp"`
	// Metadata holds the report metadata, JSON-native values only.
	Metadata map[string]any `json:"metadata"`
	// Tags holds the report tags.
	Tags []string `json:"tags"`
	// Options holds the opaque report options map.
	Options map[string]any `json:"options"`
	// Units is the full computed unit list in execution order.
	Units []Unit `json:"units"`
	// FirstLevelIndices lists the user-visible units by position into
	// Units, in emission order. Duplicates are preserved.
	FirstLevelIndices []int `json:"first_level_indices"`
}

// FirstLevelUnits dereferences FirstLevelIndices into the unit list.
// The snapshot must have passed validation; indices are trusted here.
func (s *Snapshot) FirstLevelUnits() []Unit {
	out := make([]Unit, 0, len(s.FirstLevelIndices))
	for _, idx := range s.FirstLevelIndices {
		out = append(out, s.Units[idx])
	}
	return out
}

// validate checks the structural invariants JSON decoding cannot express.
func (s *Snapshot) validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrCorruptSnapshot)
	}
	if _, err := kindFromString(s.Kind); err != nil {
		return err
	}
	for i, u := range s.Units {
		if u.Type == "" {
			return fmt.Errorf("%w: unit %d has an empty type tag", ErrCorruptSnapshot, i)
		}
	}
	for _, idx := range s.FirstLevelIndices {
		if idx < 0 || idx >= len(s.Units) {
			return fmt.Errorf("%w: first-level index %d outside %d units", ErrCorruptSnapshot, idx, len(s.Units))
		}
	}
	return nil
}

// Encode writes the snapshot as one indented JSON document.
func (s *Snapshot) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", s.ID, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.ID, err)
	}
	return nil
}

// Decode reads one snapshot document and validates its structure.
// Malformed JSON and invalid structure both report ErrCorruptSnapshot.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
