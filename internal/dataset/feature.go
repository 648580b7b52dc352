package dataset

import (
	"fmt"
	"unicode/utf8"
)

// Feature describes a derived column a check needs before execution.
// Features are declared during check registration and materialized once per
// run, so two checks requesting the same feature share one computation.
type Feature struct {
	// Name is the derived column name. Must not collide with a frame column.
	Name string
	// Source is the frame column the feature derives from.
	Source string
	// Derive maps the source column's raw values to one float per row.
	Derive func(values []string) []float64
}

// Features holds materialized derived columns, keyed by feature name.
type Features map[string][]float64

// ApplyFeatures materializes the given features against a frame.
// A feature whose name collides with a frame column or an earlier feature
// fails with ErrFeatureExists; a missing source column fails with
// ErrColumnNotFound. Duplicate declarations with the same name and source
// are collapsed into one computation.
func ApplyFeatures(f *Frame, feats []Feature) (Features, error) {
	if len(feats) == 0 {
		return nil, nil
	}

	out := make(Features, len(feats))
	sources := make(map[string]string, len(feats))
	for _, feat := range feats {
		if f.HasColumn(feat.Name) {
			return nil, fmt.Errorf("%w: %q", ErrFeatureExists, feat.Name)
		}
		if src, ok := sources[feat.Name]; ok {
			if src == feat.Source {
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrFeatureExists, feat.Name)
		}

		values, err := f.Column(feat.Source)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", feat.Name, err)
		}

		out[feat.Name] = feat.Derive(values)
		sources[feat.Name] = feat.Source
	}
	return out, nil
}

// TextLength returns a feature deriving the rune length of each value in
// the source column. Missing cells derive to zero.
func TextLength(source string) Feature {
	return Feature{
		Name:   source + "_length",
		Source: source,
		Derive: func(values []string) []float64 {
			out := make([]float64, len(values))
			for i, v := range values {
				if IsMissing(v) {
					continue
				}
				out[i] = float64(utf8.RuneCountInString(v))
			}
			return out
		},
	}
}
