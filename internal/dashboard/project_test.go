package dashboard

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/nao1215/driftwatch/internal/snapshot"
)

func TestPanelKindValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind PanelKind
		want bool
	}{
		{PanelCounter, true},
		{PanelPlot, true},
		{PanelKind("gauge"), false},
		{PanelKind(""), false},
	}
	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("PanelKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{
		ID:       "s1",
		Tags:     []string{"nightly", "eu"},
		Metadata: map[string]any{"model_id": "fraud-v2", "batch_size": float64(64)},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: Filter{},
			want:   true,
		},
		{
			name:   "metadata value equal",
			filter: Filter{MetadataValues: map[string]any{"model_id": "fraud-v2"}},
			want:   true,
		},
		{
			name:   "metadata key missing",
			filter: Filter{MetadataValues: map[string]any{"dataset_id": "prod"}},
			want:   false,
		},
		{
			name:   "metadata value differs",
			filter: Filter{MetadataValues: map[string]any{"model_id": "fraud-v1"}},
			want:   false,
		},
		{
			name:   "integer filter value matches stored float",
			filter: Filter{MetadataValues: map[string]any{"batch_size": 64}},
			want:   true,
		},
		{
			name:   "tag subset",
			filter: Filter{TagValues: []string{"eu"}},
			want:   true,
		},
		{
			name:   "tag missing",
			filter: Filter{TagValues: []string{"eu", "canary"}},
			want:   false,
		},
		{
			name: "metadata and tags together",
			filter: Filter{
				MetadataValues: map[string]any{"model_id": "fraud-v2"},
				TagValues:      []string{"nightly"},
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.Matches(snap); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func countMatches(f Filter, snaps []*snapshot.Snapshot) int {
	n := 0
	for _, snap := range snaps {
		if f.Matches(snap) {
			n++
		}
	}
	return n
}

func TestFilterMonotonicityProperty(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("adding a tag requirement never widens the match", prop.ForAll(
		func(tagSets [][]string, filterTags []string, extra string) bool {
			snaps := make([]*snapshot.Snapshot, 0, len(tagSets))
			for i, tags := range tagSets {
				snaps = append(snaps, &snapshot.Snapshot{
					ID:   fmt.Sprintf("s%d", i),
					Tags: tags,
				})
			}
			base := Filter{TagValues: filterTags}
			tight := Filter{TagValues: append(append([]string(nil), filterTags...), extra)}
			return countMatches(tight, snaps) <= countMatches(base, snaps)
		},
		gen.SliceOf(gen.SliceOf(gen.OneConstOf("a", "b", "c"))),
		gen.SliceOf(gen.OneConstOf("a", "b", "c")),
		gen.OneConstOf("a", "b", "c", "d"),
	))

	properties.Property("adding a metadata requirement never widens the match", prop.ForAll(
		func(envs []string, wantEnv, wantRegion string) bool {
			snaps := make([]*snapshot.Snapshot, 0, len(envs))
			for i, env := range envs {
				region := "eu"
				if i%2 == 0 {
					region = "us"
				}
				snaps = append(snaps, &snapshot.Snapshot{
					ID:       fmt.Sprintf("s%d", i),
					Metadata: map[string]any{"env": env, "region": region},
				})
			}
			base := Filter{MetadataValues: map[string]any{"env": wantEnv}}
			tight := Filter{MetadataValues: map[string]any{"env": wantEnv, "region": wantRegion}}
			return countMatches(tight, snaps) <= countMatches(base, snaps)
		},
		gen.SliceOf(gen.OneConstOf("prod", "dev")),
		gen.OneConstOf("prod", "dev", "stage"),
		gen.OneConstOf("eu", "us", "apac"),
	))

	properties.TestingRun(t)
}
