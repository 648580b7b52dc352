package dashboard

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/snapshot"
)

// seriesSnap builds an in-memory snapshot carrying a row_count unit and
// a per-column missing_values unit.
func seriesSnap(id string, ts time.Time, share float64) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        id,
		Kind:      "metrics",
		Timestamp: ts,
		Tags:      []string{"nightly"},
		Metadata:  map[string]any{"env": "prod"},
		Units: []snapshot.Unit{
			{
				Type:   "row_count",
				Args:   json.RawMessage(`{}`),
				Result: check.Result{"current": map[string]any{"row_count": float64(100)}},
			},
			{
				Type:   "missing_values",
				Args:   json.RawMessage(`{"column":"age"}`),
				Result: check.Result{"current": map[string]any{"share_of_missing_values": share}},
			},
		},
		FirstLevelIndices: []int{0, 1},
	}
}

var (
	t1 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	t3 = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func TestAggregationsLookup(t *testing.T) {
	t.Parallel()

	aggs := NewAggregations()
	for _, name := range []string{AggNone, AggLast, AggSum} {
		if _, err := aggs.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}

	fn, err := aggs.Lookup("")
	if err != nil {
		t.Fatalf("Lookup(\"\") error = %v", err)
	}
	points := []Point{{Timestamp: t1, Value: 1.0}, {Timestamp: t2, Value: 2.0}}
	if got := fn(points); !reflect.DeepEqual(got, points) {
		t.Errorf("empty name did not resolve to the raw series: %v", got)
	}

	if _, err := aggs.Lookup("median"); !errors.Is(err, ErrUnknownAggregation) {
		t.Errorf("Lookup(median) error = %v, want ErrUnknownAggregation", err)
	}

	aggs.Register("first", func(points []Point) []Point {
		if len(points) == 0 {
			return points
		}
		return points[:1]
	})
	fn, err = aggs.Lookup("first")
	if err != nil {
		t.Fatalf("Lookup(first) error = %v", err)
	}
	if got := fn(points); len(got) != 1 || got[0].Timestamp != t1 {
		t.Errorf("registered aggregation not applied: %v", got)
	}
}

func TestBuiltinAggregations(t *testing.T) {
	t.Parallel()

	points := []Point{
		{Timestamp: t1, Value: 1.5},
		{Timestamp: t2, Value: 2.0},
		{Timestamp: t3, Value: 0.5},
	}

	t.Run("last keeps the newest point", func(t *testing.T) {
		t.Parallel()

		got := aggLast(points)
		if len(got) != 1 || !got[0].Timestamp.Equal(t3) || got[0].Value != 0.5 {
			t.Errorf("aggLast() = %v", got)
		}
	})

	t.Run("sum accumulates at the newest timestamp", func(t *testing.T) {
		t.Parallel()

		got := aggSum(points)
		if len(got) != 1 || !got[0].Timestamp.Equal(t3) || got[0].Value != 4.0 {
			t.Errorf("aggSum() = %v", got)
		}
	})

	t.Run("sum ignores non-numeric values", func(t *testing.T) {
		t.Parallel()

		mixed := []Point{
			{Timestamp: t1, Value: 1.0},
			{Timestamp: t2, Value: "n/a"},
		}
		got := aggSum(mixed)
		if len(got) != 1 || got[0].Value != 1.0 {
			t.Errorf("aggSum() = %v", got)
		}
	})

	t.Run("empty series stays empty", func(t *testing.T) {
		t.Parallel()

		if got := aggLast(nil); len(got) != 0 {
			t.Errorf("aggLast(nil) = %v", got)
		}
		if got := aggSum(nil); len(got) != 0 {
			t.Errorf("aggSum(nil) = %v", got)
		}
	})
}

func TestPanelValueMatchUnit(t *testing.T) {
	t.Parallel()

	unit := snapshot.Unit{
		Type: "column_drift",
		Args: json.RawMessage(`{"column":"age","options":{"threshold":0.1}}`),
	}

	tests := []struct {
		name  string
		value PanelValue
		want  bool
	}{
		{
			name:  "type mismatch",
			value: PanelValue{CheckType: "row_count"},
			want:  false,
		},
		{
			name:  "empty args template matches",
			value: PanelValue{CheckType: "column_drift"},
			want:  true,
		},
		{
			name:  "top-level arg equal",
			value: PanelValue{CheckType: "column_drift", CheckArgs: map[string]any{"column": "age"}},
			want:  true,
		},
		{
			name:  "top-level arg differs",
			value: PanelValue{CheckType: "column_drift", CheckArgs: map[string]any{"column": "height"}},
			want:  false,
		},
		{
			name:  "dotted key with yaml integer",
			value: PanelValue{CheckType: "column_drift", CheckArgs: map[string]any{"options.threshold": 0.1}},
			want:  true,
		},
		{
			name:  "dotted key missing",
			value: PanelValue{CheckType: "column_drift", CheckArgs: map[string]any{"options.share": 0.5}},
			want:  false,
		},
		{
			name: "subset of several keys",
			value: PanelValue{CheckType: "column_drift", CheckArgs: map[string]any{
				"column":            "age",
				"options.threshold": 0.1,
			}},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.value.matchUnit(unit); got != tt.want {
				t.Errorf("matchUnit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatePanel(t *testing.T) {
	t.Parallel()

	value := PanelValue{
		CheckType: "missing_values",
		CheckArgs: map[string]any{"column": "age"},
		FieldPath: "current.share_of_missing_values",
		Legend:    "age missing share",
	}
	snaps := []*snapshot.Snapshot{
		seriesSnap("s2", t2, 0.2),
		seriesSnap("s1", t1, 0.1),
		seriesSnap("s3", t3, 0.3),
	}

	got, err := AggregatePanel(snaps, Filter{}, value, AggNone, NewAggregations())
	if err != nil {
		t.Fatalf("AggregatePanel() error = %v", err)
	}
	if got.Legend != "age missing share" {
		t.Errorf("Legend = %q", got.Legend)
	}
	want := []Point{
		{Timestamp: t1, Value: 0.1},
		{Timestamp: t2, Value: 0.2},
		{Timestamp: t3, Value: 0.3},
	}
	if !reflect.DeepEqual(got.Points, want) {
		t.Errorf("Points = %v, want %v", got.Points, want)
	}
}

func TestAggregatePanelFilterAndAggregation(t *testing.T) {
	t.Parallel()

	value := PanelValue{
		CheckType: "missing_values",
		FieldPath: "current.share_of_missing_values",
	}
	canary := seriesSnap("s2", t2, 0.9)
	canary.Tags = []string{"canary"}
	snaps := []*snapshot.Snapshot{
		seriesSnap("s1", t1, 0.1),
		canary,
		seriesSnap("s3", t3, 0.3),
	}

	got, err := AggregatePanel(snaps, Filter{TagValues: []string{"nightly"}}, value, AggLast, NewAggregations())
	if err != nil {
		t.Fatalf("AggregatePanel() error = %v", err)
	}
	if got.Legend != value.FieldPath {
		t.Errorf("Legend = %q, want the field path fallback", got.Legend)
	}
	if len(got.Points) != 1 {
		t.Fatalf("len(Points) = %d, want 1 after last", len(got.Points))
	}
	if !got.Points[0].Timestamp.Equal(t3) || got.Points[0].Value != 0.3 {
		t.Errorf("Points[0] = %v, want value 0.3 at %v", got.Points[0], t3)
	}
}

func TestAggregatePanelSkipsSnapshotsWithoutTheCheck(t *testing.T) {
	t.Parallel()

	bare := &snapshot.Snapshot{
		ID:        "bare",
		Timestamp: t2,
		Units: []snapshot.Unit{
			{Type: "row_count", Args: json.RawMessage(`{}`), Result: check.Result{"current": map[string]any{"row_count": float64(7)}}},
		},
		FirstLevelIndices: []int{0},
	}
	snaps := []*snapshot.Snapshot{seriesSnap("s1", t1, 0.1), bare}
	value := PanelValue{
		CheckType: "missing_values",
		FieldPath: "current.share_of_missing_values",
	}

	got, err := AggregatePanel(snaps, Filter{}, value, AggNone, NewAggregations())
	if err != nil {
		t.Fatalf("AggregatePanel() error = %v", err)
	}
	if len(got.Points) != 1 || got.Points[0].Value != 0.1 {
		t.Errorf("Points = %v, want the single s1 observation", got.Points)
	}
}

func TestAggregatePanelErrors(t *testing.T) {
	t.Parallel()

	snaps := []*snapshot.Snapshot{seriesSnap("s1", t1, 0.1)}

	t.Run("unknown aggregation", func(t *testing.T) {
		t.Parallel()

		value := PanelValue{CheckType: "missing_values", FieldPath: "current.share_of_missing_values"}
		_, err := AggregatePanel(snaps, Filter{}, value, "median", NewAggregations())
		if !errors.Is(err, ErrUnknownAggregation) {
			t.Errorf("error = %v, want ErrUnknownAggregation", err)
		}
	})

	t.Run("field path miss", func(t *testing.T) {
		t.Parallel()

		value := PanelValue{CheckType: "missing_values", FieldPath: "current.nope"}
		_, err := AggregatePanel(snaps, Filter{}, value, AggNone, NewAggregations())
		if !errors.Is(err, ErrFieldNotFound) {
			t.Errorf("error = %v, want ErrFieldNotFound", err)
		}
	})
}
