package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/nao1215/driftwatch/internal/snapshot"
)

// Point is one extracted observation.
type Point struct {
	// Timestamp is the run time of the snapshot the value came from.
	Timestamp time.Time `json:"timestamp"`
	// Value is the extracted result field, JSON-native.
	Value any `json:"value"`
}

// Series is the labeled output of one panel value.
type Series struct {
	// Legend labels the series.
	Legend string `json:"legend"`
	// Points are ordered by timestamp.
	Points []Point `json:"points"`
}

// Built-in aggregation names.
const (
	// AggNone returns the raw series.
	AggNone = "none"
	// AggLast keeps only the most recent point.
	AggLast = "last"
	// AggSum reduces the series to one accumulated value.
	AggSum = "sum"
)

// AggFunc reduces an extracted point series. Input points arrive in
// timestamp order.
type AggFunc func(points []Point) []Point

// Aggregations maps aggregation names to reduction functions. Construct
// one with NewAggregations and pass it to every component that reduces
// panels; the registry is a plain value, not package state.
type Aggregations struct {
	funcs map[string]AggFunc
}

// NewAggregations returns a registry preloaded with the built-in
// aggregations none, last, and sum.
func NewAggregations() *Aggregations {
	a := &Aggregations{funcs: make(map[string]AggFunc)}
	a.Register(AggNone, func(points []Point) []Point { return points })
	a.Register(AggLast, aggLast)
	a.Register(AggSum, aggSum)
	return a
}

// Register adds or replaces a named aggregation.
func (a *Aggregations) Register(name string, fn AggFunc) {
	a.funcs[name] = fn
}

// Lookup resolves an aggregation by name. The empty name resolves to
// none; an unregistered name reports ErrUnknownAggregation.
func (a *Aggregations) Lookup(name string) (AggFunc, error) {
	if name == "" {
		name = AggNone
	}
	fn, ok := a.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, name)
	}
	return fn, nil
}

// aggLast keeps the most recent point.
func aggLast(points []Point) []Point {
	if len(points) == 0 {
		return points
	}
	return points[len(points)-1:]
}

// aggSum accumulates numeric point values into a single point stamped
// with the most recent timestamp. Non-numeric values are ignored.
func aggSum(points []Point) []Point {
	if len(points) == 0 {
		return points
	}
	var total float64
	for _, p := range points {
		if v, ok := p.Value.(float64); ok {
			total += v
		}
	}
	return []Point{{Timestamp: points[len(points)-1].Timestamp, Value: total}}
}

// matchUnit reports whether the unit satisfies the value's (type, args)
// template. Template args match with subset semantics: every template
// key, dotted keys included, must resolve in the unit's canonical args
// to an equal value.
func (v PanelValue) matchUnit(u snapshot.Unit) bool {
	if u.Type != v.CheckType {
		return false
	}
	if len(v.CheckArgs) == 0 {
		return true
	}

	args, err := u.Identity().ArgsMap()
	if err != nil {
		return false
	}
	for key, want := range v.CheckArgs {
		got, ok := lookupPath(args, key)
		if !ok || !equalValues(want, got) {
			return false
		}
	}
	return true
}

// findUnit returns the first first-level unit matching the template.
func (v PanelValue) findUnit(snap *snapshot.Snapshot) (snapshot.Unit, bool) {
	for _, u := range snap.FirstLevelUnits() {
		if v.matchUnit(u) {
			return u, true
		}
	}
	return snapshot.Unit{}, false
}

// AggregatePanel extracts one panel value across the snapshot history:
// filter the snapshots, locate the first matching unit per retained
// snapshot in timestamp order, pull the field, and reduce with the
// named aggregation. Snapshots without a matching unit contribute
// nothing; a field-path miss on a matched unit aborts with
// ErrFieldNotFound.
func AggregatePanel(snaps []*snapshot.Snapshot, filter Filter, value PanelValue, agg string, aggs *Aggregations) (Series, error) {
	fn, err := aggs.Lookup(agg)
	if err != nil {
		return Series{}, err
	}

	retained := make([]*snapshot.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		if filter.Matches(snap) {
			retained = append(retained, snap)
		}
	}
	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].Timestamp.Before(retained[j].Timestamp)
	})

	points := make([]Point, 0, len(retained))
	for _, snap := range retained {
		unit, ok := value.findUnit(snap)
		if !ok {
			continue
		}
		field, err := ExtractField(unit.Result, value.FieldPath)
		if err != nil {
			return Series{}, fmt.Errorf("check %s in snapshot %s: %w", value.CheckType, snap.ID, err)
		}
		points = append(points, Point{Timestamp: snap.Timestamp, Value: field})
	}
	return Series{Legend: value.legend(), Points: fn(points)}, nil
}
