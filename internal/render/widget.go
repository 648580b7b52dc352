package render

import (
	"encoding/json"
	"fmt"
)

// WidgetKind classifies dashboard widgets for the consumer that lays them
// out.
type WidgetKind string

const (
	// WidgetCounter is a single prominent number with a label.
	WidgetCounter WidgetKind = "counter"
	// WidgetTable is a tabular widget.
	WidgetTable WidgetKind = "table"
	// WidgetPlot is a chart widget whose data lives in referenced graphs.
	WidgetPlot WidgetKind = "plot"
)

// Widget is one dashboard element produced from a check result. Params
// holds JSON-native values only, so widgets serialize without surprises.
type Widget struct {
	Title    string         `json:"title"`
	Kind     WidgetKind     `json:"kind"`
	Params   map[string]any `json:"params,omitempty"`
	GraphIDs []string       `json:"graph_ids,omitempty"`
}

// Graph is a heavy visualization payload kept out of the main widget list
// and fetched by id on demand.
type Graph struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Kind  string         `json:"kind"`
	Data  map[string]any `json:"data"`
}

// Dashboard is the widget view of a report: the ordered widget list plus a
// side table of graphs addressed by unique id.
type Dashboard struct {
	widgets []Widget
	graphs  map[string]Graph
	order   []string
}

// NewDashboard creates an empty dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{graphs: make(map[string]Graph)}
}

// AddWidget appends a widget.
func (d *Dashboard) AddWidget(w Widget) {
	d.widgets = append(d.widgets, w)
}

// AddGraph stores a graph under its id. Ids must be unique within one
// dashboard.
func (d *Dashboard) AddGraph(g Graph) error {
	if g.ID == "" {
		return fmt.Errorf("graph %q has no id", g.Title)
	}
	if _, ok := d.graphs[g.ID]; ok {
		return fmt.Errorf("%w: %s", ErrGraphExists, g.ID)
	}
	d.graphs[g.ID] = g
	d.order = append(d.order, g.ID)
	return nil
}

// Widgets returns the widgets in insertion order.
func (d *Dashboard) Widgets() []Widget {
	out := make([]Widget, len(d.widgets))
	copy(out, d.widgets)
	return out
}

// Graph returns the graph stored under id.
func (d *Dashboard) Graph(id string) (Graph, error) {
	g, ok := d.graphs[id]
	if !ok {
		return Graph{}, fmt.Errorf("%w: %s", ErrGraphNotFound, id)
	}
	return g, nil
}

// GraphIDs returns the stored graph ids in insertion order.
func (d *Dashboard) GraphIDs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// MarshalJSON serializes the dashboard as
// {"widgets": [...], "additional_graphs": {id: graph}}.
func (d *Dashboard) MarshalJSON() ([]byte, error) {
	graphs := make(map[string]Graph, len(d.graphs))
	for id, g := range d.graphs {
		graphs[id] = g
	}
	return json.Marshal(struct {
		Widgets          []Widget         `json:"widgets"`
		AdditionalGraphs map[string]Graph `json:"additional_graphs"`
	}{
		Widgets:          d.widgets,
		AdditionalGraphs: graphs,
	})
}
