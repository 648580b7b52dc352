package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/render"
)

// unitView resolves one first-level position into everything a view
// needs: the unit's identity, its result, and its renderer.
func (r *Report) unitView(pos int) (check.Identity, check.Result, render.Renderer, error) {
	id, err := r.suite.Identity(pos)
	if err != nil {
		return check.Identity{}, nil, nil, err
	}
	result, err := r.suite.Result(pos)
	if err != nil {
		return check.Identity{}, nil, nil, fmt.Errorf("%s: %w", id, err)
	}
	renderer, err := r.renderers.Lookup(id.Type)
	if err != nil {
		return check.Identity{}, nil, nil, err
	}
	return id, result, renderer, nil
}

// AsDict returns the report as a JSON-shaped document: id, timestamp,
// metadata, tags, and one section named after the kind holding first-level
// units in emission order, each as {check, result}.
func (r *Report) AsDict() (map[string]any, error) {
	entries := make([]any, 0, len(r.firstLevel))
	for _, pos := range r.firstLevel {
		id, result, renderer, err := r.unitView(pos)
		if err != nil {
			return nil, err
		}
		rendered, err := renderer.RenderJSON(id, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		entries = append(entries, map[string]any{
			"check":  id.String(),
			"result": rendered,
		})
	}

	return map[string]any{
		"id":            r.id,
		"timestamp":     r.timestamp.Format(time.RFC3339),
		"metadata":      r.Metadata(),
		"tags":          r.Tags(),
		r.kind.String(): entries,
	}, nil
}

// AsTables returns one table per check type, keyed by type tag. Units of
// the same type contribute their rows to a shared table, in first-level
// order.
func (r *Report) AsTables() (map[string]*render.Table, error) {
	tables := make(map[string]*render.Table)
	for _, pos := range r.firstLevel {
		id, result, renderer, err := r.unitView(pos)
		if err != nil {
			return nil, err
		}
		t, err := renderer.RenderTable(id, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}

		group, ok := tables[id.Type]
		if !ok {
			group = render.NewTable(render.Humanize(id.Type), t.Columns...)
			tables[id.Type] = group
		}
		for _, row := range t.Rows {
			if err := group.AddRow(row...); err != nil {
				return nil, fmt.Errorf("merge %s rows: %w", id, err)
			}
		}
	}
	return tables, nil
}

// AsTable returns the table for one check type. Unknown types fail with
// ErrUnknownGroup.
func (r *Report) AsTable(group string) (*render.Table, error) {
	tables, err := r.AsTables()
	if err != nil {
		return nil, err
	}
	t, ok := tables[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	return t, nil
}

// AsDashboard returns the widget view of the report. Heavy graph payloads
// are decoupled from the widgets into the dashboard's additional-graphs
// table and referenced by id.
func (r *Report) AsDashboard() (*render.Dashboard, error) {
	d := render.NewDashboard()
	for _, pos := range r.firstLevel {
		id, result, renderer, err := r.unitView(pos)
		if err != nil {
			return nil, err
		}
		widgets, graphs, err := renderer.RenderWidgets(id, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		for _, g := range graphs {
			if err := d.AddGraph(g); err != nil {
				return nil, fmt.Errorf("graph for %s: %w", id, err)
			}
		}
		for _, w := range widgets {
			d.AddWidget(w)
		}
	}
	return d, nil
}

// AsMarkdown writes the report as a markdown document.
func (r *Report) AsMarkdown(w io.Writer) (int, error) {
	doc, err := r.doc()
	if err != nil {
		return 0, err
	}
	return render.NewMarkdownWriter(w).Write(doc)
}

// AsHTML writes the report as a self-contained HTML page.
func (r *Report) AsHTML(w io.Writer) (int, error) {
	doc, err := r.doc()
	if err != nil {
		return 0, err
	}
	return render.NewHTMLWriter(w).Write(doc)
}

// doc assembles the format-independent document shared by the markdown
// and HTML writers.
func (r *Report) doc() (*render.Doc, error) {
	doc := &render.Doc{
		Title:     r.title(),
		ID:        r.id,
		Timestamp: r.timestamp,
		Tags:      r.Tags(),
		Metadata:  make(map[string]string, len(r.metadata)),
		Sections:  make([]render.Section, 0, len(r.firstLevel)),
	}
	for k, v := range r.metadata {
		doc.Metadata[k] = render.FormatValue(v)
	}

	summary := &render.StatusSummary{}
	statusChecks := 0
	for _, pos := range r.firstLevel {
		id, result, renderer, err := r.unitView(pos)
		if err != nil {
			return nil, err
		}
		table, err := renderer.RenderTable(id, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		fragment, err := renderer.RenderHTML(id, result)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		doc.Sections = append(doc.Sections, render.Section{
			Title: render.TitleFor(id),
			Table: table,
			HTML:  fragment,
		})

		switch result["status"] {
		case check.StatusSuccess:
			summary.Passed++
			statusChecks++
		case check.StatusFail:
			summary.Failed++
			statusChecks++
		}
	}
	if statusChecks > 0 {
		doc.Summary = summary
	}
	return doc, nil
}

// title derives the document heading from the report kind.
func (r *Report) title() string {
	if r.kind == KindTests {
		return "Test Suite Report"
	}
	return "Metrics Report"
}
