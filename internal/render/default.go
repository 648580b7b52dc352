package render

import (
	"html/template"
	"sort"
	"strings"

	"github.com/nao1215/driftwatch/internal/check"
)

// fragmentTemplate renders the generic HTML fragment for one check result.
var fragmentTemplate = template.Must(template.New("fragment").Parse(`<section class="check">
<h3>{{.Title}}</h3>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</section>
`))

// DefaultRenderer renders any result generically: the raw result map as
// JSON, a sorted field/value table, and a single table widget. Check types
// without bespoke presentation register it directly; richer renderers embed
// it and override individual views.
type DefaultRenderer struct{}

// RenderJSON returns a deep copy of the result, safe for callers to mutate.
func (DefaultRenderer) RenderJSON(_ check.Identity, result check.Result) (map[string]any, error) {
	return map[string]any(result.Clone()), nil
}

// RenderTable returns a field/value table with fields sorted by name.
func (DefaultRenderer) RenderTable(id check.Identity, result check.Result) (*Table, error) {
	t := NewTable(TitleFor(id), "field", "value")
	for _, key := range sortedKeys(result) {
		if err := t.AddRow(key, FormatValue(result[key])); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RenderWidgets returns a single table widget and no graphs.
func (d DefaultRenderer) RenderWidgets(id check.Identity, result check.Result) ([]Widget, []Graph, error) {
	t, err := d.RenderTable(id, result)
	if err != nil {
		return nil, nil, err
	}
	return []Widget{TableWidget(t)}, nil, nil
}

// RenderHTML returns the table rendered as an HTML section.
func (d DefaultRenderer) RenderHTML(id check.Identity, result check.Result) (string, error) {
	t, err := d.RenderTable(id, result)
	if err != nil {
		return "", err
	}
	return FragmentHTML(t)
}

// TableWidget wraps a table as a dashboard widget.
func TableWidget(t *Table) Widget {
	columns := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c
	}
	rows := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	return Widget{
		Title: t.Title,
		Kind:  WidgetTable,
		Params: map[string]any{
			"columns": columns,
			"rows":    rows,
		},
	}
}

// FragmentHTML renders a table as an escaped HTML section fragment.
func FragmentHTML(t *Table) (string, error) {
	var sb strings.Builder
	if err := fragmentTemplate.Execute(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// sortedKeys returns the result's keys in sorted order.
func sortedKeys(result check.Result) []string {
	keys := make([]string, 0, len(result))
	for k := range result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
