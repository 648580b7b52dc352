package render

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Table is a tabular projection of check results. Cells are preformatted
// strings so every output format renders the same text.
type Table struct {
	// Title names the table, typically the humanized check type.
	Title string
	// Columns holds the header cells.
	Columns []string
	// Rows holds the data cells. Every row has len(Columns) cells.
	Rows [][]string
}

// NewTable creates an empty table with the given title and columns.
func NewTable(title string, columns ...string) *Table {
	return &Table{Title: title, Columns: columns}
}

// AddRow appends a row. The cell count must match the column count.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, want %d", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// FormatValue renders a result value as a table cell. Scalars print
// plainly; collections print as compact JSON so nested payloads stay
// one cell wide.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		doc, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(doc)
	}
}
