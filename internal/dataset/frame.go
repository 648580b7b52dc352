package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// missingValues are the cell contents treated as absent data.
var missingValues = map[string]bool{
	"":     true,
	"null": true,
	"NULL": true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
}

// IsMissing reports whether a raw cell value represents absent data.
func IsMissing(v string) bool {
	return missingValues[strings.TrimSpace(v)]
}

// Frame is an immutable column-major table. Values are kept as raw strings;
// typed access goes through Floats and similar helpers so that parsing rules
// stay in one place.
type Frame struct {
	names   []string
	byName  map[string]int
	columns [][]string
	rows    int
}

// NewFrame builds a Frame from a header and row-major records.
// Every row must have exactly len(names) cells.
func NewFrame(names []string, records [][]string) (*Frame, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}

	byName := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := byName[n]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, n)
		}
		byName[n] = i
	}

	columns := make([][]string, len(names))
	for i := range columns {
		columns[i] = make([]string, 0, len(records))
	}
	for rowIdx, rec := range records {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrRaggedRow, rowIdx, len(rec), len(names))
		}
		for i, cell := range rec {
			columns[i] = append(columns[i], cell)
		}
	}

	return &Frame{
		names:   append([]string(nil), names...),
		byName:  byName,
		columns: columns,
		rows:    len(records),
	}, nil
}

// Rows returns the number of data rows.
func (f *Frame) Rows() int { return f.rows }

// ColumnNames returns the column names in declaration order.
func (f *Frame) ColumnNames() []string {
	return append([]string(nil), f.names...)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns the raw values of the named column.
func (f *Frame) Column(name string) ([]string, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.columns[i], nil
}

// Floats parses the named column as float64. The second slice marks which
// rows parsed successfully; missing or unparseable cells are false there and
// zero in the values slice.
func (f *Frame) Floats(name string) ([]float64, []bool, error) {
	raw, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}

	vals := make([]float64, len(raw))
	ok := make([]bool, len(raw))
	for i, cell := range raw {
		cell = strings.TrimSpace(cell)
		if IsMissing(cell) {
			continue
		}
		v, perr := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if perr != nil {
			continue
		}
		vals[i] = v
		ok[i] = true
	}
	return vals, ok, nil
}

// MissingCount returns how many cells of the named column are missing.
func (f *Frame) MissingCount(name string) (int, error) {
	raw, err := f.Column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, cell := range raw {
		if IsMissing(cell) {
			n++
		}
	}
	return n, nil
}
