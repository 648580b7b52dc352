package dataset

import (
	"strconv"
	"strings"
	"time"
)

// ColumnType classifies the values of one column.
type ColumnType int

const (
	// TypeNumeric marks continuous or count-like columns.
	TypeNumeric ColumnType = iota
	// TypeCategorical marks low-cardinality label columns.
	TypeCategorical
	// TypeDatetime marks timestamp columns.
	TypeDatetime
	// TypeText marks high-cardinality free-form string columns.
	TypeText
)

// String returns the lowercase name of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeCategorical:
		return "categorical"
	case TypeDatetime:
		return "datetime"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// ColumnRole classifies what a column is used for.
type ColumnRole int

const (
	// RoleFeature marks ordinary model-input columns.
	RoleFeature ColumnRole = iota
	// RoleTarget marks the ground-truth column.
	RoleTarget
	// RolePrediction marks the model-output column.
	RolePrediction
	// RoleID marks the row-identifier column.
	RoleID
	// RoleTimestamp marks the per-row timestamp column.
	RoleTimestamp
)

// String returns the lowercase name of the column role.
func (r ColumnRole) String() string {
	switch r {
	case RoleFeature:
		return "feature"
	case RoleTarget:
		return "target"
	case RolePrediction:
		return "prediction"
	case RoleID:
		return "id"
	case RoleTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// ColumnInfo is the normalized description of one column.
type ColumnInfo struct {
	Name string
	Type ColumnType
	Role ColumnRole
}

// Description is the normalized view of a frame's columns, computed once per
// run and shared read-only by every check.
type Description struct {
	columns []ColumnInfo
	byName  map[string]int
}

// Columns returns all column descriptions in frame order.
func (d *Description) Columns() []ColumnInfo {
	return append([]ColumnInfo(nil), d.columns...)
}

// Column returns the description of the named column.
func (d *Description) Column(name string) (ColumnInfo, bool) {
	i, ok := d.byName[name]
	if !ok {
		return ColumnInfo{}, false
	}
	return d.columns[i], true
}

// ColumnsOf returns the names of feature columns with the given type,
// in frame order. Target, prediction, id, and timestamp columns are
// excluded so generators do not produce checks against them.
func (d *Description) ColumnsOf(t ColumnType) []string {
	var names []string
	for _, c := range d.columns {
		if c.Type == t && c.Role == RoleFeature {
			names = append(names, c.Name)
		}
	}
	return names
}

// Definition names the special-role columns derived from a Description.
type Definition struct {
	Target     string
	Prediction string
	ID         string
	Timestamp  string

	// NumericFeatures and CategoricalFeatures list feature columns by type,
	// in frame order.
	NumericFeatures     []string
	CategoricalFeatures []string
}

// Describe inspects a frame and produces its Description and Definition.
// The mapping, when non-nil, wins over inference for both types and roles.
func Describe(f *Frame, mapping *ColumnMapping) (*Description, *Definition, error) {
	if err := mapping.Validate(f); err != nil {
		return nil, nil, err
	}

	names := f.ColumnNames()
	desc := &Description{
		columns: make([]ColumnInfo, 0, len(names)),
		byName:  make(map[string]int, len(names)),
	}

	for _, name := range names {
		values, err := f.Column(name)
		if err != nil {
			return nil, nil, err
		}

		info := ColumnInfo{Name: name}
		if forced, ok := mapping.forcedType(name); ok {
			info.Type = forced
		} else {
			info.Type = detectType(values)
		}
		info.Role = detectRole(name, info.Type, mapping)

		desc.byName[name] = len(desc.columns)
		desc.columns = append(desc.columns, info)
	}

	def := &Definition{}
	for _, c := range desc.columns {
		switch c.Role {
		case RoleTarget:
			def.Target = c.Name
		case RolePrediction:
			def.Prediction = c.Name
		case RoleID:
			def.ID = c.Name
		case RoleTimestamp:
			def.Timestamp = c.Name
		case RoleFeature:
			switch c.Type {
			case TypeNumeric:
				def.NumericFeatures = append(def.NumericFeatures, c.Name)
			case TypeCategorical:
				def.CategoricalFeatures = append(def.CategoricalFeatures, c.Name)
			}
		}
	}

	return desc, def, nil
}

// typeThreshold is the share of non-missing values that must parse as a
// candidate type before the column is classified as that type.
const typeThreshold = 0.8

// maxCategoricalUnique bounds how many distinct string values a column may
// have and still count as categorical rather than text.
const maxCategoricalUnique = 50

// detectType classifies raw values by parse-success ratio.
func detectType(values []string) ColumnType {
	var present []string
	unique := make(map[string]bool)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if IsMissing(v) {
			continue
		}
		present = append(present, v)
		unique[v] = true
	}
	if len(present) == 0 {
		return TypeCategorical
	}

	numCount := 0
	dateCount := 0
	for _, v := range present {
		if isNumericValue(v) {
			numCount++
		}
		if isDatetimeValue(v) {
			dateCount++
		}
	}

	threshold := int(float64(len(present)) * typeThreshold)
	if threshold == 0 {
		threshold = 1
	}

	// Datetime wins over numeric so that "2006" style year columns do not
	// flip type depending on sample contents.
	if dateCount >= threshold {
		return TypeDatetime
	}
	if numCount >= threshold {
		return TypeNumeric
	}
	if len(unique) > maxCategoricalUnique && len(unique)*2 > len(present) {
		return TypeText
	}
	return TypeCategorical
}

func isNumericValue(s string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return err == nil
}

var datetimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func isDatetimeValue(s string) bool {
	for _, format := range datetimeFormats {
		if _, err := time.Parse(format, s); err == nil {
			return true
		}
	}
	return false
}

// detectRole assigns a role from the mapping first, then by conventional
// column names.
func detectRole(name string, t ColumnType, mapping *ColumnMapping) ColumnRole {
	if mapping != nil {
		switch name {
		case mapping.Target:
			if name != "" {
				return RoleTarget
			}
		case mapping.Prediction:
			if name != "" {
				return RolePrediction
			}
		case mapping.ID:
			if name != "" {
				return RoleID
			}
		case mapping.Datetime:
			if name != "" {
				return RoleTimestamp
			}
		}
	}

	switch strings.ToLower(name) {
	case "target", "label", "y":
		return RoleTarget
	case "prediction", "predicted", "score":
		return RolePrediction
	case "id", "row_id", "record_id":
		return RoleID
	case "timestamp", "datetime", "date", "ts":
		return RoleTimestamp
	}
	if t == TypeDatetime {
		return RoleTimestamp
	}
	return RoleFeature
}
