package dataset

import "fmt"

// ColumnMapping overrides column inference. Empty fields fall back to the
// heuristics in Describe. The zero value is a valid "infer everything"
// mapping.
type ColumnMapping struct {
	// Target names the ground-truth column.
	Target string `yaml:"target"`
	// Prediction names the model-output column.
	Prediction string `yaml:"prediction"`
	// ID names the row-identifier column.
	ID string `yaml:"id"`
	// Datetime names the per-row timestamp column.
	Datetime string `yaml:"datetime"`

	// Numeric, Categorical, and Text force the type of the listed columns.
	Numeric     []string `yaml:"numeric"`
	Categorical []string `yaml:"categorical"`
	Text        []string `yaml:"text"`
}

// Validate checks that every column the mapping names exists in the frame.
func (m *ColumnMapping) Validate(f *Frame) error {
	if m == nil {
		return nil
	}
	named := []string{m.Target, m.Prediction, m.ID, m.Datetime}
	named = append(named, m.Numeric...)
	named = append(named, m.Categorical...)
	named = append(named, m.Text...)
	for _, name := range named {
		if name == "" {
			continue
		}
		if !f.HasColumn(name) {
			return fmt.Errorf("column mapping: %w: %q", ErrColumnNotFound, name)
		}
	}
	return nil
}

// forcedType returns the mapped type override for a column, if any.
func (m *ColumnMapping) forcedType(name string) (ColumnType, bool) {
	if m == nil {
		return 0, false
	}
	for _, c := range m.Numeric {
		if c == name {
			return TypeNumeric, true
		}
	}
	for _, c := range m.Categorical {
		if c == name {
			return TypeCategorical, true
		}
	}
	for _, c := range m.Text {
		if c == name {
			return TypeText, true
		}
	}
	if name == m.Datetime && name != "" {
		return TypeDatetime, true
	}
	return 0, false
}
