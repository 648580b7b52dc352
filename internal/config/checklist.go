package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/driftwatch/internal/check"
	"github.com/nao1215/driftwatch/internal/report"
)

// CheckList is the decoded form of a check-list YAML file. It names the
// report kind and the checks, presets, and generators to execute, in
// order.
type CheckList struct {
	// Kind selects the report kind: "metric" (the default) or "test".
	Kind string `yaml:"kind,omitempty"`

	// Items are resolved through the type registry and executed in file
	// order.
	Items []ItemSpec `yaml:"items"`
}

// ItemSpec is one check-list entry. Exactly one of the three fields is
// set.
type ItemSpec struct {
	Check     *UnitSpec `yaml:"check,omitempty"`
	Preset    *UnitSpec `yaml:"preset,omitempty"`
	Generator *UnitSpec `yaml:"generator,omitempty"`
}

// UnitSpec names a registered type and its arguments.
type UnitSpec struct {
	// Type is the registered type tag, e.g. "column_drift".
	Type string `yaml:"type"`

	// Args parameterize the type. The mapping is handed to the type's
	// factory as JSON; unknown argument fields fail there.
	Args map[string]any `yaml:"args,omitempty"`
}

// LoadCheckList reads and validates a check-list YAML file. Unknown YAML
// fields are rejected so a typo fails the load instead of silently
// dropping an item.
func LoadCheckList(path string) (*CheckList, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read check list: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cl CheckList
	if err := dec.Decode(&cl); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCheckList, path, err)
	}
	if err := cl.validate(); err != nil {
		return nil, err
	}
	return &cl, nil
}

// validate rejects structurally wrong check lists before any resolution.
func (cl *CheckList) validate() error {
	if _, err := cl.ReportKind(); err != nil {
		return err
	}
	if len(cl.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidCheckList)
	}
	for i, item := range cl.Items {
		if err := item.validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidCheckList, i, err)
		}
	}
	return nil
}

// validate checks that exactly one of check, preset, or generator is set
// and that it names a type.
func (s ItemSpec) validate() error {
	set := 0
	for _, u := range []*UnitSpec{s.Check, s.Preset, s.Generator} {
		if u == nil {
			continue
		}
		set++
		if u.Type == "" {
			return errors.New("missing type")
		}
	}
	if set != 1 {
		return fmt.Errorf("want exactly one of check, preset, or generator, got %d", set)
	}
	return nil
}

// ReportKind maps the file's kind field to the report kind.
func (cl *CheckList) ReportKind() (report.Kind, error) {
	switch cl.Kind {
	case "", "metric":
		return report.KindMetrics, nil
	case "test":
		return report.KindTests, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidCheckList, cl.Kind)
	}
}

// ResolveItems builds the runnable item list through the registry.
// Unknown type tags and rejected arguments surface the registry's
// errors, positioned by item index.
func (cl *CheckList) ResolveItems(types *check.TypeRegistry) ([]check.Item, error) {
	items := make([]check.Item, 0, len(cl.Items))
	for i, spec := range cl.Items {
		item, err := spec.resolve(types)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// resolve turns one entry into a runnable item.
func (s ItemSpec) resolve(types *check.TypeRegistry) (check.Item, error) {
	switch {
	case s.Check != nil:
		raw, err := s.Check.args()
		if err != nil {
			return nil, err
		}
		c, err := types.NewCheck(s.Check.Type, raw)
		if err != nil {
			return nil, err
		}
		return check.Single(c), nil
	case s.Preset != nil:
		raw, err := s.Preset.args()
		if err != nil {
			return nil, err
		}
		p, err := types.NewPreset(s.Preset.Type, raw)
		if err != nil {
			return nil, err
		}
		return check.FromPreset(p), nil
	case s.Generator != nil:
		raw, err := s.Generator.args()
		if err != nil {
			return nil, err
		}
		g, err := types.NewGenerator(s.Generator.Type, raw)
		if err != nil {
			return nil, err
		}
		return check.FromGenerator(g), nil
	default:
		return nil, errors.New("empty item")
	}
}

// args serializes the YAML arguments for the registry's factories.
// An absent mapping reads as all-defaults.
func (u *UnitSpec) args() (json.RawMessage, error) {
	if len(u.Args) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(u.Args)
	if err != nil {
		return nil, fmt.Errorf("encode args for %q: %w", u.Type, err)
	}
	return raw, nil
}
