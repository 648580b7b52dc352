package check

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nao1215/driftwatch/internal/dataset"
)

// stubArgs is the serialized argument shape of stubCheck.
type stubArgs struct {
	X int `json:"x"`
}

// stubCheck is a minimal check for registry and context tests.
type stubCheck struct {
	Tag string
	X   int
}

func (s stubCheck) Type() string { return s.Tag }
func (s stubCheck) Args() any    { return stubArgs{X: s.X} }
func (s stubCheck) Compute(_ *Input, _ *Context) (Result, error) {
	return Result{"x": float64(s.X)}, nil
}

// stubGenerator is a minimal generator for registry tests.
type stubGenerator struct{}

func (stubGenerator) Name() string { return "StubGenerator" }
func (stubGenerator) Generate(_ *dataset.Description) ([]Check, error) {
	return []Check{stubCheck{Tag: "Stub", X: 1}}, nil
}

// stubPreset is a minimal preset for registry tests.
type stubPreset struct{}

func (stubPreset) Name() string { return "StubPreset" }
func (stubPreset) Expand(_ *Input) ([]PresetElement, error) {
	return []PresetElement{Emit(stubCheck{Tag: "Stub", X: 2})}, nil
}

// TestTypeRegistry_Checks tests check factory registration and lookup.
func TestTypeRegistry_Checks(t *testing.T) {
	t.Parallel()

	reg := NewTypeRegistry()
	reg.RegisterCheck("Stub", func(args json.RawMessage) (Check, error) {
		var decoded stubArgs
		if err := DecodeArgs(args, &decoded); err != nil {
			return nil, err
		}
		return stubCheck{Tag: "Stub", X: decoded.X}, nil
	})

	t.Run("builds registered type", func(t *testing.T) {
		t.Parallel()

		c, err := reg.NewCheck("Stub", json.RawMessage(`{"x":7}`))
		if err != nil {
			t.Fatalf("NewCheck() error: %v", err)
		}
		if c.(stubCheck).X != 7 {
			t.Errorf("decoded X = %d, want 7", c.(stubCheck).X)
		}
	})

	t.Run("empty args use defaults", func(t *testing.T) {
		t.Parallel()

		c, err := reg.NewCheck("Stub", nil)
		if err != nil {
			t.Fatalf("NewCheck() error: %v", err)
		}
		if c.(stubCheck).X != 0 {
			t.Errorf("decoded X = %d, want 0", c.(stubCheck).X)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		if _, err := reg.NewCheck("Absent", nil); !errors.Is(err, ErrUnknownCheckType) {
			t.Errorf("NewCheck() error = %v, want %v", err, ErrUnknownCheckType)
		}
	})

	t.Run("has and types", func(t *testing.T) {
		t.Parallel()

		if !reg.HasCheck("Stub") {
			t.Error("HasCheck(Stub) = false, want true")
		}
		if reg.HasCheck("Absent") {
			t.Error("HasCheck(Absent) = true, want false")
		}
		types := reg.CheckTypes()
		if len(types) != 1 || types[0] != "Stub" {
			t.Errorf("CheckTypes() = %v, want [Stub]", types)
		}
	})
}

// TestTypeRegistry_DuplicatePanics tests double registration detection.
func TestTypeRegistry_DuplicatePanics(t *testing.T) {
	t.Parallel()

	reg := NewTypeRegistry()
	factory := func(json.RawMessage) (Check, error) { return stubCheck{Tag: "Stub"}, nil }
	reg.RegisterCheck("Stub", factory)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	reg.RegisterCheck("Stub", factory)
}

// TestTypeRegistry_PresetsAndGenerators tests the other two factory kinds.
func TestTypeRegistry_PresetsAndGenerators(t *testing.T) {
	t.Parallel()

	reg := NewTypeRegistry()
	reg.RegisterPreset("StubPreset", func(json.RawMessage) (Preset, error) {
		return stubPreset{}, nil
	})
	reg.RegisterGenerator("StubGenerator", func(json.RawMessage) (Generator, error) {
		return stubGenerator{}, nil
	})

	if _, err := reg.NewPreset("StubPreset", nil); err != nil {
		t.Errorf("NewPreset() error: %v", err)
	}
	if _, err := reg.NewGenerator("StubGenerator", nil); err != nil {
		t.Errorf("NewGenerator() error: %v", err)
	}

	if _, err := reg.NewPreset("Absent", nil); !errors.Is(err, ErrUnknownPresetType) {
		t.Errorf("NewPreset() error = %v, want %v", err, ErrUnknownPresetType)
	}
	if _, err := reg.NewGenerator("Absent", nil); !errors.Is(err, ErrUnknownGeneratorType) {
		t.Errorf("NewGenerator() error = %v, want %v", err, ErrUnknownGeneratorType)
	}
}

// TestResult_Clone tests deep copying.
func TestResult_Clone(t *testing.T) {
	t.Parallel()

	orig := Result{
		"current": map[string]any{
			"values": []any{1.0, 2.0},
			"nested": map[string]any{"v": 3.0},
		},
		"scalar": 4.0,
	}

	clone := orig.Clone()
	clone["current"].(map[string]any)["nested"].(map[string]any)["v"] = 99.0
	clone["current"].(map[string]any)["values"].([]any)[0] = 99.0
	clone["scalar"] = 99.0

	if orig["current"].(map[string]any)["nested"].(map[string]any)["v"] != 3.0 {
		t.Error("clone must not share nested maps")
	}
	if orig["current"].(map[string]any)["values"].([]any)[0] != 1.0 {
		t.Error("clone must not share slices")
	}
	if orig["scalar"] != 4.0 {
		t.Error("clone must not share top-level entries")
	}

	if Result(nil).Clone() != nil {
		t.Error("nil result must clone to nil")
	}
}
