package check

import (
	"github.com/nao1215/driftwatch/internal/dataset"
)

// Check is one executable verification. Implementations are plain values:
// constructor arguments in exported fields, no mutable run state. Results
// travel through the Context, never through the check itself.
type Check interface {
	// Type returns the stable type tag used for identity, serialization,
	// and renderer lookup.
	Type() string

	// Args returns the constructor arguments. The returned value must
	// marshal to the same JSON document every time for a given check,
	// since the canonical form is the check's identity.
	Args() any

	// Compute produces the check's result against the run input. The
	// context carries results of checks computed earlier in the run, so a
	// check may read a dependency's result if the caller ordered the
	// dependency first.
	Compute(in *Input, ctx *Context) (Result, error)
}

// Input bundles everything a check may read during one run. It is built
// once per run and shared read-only by every check.
type Input struct {
	// Current is the dataset under inspection. Always present in a run.
	Current *dataset.Frame
	// Reference is the optional baseline dataset.
	Reference *dataset.Frame
	// Columns is the normalized description of the current dataset.
	Columns *dataset.Description
	// Definition names the special-role columns.
	Definition *dataset.Definition
	// Features holds derived columns materialized before execution.
	Features dataset.Features
}

// Preset is a named bundle that expands into checks. A preset may emit
// nested generators one level deep; the expander resolves them immediately.
type Preset interface {
	// Name returns the preset's stable name, recorded as provenance.
	Name() string

	// Expand produces the preset's elements against the run input.
	Expand(in *Input) ([]PresetElement, error)
}

// Generator produces checks dynamically from the dataset's column
// description, e.g. one drift check per numeric column.
type Generator interface {
	// Name returns the generator's stable name, recorded as provenance.
	Name() string

	// Generate produces checks for the described columns.
	Generate(columns *dataset.Description) ([]Check, error)
}

// FeaturePlanner is implemented by checks that need derived columns. Plans
// are collected after registration and materialized before execution, so
// presets and generators can influence feature derivation without the
// caller knowing about it upfront.
type FeaturePlanner interface {
	PlanFeatures(def *dataset.Definition) []dataset.Feature
}
