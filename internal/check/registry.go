package check

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CheckFactory reconstructs a check from its serialized arguments.
type CheckFactory func(args json.RawMessage) (Check, error)

// PresetFactory reconstructs a preset from its serialized arguments.
type PresetFactory func(args json.RawMessage) (Preset, error)

// GeneratorFactory reconstructs a generator from its serialized arguments.
type GeneratorFactory func(args json.RawMessage) (Generator, error)

// TypeRegistry maps type tags to factories. Snapshot restore and YAML
// configuration loading go through it to turn names back into values.
//
// Design decision: the registry is an explicit value constructed at
// application start and passed to whoever needs it, never a package-level
// global. Tests build small registries with only the types they exercise.
type TypeRegistry struct {
	checks     map[string]CheckFactory
	presets    map[string]PresetFactory
	generators map[string]GeneratorFactory
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		checks:     make(map[string]CheckFactory),
		presets:    make(map[string]PresetFactory),
		generators: make(map[string]GeneratorFactory),
	}
}

// RegisterCheck registers a check factory under a type tag.
// Registering the same tag twice panics: double registration is a
// programming error in registry assembly, found immediately at startup.
func (r *TypeRegistry) RegisterCheck(typeTag string, f CheckFactory) {
	if _, ok := r.checks[typeTag]; ok {
		panic(fmt.Sprintf("check: RegisterCheck called twice for %q", typeTag))
	}
	r.checks[typeTag] = f
}

// RegisterPreset registers a preset factory under a type tag.
func (r *TypeRegistry) RegisterPreset(typeTag string, f PresetFactory) {
	if _, ok := r.presets[typeTag]; ok {
		panic(fmt.Sprintf("check: RegisterPreset called twice for %q", typeTag))
	}
	r.presets[typeTag] = f
}

// RegisterGenerator registers a generator factory under a type tag.
func (r *TypeRegistry) RegisterGenerator(typeTag string, f GeneratorFactory) {
	if _, ok := r.generators[typeTag]; ok {
		panic(fmt.Sprintf("check: RegisterGenerator called twice for %q", typeTag))
	}
	r.generators[typeTag] = f
}

// NewCheck builds a check from a type tag and serialized arguments.
func (r *TypeRegistry) NewCheck(typeTag string, args json.RawMessage) (Check, error) {
	f, ok := r.checks[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheckType, typeTag)
	}
	c, err := f(args)
	if err != nil {
		return nil, fmt.Errorf("build check %q: %w", typeTag, err)
	}
	return c, nil
}

// NewPreset builds a preset from a type tag and serialized arguments.
func (r *TypeRegistry) NewPreset(typeTag string, args json.RawMessage) (Preset, error) {
	f, ok := r.presets[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPresetType, typeTag)
	}
	p, err := f(args)
	if err != nil {
		return nil, fmt.Errorf("build preset %q: %w", typeTag, err)
	}
	return p, nil
}

// NewGenerator builds a generator from a type tag and serialized arguments.
func (r *TypeRegistry) NewGenerator(typeTag string, args json.RawMessage) (Generator, error) {
	f, ok := r.generators[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGeneratorType, typeTag)
	}
	g, err := f(args)
	if err != nil {
		return nil, fmt.Errorf("build generator %q: %w", typeTag, err)
	}
	return g, nil
}

// HasCheck reports whether a check factory is registered for the tag.
func (r *TypeRegistry) HasCheck(typeTag string) bool {
	_, ok := r.checks[typeTag]
	return ok
}

// CheckTypes returns all registered check type tags, sorted.
func (r *TypeRegistry) CheckTypes() []string {
	tags := make([]string, 0, len(r.checks))
	for tag := range r.checks {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DecodeArgs is a helper for factories: it decodes serialized arguments
// into a concrete args struct, treating empty input as all defaults.
func DecodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
