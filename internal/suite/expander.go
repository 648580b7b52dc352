package suite

import (
	"fmt"

	"github.com/nao1215/driftwatch/internal/check"
)

// Provenance records which presets and generators produced the checks of a
// run, in call order. Duplicate entries are kept; running the same preset
// twice records it twice. Nested generators emitted by presets are covered
// by the preset name and are not recorded separately.
type Provenance struct {
	// Presets lists expanded preset names in call order.
	Presets []string
	// Generators lists resolved top-level generator names in call order.
	Generators []string
}

// Expand flattens a declarative check list into the exact ordered list of
// checks a run will execute. Bare checks pass through unchanged, generators
// are resolved against the column description, and presets are expanded one
// level deep with any nested generators resolved immediately.
//
// Expansion is all-or-nothing. The first failing preset or generator aborts
// with a *check.GenerationError naming the failing source, and no partial
// check list is returned.
func Expand(items []check.Item, in *check.Input) ([]check.Check, *Provenance, error) {
	checks := make([]check.Check, 0, len(items))
	prov := &Provenance{}

	for i, item := range items {
		switch it := item.(type) {
		case check.CheckItem:
			if it.Check == nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, ErrNilItem)
			}
			checks = append(checks, it.Check)

		case check.GeneratorItem:
			if it.Generator == nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, ErrNilItem)
			}
			generated, err := resolveGenerator(it.Generator, in)
			if err != nil {
				return nil, nil, err
			}
			checks = append(checks, generated...)
			prov.Generators = append(prov.Generators, it.Generator.Name())

		case check.PresetItem:
			if it.Preset == nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, ErrNilItem)
			}
			expanded, err := expandPreset(it.Preset, in)
			if err != nil {
				return nil, nil, err
			}
			checks = append(checks, expanded...)
			prov.Presets = append(prov.Presets, it.Preset.Name())

		default:
			return nil, nil, fmt.Errorf("item %d: unsupported item type %T", i, item)
		}
	}
	return checks, prov, nil
}

// resolveGenerator runs a generator against the column description and
// validates its output.
func resolveGenerator(g check.Generator, in *check.Input) ([]check.Check, error) {
	generated, err := g.Generate(in.Columns)
	if err != nil {
		return nil, &check.GenerationError{Source: g.Name(), Err: err}
	}
	for _, c := range generated {
		if c == nil {
			return nil, &check.GenerationError{Source: g.Name(), Err: check.ErrNilCheck}
		}
	}
	return generated, nil
}

// expandPreset expands one preset, resolving nested generators in place so
// the caller receives checks only.
func expandPreset(p check.Preset, in *check.Input) ([]check.Check, error) {
	elements, err := p.Expand(in)
	if err != nil {
		return nil, &check.GenerationError{Source: p.Name(), Err: err}
	}

	checks := make([]check.Check, 0, len(elements))
	for _, elem := range elements {
		switch e := elem.(type) {
		case check.PresetCheck:
			if e.Check == nil {
				return nil, &check.GenerationError{Source: p.Name(), Err: check.ErrNilCheck}
			}
			checks = append(checks, e.Check)

		case check.PresetGenerator:
			if e.Generator == nil {
				return nil, &check.GenerationError{Source: p.Name(), Err: ErrNilItem}
			}
			generated, err := e.Generator.Generate(in.Columns)
			if err != nil {
				return nil, &check.GenerationError{
					Source: fmt.Sprintf("%s/%s", p.Name(), e.Generator.Name()),
					Err:    err,
				}
			}
			for _, c := range generated {
				if c == nil {
					return nil, &check.GenerationError{
						Source: fmt.Sprintf("%s/%s", p.Name(), e.Generator.Name()),
						Err:    check.ErrNilCheck,
					}
				}
			}
			checks = append(checks, generated...)

		default:
			return nil, &check.GenerationError{
				Source: p.Name(),
				Err:    fmt.Errorf("unsupported preset element type %T", elem),
			}
		}
	}
	return checks, nil
}
