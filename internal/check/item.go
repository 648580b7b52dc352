package check

// Item is one element of a declarative check list: a single check, a
// preset, or a generator. The sum is closed; the only cases are CheckItem,
// PresetItem, and GeneratorItem, and only this package can add more.
type Item interface {
	isItem()
}

// CheckItem wraps a single check supplied directly by the caller.
type CheckItem struct {
	Check Check
}

func (CheckItem) isItem() {}

// PresetItem wraps a named bundle expanding into checks.
type PresetItem struct {
	Preset Preset
}

func (PresetItem) isItem() {}

// GeneratorItem wraps a generator producing checks from the column
// description.
type GeneratorItem struct {
	Generator Generator
}

func (GeneratorItem) isItem() {}

// Single wraps a check as a list item.
func Single(c Check) Item { return CheckItem{Check: c} }

// FromPreset wraps a preset as a list item.
func FromPreset(p Preset) Item { return PresetItem{Preset: p} }

// FromGenerator wraps a generator as a list item.
func FromGenerator(g Generator) Item { return GeneratorItem{Generator: g} }

// PresetElement is one element a preset emits: either a check or a nested
// generator. Nesting stops here; a generator emitted by a preset produces
// checks only.
type PresetElement interface {
	isPresetElement()
}

// PresetCheck is a check emitted by a preset.
type PresetCheck struct {
	Check Check
}

func (PresetCheck) isPresetElement() {}

// PresetGenerator is a generator emitted by a preset, resolved immediately
// during expansion.
type PresetGenerator struct {
	Generator Generator
}

func (PresetGenerator) isPresetElement() {}

// Emit wraps a check as a preset element.
func Emit(c Check) PresetElement { return PresetCheck{Check: c} }

// EmitGenerator wraps a generator as a preset element.
func EmitGenerator(g Generator) PresetElement { return PresetGenerator{Generator: g} }
