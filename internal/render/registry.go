package render

import (
	"fmt"
	"sort"

	"github.com/nao1215/driftwatch/internal/check"
)

// Renderer turns one check's result into each supported view. Implementations
// are registered per check type; most embed DefaultRenderer and override the
// views that benefit from check-specific shaping.
type Renderer interface {
	// RenderJSON returns the JSON-ready projection of the result.
	RenderJSON(id check.Identity, result check.Result) (map[string]any, error)

	// RenderTable returns the tabular projection of the result.
	RenderTable(id check.Identity, result check.Result) (*Table, error)

	// RenderWidgets returns the dashboard widgets for the result plus any
	// graphs the widgets reference by id.
	RenderWidgets(id check.Identity, result check.Result) ([]Widget, []Graph, error)

	// RenderHTML returns a self-contained HTML fragment for the result.
	RenderHTML(id check.Identity, result check.Result) (string, error)
}

// Registry maps check type tags to renderers. It is an explicit value
// constructed at application start and passed into every component that
// renders; there is no package-global registry.
//
// Design decision: Registration panics on duplicates rather than returning
// an error because:
// 1. Registration happens once at startup from static code
// 2. A duplicate always means two renderers claim the same check type
// 3. Failing loudly at startup beats shadowed renderers at render time
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register binds a renderer to a check type tag.
// It panics if the type tag is already bound or the renderer is nil.
func (r *Registry) Register(typeTag string, renderer Renderer) {
	if renderer == nil {
		panic("render: Register renderer is nil for " + typeTag)
	}
	if _, ok := r.renderers[typeTag]; ok {
		panic("render: Register called twice for check type " + typeTag)
	}
	r.renderers[typeTag] = renderer
}

// Lookup returns the renderer bound to a check type tag.
func (r *Registry) Lookup(typeTag string) (Renderer, error) {
	renderer, ok := r.renderers[typeTag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRendererNotFound, typeTag)
	}
	return renderer, nil
}

// Has reports whether a renderer is bound to the type tag.
func (r *Registry) Has(typeTag string) bool {
	_, ok := r.renderers[typeTag]
	return ok
}

// Types returns the registered check type tags in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
