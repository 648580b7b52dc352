package dashboard

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/nao1215/driftwatch/internal/check"
)

// ExtractField resolves a dotted path inside a check result. Every
// segment but the last must land on a nested string-keyed map. A miss
// at any segment reports ErrFieldNotFound with the full path.
func ExtractField(result check.Result, path string) (any, error) {
	value, ok := lookupPath(map[string]any(result), path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, path)
	}
	return value, nil
}

// lookupPath walks a dotted path through nested string-keyed maps.
func lookupPath(root map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = root
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// equalValues compares two JSON- or YAML-decoded values. YAML decodes
// whole numbers as int while JSON decodes them as float64, so numbers
// are compared by value, and containers are compared element-wise after
// the same normalization.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

// normalizeValue rewrites a decoded value tree into its JSON-native
// form: all numbers become float64.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
