package check

// Result is the immutable value a check computes in one run. It is a plain
// JSON-shaped document: values must be float64, string, bool, nil,
// map[string]any, or []any so that a result survives snapshot
// serialization byte-for-byte. Numbers are always float64; slices are
// always []any.
//
// Results are addressed later by dotted field path, e.g.
// "current.share_of_missing_values".
type Result map[string]any

// Status values carried by test-style checks under the "status" result key.
// Report views count them into the pass/fail summary.
const (
	// StatusSuccess marks a satisfied condition.
	StatusSuccess = "success"
	// StatusFail marks a violated condition.
	StatusFail = "fail"
)

// Clone returns a deep copy of the result. Views hand out clones so a
// caller cannot mutate a recorded result.
func (r Result) Clone() Result {
	if r == nil {
		return nil
	}
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, inner := range vv {
			out[k] = cloneValue(inner)
		}
		return out
	case Result:
		out := make(map[string]any, len(vv))
		for k, inner := range vv {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, inner := range vv {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
