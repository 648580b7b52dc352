package report

// Kind selects the report flavor. A metrics report presents computed
// values; a test suite presents pass/fail conditions. The flavor decides
// the provenance metadata keys and the name of the unit section in
// dictionary output.
//
// Design decision: iota-based constants with a String() method, because:
// 1. Type safety prevents passing arbitrary strings as a kind
// 2. The zero value is the common case (a metrics report)
// 3. Comparisons are integer comparisons
type Kind int

const (
	// KindMetrics is a report of computed metric values.
	KindMetrics Kind = iota
	// KindTests is a suite of pass/fail test conditions.
	KindTests
)

// String returns the section name used in dictionary output.
func (k Kind) String() string {
	switch k {
	case KindMetrics:
		return "metrics"
	case KindTests:
		return "tests"
	default:
		return "unknown"
	}
}

// prefix returns the singular form used in provenance metadata keys,
// e.g. "metric_presets" and "test_generators".
func (k Kind) prefix() string {
	if k == KindTests {
		return "test"
	}
	return "metric"
}
