package check

import (
	"strings"
	"testing"
)

type quantileArgs struct {
	Column   string  `json:"column"`
	Quantile float64 `json:"quantile"`
}

// TestNewIdentity tests canonicalization of constructor arguments.
func TestNewIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typeTag  string
		args     any
		wantArgs string
	}{
		{
			name:     "nil args canonicalize to empty object",
			typeTag:  "RowCount",
			args:     nil,
			wantArgs: "{}",
		},
		{
			name:     "struct args keep field order",
			typeTag:  "ColumnQuantile",
			args:     quantileArgs{Column: "age", Quantile: 0.5},
			wantArgs: `{"column":"age","quantile":0.5}`,
		},
		{
			name:     "map args sort keys",
			typeTag:  "Custom",
			args:     map[string]any{"b": 2.0, "a": 1.0},
			wantArgs: `{"a":1,"b":2}`,
		},
		{
			name:     "nil pointer canonicalizes to empty object",
			typeTag:  "RowCount",
			args:     (*quantileArgs)(nil),
			wantArgs: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := NewIdentity(tt.typeTag, tt.args)
			if err != nil {
				t.Fatalf("NewIdentity() error: %v", err)
			}
			if id.Type != tt.typeTag {
				t.Errorf("Type = %q, want %q", id.Type, tt.typeTag)
			}
			if id.Args != tt.wantArgs {
				t.Errorf("Args = %q, want %q", id.Args, tt.wantArgs)
			}
		})
	}
}

// TestIdentity_Fingerprint tests fingerprint stability and distinctness.
func TestIdentity_Fingerprint(t *testing.T) {
	t.Parallel()

	a1, err := NewIdentity("ColumnQuantile", quantileArgs{Column: "age", Quantile: 0.5})
	if err != nil {
		t.Fatalf("NewIdentity() error: %v", err)
	}
	a2, err := NewIdentity("ColumnQuantile", quantileArgs{Column: "age", Quantile: 0.5})
	if err != nil {
		t.Fatalf("NewIdentity() error: %v", err)
	}
	b, err := NewIdentity("ColumnQuantile", quantileArgs{Column: "age", Quantile: 0.9})
	if err != nil {
		t.Fatalf("NewIdentity() error: %v", err)
	}

	if a1.Fingerprint() != a2.Fingerprint() {
		t.Error("equal identities must share a fingerprint")
	}
	if a1.Fingerprint() == b.Fingerprint() {
		t.Error("different args must produce different fingerprints")
	}
	if len(a1.Fingerprint()) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a1.Fingerprint()))
	}

	// Type and args must not collide through naive concatenation.
	x := Identity{Type: "AB", Args: "C"}
	y := Identity{Type: "A", Args: "BC"}
	if x.Fingerprint() == y.Fingerprint() {
		t.Error("fingerprint must separate type from args")
	}
}

// TestIdentity_EqualLess tests ordering and equality.
func TestIdentity_EqualLess(t *testing.T) {
	t.Parallel()

	a := Identity{Type: "A", Args: "{}"}
	a2 := Identity{Type: "A", Args: "{}"}
	b := Identity{Type: "B", Args: "{}"}
	aArgs := Identity{Type: "A", Args: `{"x":1}`}

	if !a.Equal(a2) {
		t.Error("identical identities must be equal")
	}
	if a.Equal(b) {
		t.Error("different types must not be equal")
	}
	if !a.Less(b) {
		t.Error("A must order before B")
	}
	if b.Less(a) {
		t.Error("B must not order before A")
	}
	if !a.Less(aArgs) {
		t.Error("shorter args must order before longer ones for same type")
	}
}

// TestIdentity_String tests the display form.
func TestIdentity_String(t *testing.T) {
	t.Parallel()

	plain := Identity{Type: "RowCount", Args: "{}"}
	if got := plain.String(); got != "RowCount" {
		t.Errorf("String() = %q, want %q", got, "RowCount")
	}

	withArgs := Identity{Type: "ColumnQuantile", Args: `{"column":"age"}`}
	if got := withArgs.String(); !strings.HasPrefix(got, "ColumnQuantile{") {
		t.Errorf("String() = %q, want type tag followed by args", got)
	}
}

// TestIdentity_ArgsMap tests decoding the canonical args document.
func TestIdentity_ArgsMap(t *testing.T) {
	t.Parallel()

	id, err := NewIdentity("ColumnQuantile", quantileArgs{Column: "age", Quantile: 0.5})
	if err != nil {
		t.Fatalf("NewIdentity() error: %v", err)
	}

	m, err := id.ArgsMap()
	if err != nil {
		t.Fatalf("ArgsMap() error: %v", err)
	}
	if m["column"] != "age" {
		t.Errorf("ArgsMap()[column] = %v, want age", m["column"])
	}
	if m["quantile"] != 0.5 {
		t.Errorf("ArgsMap()[quantile] = %v, want 0.5", m["quantile"])
	}

	empty := Identity{Type: "RowCount", Args: "{}"}
	m, err = empty.ArgsMap()
	if err != nil {
		t.Fatalf("ArgsMap() error: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("ArgsMap() = %v, want empty", m)
	}
}
