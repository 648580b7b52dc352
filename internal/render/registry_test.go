package render

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("row_count", DefaultRenderer{})
	reg.Register("column_drift", DefaultRenderer{})

	if _, err := reg.Lookup("row_count"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}
	if !reg.Has("row_count") {
		t.Error("Has() = false for registered type")
	}

	_, err := reg.Lookup("unknown_check")
	if !errors.Is(err, ErrRendererNotFound) {
		t.Errorf("Lookup() error = %v, want ErrRendererNotFound", err)
	}

	want := []string{"column_drift", "row_count"}
	if got := reg.Types(); !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("row_count", DefaultRenderer{})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	reg.Register("row_count", DefaultRenderer{})
}

func TestRegistryNilRendererPanics(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	reg.Register("row_count", nil)
}
