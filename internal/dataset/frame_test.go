package dataset

import (
	"errors"
	"strings"
	"testing"
)

// TestNewFrame tests frame construction and validation.
func TestNewFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		records [][]string
		wantErr error
	}{
		{
			name:    "valid frame",
			columns: []string{"age", "city"},
			records: [][]string{{"31", "Tokyo"}, {"45", "Osaka"}},
			wantErr: nil,
		},
		{
			name:    "no columns",
			columns: nil,
			records: nil,
			wantErr: ErrNoColumns,
		},
		{
			name:    "duplicate column",
			columns: []string{"age", "age"},
			records: [][]string{{"31", "45"}},
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "ragged row",
			columns: []string{"age", "city"},
			records: [][]string{{"31"}},
			wantErr: ErrRaggedRow,
		},
		{
			name:    "empty frame with columns",
			columns: []string{"age"},
			records: nil,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := NewFrame(tt.columns, tt.records)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewFrame() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFrame() unexpected error: %v", err)
			}
			if f.Rows() != len(tt.records) {
				t.Errorf("Rows() = %d, want %d", f.Rows(), len(tt.records))
			}
		})
	}
}

// TestFrame_Column tests column access.
func TestFrame_Column(t *testing.T) {
	t.Parallel()

	f, err := NewFrame([]string{"age", "city"}, [][]string{
		{"31", "Tokyo"},
		{"45", "Osaka"},
	})
	if err != nil {
		t.Fatalf("NewFrame() error: %v", err)
	}

	t.Run("existing column", func(t *testing.T) {
		t.Parallel()

		got, err := f.Column("city")
		if err != nil {
			t.Fatalf("Column() error: %v", err)
		}
		want := []string{"Tokyo", "Osaka"}
		if len(got) != len(want) {
			t.Fatalf("Column() returned %d values, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Column()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()

		if _, err := f.Column("salary"); !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("Column() error = %v, want %v", err, ErrColumnNotFound)
		}
	})
}

// TestFrame_Floats tests numeric parsing with missing and malformed cells.
func TestFrame_Floats(t *testing.T) {
	t.Parallel()

	f, err := NewFrame([]string{"v"}, [][]string{
		{"1.5"}, {""}, {"N/A"}, {"2,000"}, {"oops"}, {"-3"},
	})
	if err != nil {
		t.Fatalf("NewFrame() error: %v", err)
	}

	vals, ok, err := f.Floats("v")
	if err != nil {
		t.Fatalf("Floats() error: %v", err)
	}

	wantVals := []float64{1.5, 0, 0, 2000, 0, -3}
	wantOK := []bool{true, false, false, true, false, true}
	for i := range wantVals {
		if vals[i] != wantVals[i] {
			t.Errorf("Floats()[%d] = %v, want %v", i, vals[i], wantVals[i])
		}
		if ok[i] != wantOK[i] {
			t.Errorf("Floats() ok[%d] = %v, want %v", i, ok[i], wantOK[i])
		}
	}
}

// TestFrame_MissingCount tests missing-cell counting.
func TestFrame_MissingCount(t *testing.T) {
	t.Parallel()

	f, err := NewFrame([]string{"v"}, [][]string{
		{"a"}, {""}, {"null"}, {"NULL"}, {"n/a"}, {"NaN"}, {"b"},
	})
	if err != nil {
		t.Fatalf("NewFrame() error: %v", err)
	}

	got, err := f.MissingCount("v")
	if err != nil {
		t.Fatalf("MissingCount() error: %v", err)
	}
	if got != 5 {
		t.Errorf("MissingCount() = %d, want 5", got)
	}
}

// TestReadCSV tests CSV parsing into frames.
func TestReadCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		rows    int
	}{
		{
			name:    "valid csv",
			input:   "age,city\n31,Tokyo\n45,Osaka\n",
			wantErr: nil,
			rows:    2,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrNoColumns,
		},
		{
			name:    "header only",
			input:   "age,city\n",
			wantErr: ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadCSV() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCSV() unexpected error: %v", err)
			}
			if f.Rows() != tt.rows {
				t.Errorf("Rows() = %d, want %d", f.Rows(), tt.rows)
			}
		})
	}
}
