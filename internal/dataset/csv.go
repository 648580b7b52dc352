package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads a CSV document with a header row into a Frame.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv rows: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	return NewFrame(header, records)
}

// ReadCSVFile reads the CSV file at path into a Frame.
func ReadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	frame, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}
