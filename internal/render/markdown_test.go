package render

import (
	"strings"
	"testing"
	"time"
)

func sampleDoc() *Doc {
	table := NewTable("Row Count", "field", "value")
	_ = table.AddRow("rows", "120")

	return &Doc{
		Title:     "Data Drift Report",
		ID:        "0c27512f-78ec-4fe9-9b3e-b42b4f4a5a41",
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Tags:      []string{"nightly", "prod"},
		Metadata:  map[string]string{"model_id": "churn-v3", "batch_size": "5000"},
		Summary:   &StatusSummary{Passed: 3, Failed: 1},
		Sections: []Section{
			{Title: "Row Count", Table: table},
		},
	}
}

func TestMarkdownWriterWrite(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	n, err := NewMarkdownWriter(&sb).Write(sampleDoc())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n == 0 {
		t.Error("Write() composed no bytes")
	}

	out := sb.String()
	for _, want := range []string{
		"# Data Drift Report",
		"0c27512f-78ec-4fe9-9b3e-b42b4f4a5a41",
		"2025-03-14 09:30:00 UTC",
		"nightly, prod",
		"model_id",
		"churn-v3",
		"## Check Status",
		"pie",
		"## Results",
		"### Row Count",
		"rows",
		"120",
		"*Generated by [driftwatch](https://github.com/nao1215/driftwatch)*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// One failed check yields the caution alert.
	if !strings.Contains(out, "CAUTION") {
		t.Errorf("output missing failure alert:\n%s", out)
	}
}

func TestMarkdownWriterAllPassed(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	doc.Summary = &StatusSummary{Passed: 2}

	var sb strings.Builder
	if _, err := NewMarkdownWriter(&sb).Write(doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(sb.String(), "TIP") {
		t.Errorf("output missing all-passed tip:\n%s", sb.String())
	}
}

func TestMarkdownWriterNoSummaryNoSections(t *testing.T) {
	t.Parallel()

	doc := &Doc{
		Title:     "Metrics Report",
		ID:        "id-1",
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	var sb strings.Builder
	if _, err := NewMarkdownWriter(&sb).Write(doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := sb.String()
	if strings.Contains(out, "Check Status") {
		t.Error("output contains a status section without status checks")
	}
	if !strings.Contains(out, "No results.") {
		t.Errorf("output missing empty-results marker:\n%s", out)
	}
}
