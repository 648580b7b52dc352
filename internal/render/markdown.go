package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs report documents in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the full document in Markdown format.
// Returns the number of bytes composed and any build error.
func (w *MarkdownWriter) Write(doc *Doc) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, doc)
	w.writeSummary(md, doc)
	w.writeSections(md, doc)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the document heading and the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, doc *Doc) {
	md.H1(doc.Title)
	md.PlainText("")

	rows := [][]string{
		{"Run ID", "`" + doc.ID + "`"},
		{"Generated", doc.Generated()},
	}
	if len(doc.Tags) > 0 {
		rows = append(rows, []string{"Tags", strings.Join(doc.Tags, ", ")})
	}
	for _, kv := range doc.MetadataRows() {
		rows = append(rows, []string{kv[0], kv[1]})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the pass/fail summary for status-bearing checks.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, doc *Doc) {
	if doc.Summary == nil || doc.Summary.Total() == 0 {
		return
	}

	md.H2("Check Status")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"✅ Passed", strconv.Itoa(doc.Summary.Passed)},
			{"❌ Failed", strconv.Itoa(doc.Summary.Failed)},
			{"**Total**", "**" + strconv.Itoa(doc.Summary.Total()) + "**"},
		},
	})
	md.PlainText("")

	w.writePieChart(md, doc.Summary)
	w.writeAlert(md, doc.Summary)
}

// writePieChart writes a mermaid pie chart of the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *StatusSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Check Status Distribution"),
		piechart.WithShowData(true),
	)

	if summary.Passed > 0 {
		chart.LabelAndIntValue("Passed", uint64(summary.Passed))
	}
	if summary.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(summary.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the status outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *StatusSummary) {
	switch {
	case summary.Failed > 0:
		md.Cautionf("%d check(s) failed and require attention.", summary.Failed)
	default:
		md.Tip("All checks passed.")
	}
	md.PlainText("")
}

// writeSections writes one section per rendered check.
func (w *MarkdownWriter) writeSections(md *markdown.Markdown, doc *Doc) {
	md.H2("Results")
	md.PlainText("")

	if len(doc.Sections) == 0 {
		md.PlainText("No results.")
		md.PlainText("")
		return
	}

	for _, section := range doc.Sections {
		md.H3(section.Title)
		md.PlainText("")
		if section.Table != nil {
			md.Table(markdown.TableSet{
				Header: section.Table.Columns,
				Rows:   section.Table.Rows,
			})
		}
		md.PlainText("")
	}
}

// writeFooter writes the document footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [driftwatch](https://github.com/nao1215/driftwatch)*")
}
