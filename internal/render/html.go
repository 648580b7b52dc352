package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// pageTemplate is the self-contained report page. Parsed once; a parse
// failure is a build defect, so Must is appropriate.
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// HTMLWriter outputs report documents as a self-contained HTML page with
// inline styling, suitable for opening directly in a browser.
type HTMLWriter struct {
	output io.Writer
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{output: output}
}

// Write renders the document to the output.
// Returns the number of bytes written and any error encountered.
func (w *HTMLWriter) Write(doc *Doc) (int, error) {
	cw := &countingWriter{w: w.output}
	if err := pageTemplate.Execute(cw, doc); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// countingWriter counts bytes passed through to the wrapped writer.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
