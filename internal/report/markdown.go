package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/htmlslim/htmlslim/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables, lists, and GitHub-flavored
// alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("HTML Size Analysis")
	md.PlainText("")
	md.PlainTextf("Input: `%s` (mode: %s)", result.InputPath, result.Mode)
	md.PlainText("")

	w.writeAnalysis(md, &result.Report)
	w.writeOutput(md, result)

	return len(md.String()), md.Build()
}

// writeAnalysis writes the size-contributor table.
func (w *MarkdownWriter) writeAnalysis(md *markdown.Markdown, r *model.SizeReport) {
	md.H2("Size Contributors")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"File size", comma(r.FileSize) + " B"},
			{"Minified (no removals) size", comma(r.MinifiedSize) + " B"},
			{"Visible text characters (approx)", comma(r.TextChars)},
			{"Comment bytes", comma(r.CommentsBytes)},
			{"Script bytes", comma(r.ScriptsBytes) + " (count: " + strconv.Itoa(r.ScriptsCount) + ")"},
			{"Style bytes", comma(r.StylesBytes) + " (count: " + strconv.Itoa(r.StylesCount) + ")"},
			{"Inline style attribute bytes", comma(r.InlineStyleAttrBytes)},
			{"Inline data URI bytes", comma(r.DataURIBytes) + " (images: " + strconv.Itoa(r.ImagesCount) + ")"},
		},
	})
	md.PlainText("")
}

// writeOutput writes the size-comparison section when output was written.
func (w *MarkdownWriter) writeOutput(md *markdown.Markdown, result *model.Result) {
	if result.OutputPath == "" {
		return
	}

	md.H2("Output")
	md.PlainText("")
	md.PlainTextf("Wrote `%s`: %s B (saved %s B, %.2f%%)",
		result.OutputPath, comma(result.OutputSize), comma(result.SavedBytes()), result.SavedPercent())
	md.PlainText("")

	switch {
	case result.SavedPercent() >= 50:
		md.Tip("Reduced to less than half of the original size.")
	case result.SavedBytes() <= 0:
		md.Note("No size reduction achieved; the input was already compact.")
	}
}
