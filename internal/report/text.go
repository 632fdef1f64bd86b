package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/htmlslim/htmlslim/internal/model"
)

// TextWriter outputs the stable console report format.
//
// The layout is load-bearing: people diff these reports across runs and
// scripts scrape the numbers, so field order and wording stay fixed.
// Sizes carry thousands separators; counts are plain integers.
type TextWriter struct {
	baseWriter

	// showEXIF adds the embedded-image EXIF line to the analysis section.
	showEXIF bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithEXIFLine includes the count of embedded images carrying EXIF metadata.
// Off by default so the report stays byte-identical for existing consumers.
func WithEXIFLine(show bool) TextWriterOption {
	return func(w *TextWriter) {
		w.showEXIF = show
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the analysis section and, when an output file was written,
// the output section with the size comparison.
func (w *TextWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	r := result.Report
	sb.WriteString("=== Analysis ===\n")
	fmt.Fprintf(&sb, "File size: %s B\n", comma(r.FileSize))
	fmt.Fprintf(&sb, "Minified (no removals) size: %s B\n", comma(r.MinifiedSize))
	fmt.Fprintf(&sb, "Visible text characters (approx): %s\n", comma(r.TextChars))
	fmt.Fprintf(&sb, "Comments total bytes: %s\n", comma(r.CommentsBytes))
	fmt.Fprintf(&sb, "<script> content bytes: %s (count: %d)\n", comma(r.ScriptsBytes), r.ScriptsCount)
	fmt.Fprintf(&sb, "<style> content bytes: %s (count: %d)\n", comma(r.StylesBytes), r.StylesCount)
	fmt.Fprintf(&sb, "Inline style attribute bytes: %s\n", comma(r.InlineStyleAttrBytes))
	fmt.Fprintf(&sb, "Inline data: URI bytes (img/src, css): %s (images: %d)\n", comma(r.DataURIBytes), r.ImagesCount)

	if w.showEXIF {
		fmt.Fprintf(&sb, "Embedded images with EXIF metadata: %d\n", r.EXIFImages)
	}

	if result.OutputPath != "" {
		sb.WriteString("\n=== Output ===\n")
		fmt.Fprintf(&sb, "Wrote: %s\n", result.OutputPath)
		fmt.Fprintf(&sb, "New size: %s B (saved %s B, %.2f%%)\n",
			comma(result.OutputSize), comma(result.SavedBytes()), result.SavedPercent())
	}

	return w.output.Write([]byte(sb.String()))
}

// comma formats n with thousands separators.
func comma(n int) string {
	return humanize.Comma(int64(n))
}
