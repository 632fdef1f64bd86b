package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/htmlslim/htmlslim/internal/model"
)

// sampleResult builds a result with distinctive values for format tests.
func sampleResult() *model.Result {
	return &model.Result{
		InputPath: "quiz.html",
		Mode:      model.ModeAggressive,
		Report: model.SizeReport{
			FileSize:             1234567,
			MinifiedSize:         1000000,
			TextChars:            5421,
			CommentsBytes:        120,
			ScriptsBytes:         45000,
			ScriptsCount:         7,
			StylesBytes:          2048,
			StylesCount:          2,
			InlineStyleAttrBytes: 333,
			DataURIBytes:         98765,
			ImagesCount:          4,
		},
		OutputPath:  "quiz.aggressive.html",
		OutputSize:  234567,
		ProcessedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestTextWriterFormat tests the stable console format byte-for-byte.
func TestTextWriterFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewTextWriter(&buf).Write(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes written, buffer has %d", n, buf.Len())
	}

	want := `=== Analysis ===
File size: 1,234,567 B
Minified (no removals) size: 1,000,000 B
Visible text characters (approx): 5,421
Comments total bytes: 120
<script> content bytes: 45,000 (count: 7)
<style> content bytes: 2,048 (count: 2)
Inline style attribute bytes: 333
Inline data: URI bytes (img/src, css): 98,765 (images: 4)

=== Output ===
Wrote: quiz.aggressive.html
New size: 234,567 B (saved 1,000,000 B, 81.00%)
`
	if buf.String() != want {
		t.Errorf("report format mismatch:\ngot:\n%s\nexpected:\n%s", buf.String(), want)
	}
}

// TestTextWriterAnalyzeMode tests that no output section appears without an
// output file.
func TestTextWriterAnalyzeMode(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Mode = model.ModeAnalyze
	result.OutputPath = ""
	result.OutputSize = 0

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "=== Output ===") {
		t.Errorf("expected no output section, got:\n%s", buf.String())
	}
}

// TestTextWriterZeroSize tests the zero-percent rule for empty input.
func TestTextWriterZeroSize(t *testing.T) {
	t.Parallel()

	result := &model.Result{
		InputPath:  "empty.html",
		Mode:       model.ModeMinify,
		OutputPath: "empty.minify.html",
	}

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "saved 0 B, 0.00%") {
		t.Errorf("expected zero savings line, got:\n%s", buf.String())
	}
}

// TestTextWriterEXIFLine tests the optional EXIF line.
func TestTextWriterEXIFLine(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Report.EXIFImages = 2

	t.Run("hidden by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "EXIF") {
			t.Errorf("expected no EXIF line by default, got:\n%s", buf.String())
		}
	})

	t.Run("shown when enabled", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf, WithEXIFLine(true)).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Embedded images with EXIF metadata: 2") {
			t.Errorf("expected EXIF line, got:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests that JSON output round-trips.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Report.FileSize != 1234567 {
		t.Errorf("FileSize = %d, expected 1234567", decoded.Report.FileSize)
	}
	if decoded.Mode != model.ModeAggressive {
		t.Errorf("Mode = %q, expected aggressive", decoded.Mode)
	}
}

// TestMarkdownWriter tests the markdown report structure.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# HTML Size Analysis", "## Size Contributors", "1,234,567", "## Output", "quiz.aggressive.html"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q, got:\n%s", want, out)
		}
	}
}
