package analyzer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/htmlslim/htmlslim/internal/minifier"
	"github.com/htmlslim/htmlslim/internal/model"
)

// HTML element names the analyzer treats specially.
const (
	elementScript = "script"
	elementStyle  = "style"
	elementImg    = "img"
	elementSource = "source"
)

// Analyzer computes a SizeReport for one HTML document.
//
// Design decision: We use golang.org/x/net/html rather than regex because it
// correctly handles the malformed markup common in tool-exported pages and
// gives us a proper tree to walk. A single walk collects every metric; the
// visible-text measurement simply skips script/style subtrees instead of
// re-parsing a stripped copy.
type Analyzer struct {
	// inspectEXIF enables EXIF detection in decoded data-URI images.
	inspectEXIF bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEXIFInspection enables counting embedded images that carry EXIF
// metadata. This costs one extra scan per decoded data-URI payload.
func WithEXIFInspection(enabled bool) Option {
	return func(a *Analyzer) {
		a.inspectEXIF = enabled
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses doc and returns its size report.
// The only error source is the parser itself; metric collection never fails.
func (a *Analyzer) Analyze(doc string) (*model.SizeReport, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	report := &model.SizeReport{
		FileSize:     len(doc),
		MinifiedSize: len(minifier.Minify(doc)),
	}

	var textParts []string

	var walk func(n *html.Node, inRawText bool)
	walk = func(n *html.Node, inRawText bool) {
		switch n.Type {
		case html.ElementNode:
			a.measureElement(n, report)
			if n.Data == elementScript || n.Data == elementStyle {
				inRawText = true
			}
		case html.TextNode:
			if !inRawText {
				if part := collapseWhitespace(n.Data); part != "" {
					textParts = append(textParts, part)
				}
			}
		case html.CommentNode:
			report.CommentsBytes += len(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inRawText)
		}
	}
	walk(root, false)

	report.TextChars = utf8.RuneCountInString(strings.Join(textParts, " "))
	return report, nil
}

// measureElement accumulates per-element metrics.
func (a *Analyzer) measureElement(n *html.Node, report *model.SizeReport) {
	switch n.Data {
	case elementScript:
		report.ScriptsCount++
		report.ScriptsBytes += len(textContent(n))
		if src, ok := attrValue(n, "src"); ok {
			report.ScriptsBytes += len(src)
		}

	case elementStyle:
		report.StylesCount++
		report.StylesBytes += len(textContent(n))

	case elementImg, elementSource:
		// Prefer src; fall back to srcset when src is empty or absent.
		src, _ := attrValue(n, "src")
		if src == "" {
			src, _ = attrValue(n, "srcset")
		}
		if strings.HasPrefix(src, "data:") {
			report.ImagesCount++
			bytes, withEXIF := a.scanDataURIs(src)
			report.DataURIBytes += bytes
			report.EXIFImages += withEXIF
		}
	}

	if style, ok := attrValue(n, "style"); ok {
		report.InlineStyleAttrBytes += len(style)
		bytes, _ := a.scanDataURIs(style)
		report.DataURIBytes += bytes
	}
}

// textContent concatenates all descendant text nodes of n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapseWhitespace trims s and collapses internal runs of whitespace to
// single spaces. Returns "" for whitespace-only input.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// attrValue returns the value of the named attribute and whether it exists.
func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
