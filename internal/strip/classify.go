package strip

import (
	"strings"

	"golang.org/x/net/html"
)

// Shape distinguishes the two control kinds a marker can represent.
type Shape int

// Marker shapes.
const (
	ShapeCheckbox Shape = iota
	ShapeRadio
)

// Classification is the outcome of inspecting one marker element.
type Classification struct {
	Shape   Shape
	Checked bool
}

// markerTexts maps every classification to its literal text marker.
// These are independent literals on purpose: deriving the unchecked variant
// by substituting the glyph inside the checked one is a stringly-typed trap.
var markerTexts = map[Classification]string{
	{Shape: ShapeCheckbox, Checked: true}:  "[x] ",
	{Shape: ShapeCheckbox, Checked: false}: "[ ] ",
	{Shape: ShapeRadio, Checked: true}:     "(•) ",
	{Shape: ShapeRadio, Checked: false}:    "( ) ",
}

// markerText returns the literal marker for a classification.
func markerText(c Classification) string {
	return markerTexts[c]
}

// Classify decides shape and checked state for a vendor marker span.
// textDiv is the marker's following sibling div holding the answer text.
//
// The heuristics are coupled to one vendor's markup and inherently fragile,
// which is why they live here in one place with no tree mutation:
//
//	a. marker style with border-radius 100% or width 32px means radio
//	b. a result-state class on the marker means checked
//	c. otherwise an inner indicator (font icon or state background) means
//	   checked unless the indicator is visibility: hidden
//	d. otherwise opacity 0.6 on the text div means unchecked
//	e. otherwise unchecked
func Classify(marker, textDiv *html.Node) Classification {
	style := strings.ToLower(attrValue(marker, "style"))
	shape := ShapeCheckbox
	if strings.Contains(style, "border-radius: 100%") ||
		strings.Contains(style, "border-radius:100%") ||
		strings.Contains(style, "width: 32px") {
		shape = ShapeRadio
	}

	classes := strings.ToLower(attrValue(marker, "class"))
	if strings.Contains(classes, "result-state") {
		return Classification{Shape: shape, Checked: true}
	}

	if inner := findIndicator(marker); inner != nil {
		innerStyle := strings.ToLower(attrValue(inner, "style"))
		return Classification{
			Shape:   shape,
			Checked: !strings.Contains(innerStyle, "visibility: hidden"),
		}
	}

	if textDiv != nil {
		sibStyle := strings.ToLower(attrValue(textDiv, "style"))
		if strings.Contains(sibStyle, "opacity: 0.6") || strings.Contains(sibStyle, "opacity:.6") {
			return Classification{Shape: shape, Checked: false}
		}
	}

	return Classification{Shape: shape, Checked: false}
}

// indicatorMatchers identify inner state indicators, in order of preference.
var indicatorMatchers = []func(token string) bool{
	func(token string) bool { return token == "fa" },
	func(token string) bool { return strings.HasSuffix(token, "result-state-background") },
	func(token string) bool { return strings.HasSuffix(token, "wrong-state-background") },
}

// findIndicator returns the first descendant of marker whose class list
// matches an indicator, trying matchers in order of preference.
func findIndicator(marker *html.Node) *html.Node {
	for _, matches := range indicatorMatchers {
		if n := findDescendant(marker, func(n *html.Node) bool {
			for _, token := range strings.Fields(strings.ToLower(attrValue(n, "class"))) {
				if matches(token) {
					return true
				}
			}
			return false
		}); n != nil {
			return n
		}
	}
	return nil
}

// findDescendant returns the first element below root matching pred, in
// document order. root itself is not considered.
func findDescendant(root *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if found := findDescendant(c, pred); found != nil {
			return found
		}
	}
	return nil
}
