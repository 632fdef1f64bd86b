package strip

import (
	"strings"

	"golang.org/x/net/html"
)

// flattenNativeInputs replaces checkbox/radio input elements with literal
// text markers that preserve the checked state (shape A).
//
// Checked detection is presence of the checked attribute. The tool this
// replaces also compared the attribute value against itself, which is always
// true; that was a latent bug, not intentional behavior.
func (s *Stripper) flattenNativeInputs(root *html.Node) {
	inputs := collectElements(root, func(n *html.Node) bool {
		if n.Data != "input" {
			return false
		}
		t := strings.ToLower(attrValue(n, "type"))
		return t == "checkbox" || t == "radio"
	})

	for _, n := range inputs {
		shape := ShapeCheckbox
		if strings.ToLower(attrValue(n, "type")) == "radio" {
			shape = ShapeRadio
		}
		insertTextBefore(n, markerText(Classification{Shape: shape, Checked: hasAttr(n, "checked")}))
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// flattenMarkerSpans replaces vendor marker spans with literal text markers
// (shape B). A candidate is a span whose class attribute carries the vendor
// prefix and whose following sibling div has non-empty text; anything else
// is left untouched. The marker text lands directly before the text div so
// the rendered line reads "[x] Answer text".
func (s *Stripper) flattenMarkerSpans(root *html.Node) {
	spans := collectElements(root, func(n *html.Node) bool {
		return n.Data == "span" &&
			strings.Contains(strings.ToLower(attrValue(n, "class")), s.markerPrefix)
	})

	for _, marker := range spans {
		textDiv := nextSiblingDiv(marker)
		if textDiv == nil || collapsedText(textDiv) == "" {
			continue
		}

		insertTextBefore(textDiv, markerText(Classify(marker, textDiv)))
		if marker.Parent != nil {
			marker.Parent.RemoveChild(marker)
		}
	}
}

// nextSiblingDiv returns the first following sibling element that is a div,
// skipping text nodes, comments, and non-div elements.
func nextSiblingDiv(n *html.Node) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && sib.Data == "div" {
			return sib
		}
	}
	return nil
}
