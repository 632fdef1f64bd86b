package strip

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/htmlslim/htmlslim/internal/minifier"
)

// DefaultMarkerClassPrefix identifies the vendor's simulated form controls.
// Course exports from the uu-coursekit toolchain mark checkbox/radio visuals
// with classes carrying this prefix.
const DefaultMarkerClassPrefix = "uu-coursekit"

// Stripper applies the aggressive strip transform to HTML documents.
type Stripper struct {
	// keepImages leaves img elements (including data URIs) untouched.
	keepImages bool

	// flattenInputs converts checkbox/radio state to plain-text markers.
	flattenInputs bool

	// markerPrefix is the vendor class prefix for simulated form controls.
	markerPrefix string
}

// Option configures a Stripper.
type Option func(*Stripper)

// WithKeepImages controls whether img elements survive the strip.
func WithKeepImages(keep bool) Option {
	return func(s *Stripper) {
		s.keepImages = keep
	}
}

// WithFlattenInputs enables checkbox/radio flattening.
func WithFlattenInputs(flatten bool) Option {
	return func(s *Stripper) {
		s.flattenInputs = flatten
	}
}

// WithMarkerClassPrefix overrides the vendor class prefix used to find
// simulated form controls. The empty string keeps the default.
func WithMarkerClassPrefix(prefix string) Option {
	return func(s *Stripper) {
		if prefix != "" {
			s.markerPrefix = prefix
		}
	}
}

// New creates a Stripper.
func New(opts ...Option) *Stripper {
	s := &Stripper{markerPrefix: DefaultMarkerClassPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strip removes non-textual machinery from doc and returns the reduced
// markup, minified. Step order matters: later steps depend on the structure
// left by earlier ones.
func (s *Stripper) Strip(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", err
	}

	removeAll(collectElements(root, func(n *html.Node) bool {
		return n.Data == "script" || n.Data == "style"
	}))

	removeAll(collectElements(root, func(n *html.Node) bool {
		return n.Data == "link" && isResourceLink(n)
	}))

	removeAll(collectElements(root, func(n *html.Node) bool {
		return n.Data == "iframe" || n.Data == "embed" || n.Data == "object"
	}))

	for _, n := range collectElements(root, hasEventHandler) {
		dropEventHandlers(n)
	}

	if !s.keepImages {
		removeAll(collectElements(root, func(n *html.Node) bool {
			return n.Data == "img"
		}))
	}

	removeAll(collectNodes(root, func(n *html.Node) bool {
		return n.Type == html.CommentNode
	}))

	if s.flattenInputs {
		s.flattenNativeInputs(root)
		s.flattenMarkerSpans(root)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	// Collapsing whitespace here would swallow the trailing space of
	// flattening markers inserted before block elements.
	return minifier.MinifyKeepWhitespace(buf.String()), nil
}

// isResourceLink reports whether a link element loads an external resource
// the stripped document no longer needs. The rel attribute is treated as a
// case-insensitive, space-joined token list.
func isResourceLink(n *html.Node) bool {
	rel := strings.ToLower(strings.Join(strings.Fields(attrValue(n, "rel")), " "))
	return strings.Contains(rel, "stylesheet") ||
		strings.Contains(rel, "preload") ||
		strings.Contains(rel, "preconnect")
}

// hasEventHandler reports whether any attribute name starts with "on".
func hasEventHandler(n *html.Node) bool {
	for _, attr := range n.Attr {
		if len(attr.Key) >= 2 && strings.EqualFold(attr.Key[:2], "on") {
			return true
		}
	}
	return false
}

// dropEventHandlers removes every on* attribute from n.
func dropEventHandlers(n *html.Node) {
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if len(attr.Key) >= 2 && strings.EqualFold(attr.Key[:2], "on") {
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}

// collectNodes gathers matching nodes into an ordered slice before any
// mutation happens. Removing nodes mid-traversal corrupts the walk, so all
// transforms collect first and mutate after.
func collectNodes(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// collectElements gathers matching element nodes in document order.
func collectElements(root *html.Node, match func(*html.Node) bool) []*html.Node {
	return collectNodes(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && match(n)
	})
}

// removeAll detaches every node from its parent.
func removeAll(nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// attrValue returns the value of the named attribute, or "" when absent.
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasAttr reports whether the named attribute is present.
func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// collapsedText returns the whitespace-collapsed text content of n's subtree.
func collapsedText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// insertTextBefore places a new text node containing text directly before n.
func insertTextBefore(n *html.Node, text string) {
	if n.Parent == nil {
		return
	}
	n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, n)
}
