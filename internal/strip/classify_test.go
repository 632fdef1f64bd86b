package strip

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// mustParse parses markup into a document tree.
func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse markup: %v", err)
	}
	return root
}

// renderNode serializes a tree back to markup.
func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("failed to render tree: %v", err)
	}
	return buf.String()
}

// markerAndDiv parses markup and returns the first span and its following
// sibling div.
func markerAndDiv(t *testing.T, markup string) (*html.Node, *html.Node) {
	t.Helper()
	root := mustParse(t, markup)
	marker := findDescendant(root, func(n *html.Node) bool { return n.Data == "span" })
	if marker == nil {
		t.Fatal("no span in test markup")
	}
	return marker, nextSiblingDiv(marker)
}

// TestClassify tests the marker classification heuristics.
func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   Classification
	}{
		{
			name:   "border-radius 100% means radio",
			markup: `<span class="uu-coursekit-box" style="border-radius: 100%"></span><div>a</div>`,
			want:   Classification{Shape: ShapeRadio, Checked: false},
		},
		{
			name:   "border-radius without space means radio",
			markup: `<span class="uu-coursekit-box" style="border-radius:100%"></span><div>a</div>`,
			want:   Classification{Shape: ShapeRadio, Checked: false},
		},
		{
			name:   "width 32px means radio",
			markup: `<span class="uu-coursekit-box" style="width: 32px"></span><div>a</div>`,
			want:   Classification{Shape: ShapeRadio, Checked: false},
		},
		{
			name:   "result-state class means checked",
			markup: `<span class="uu-coursekit-result-state"></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: true},
		},
		{
			name:   "result-state radio",
			markup: `<span class="uu-coursekit-result-state" style="width: 32px"></span><div>a</div>`,
			want:   Classification{Shape: ShapeRadio, Checked: true},
		},
		{
			name:   "visible font icon means checked",
			markup: `<span class="uu-coursekit-box"><i class="fa"></i></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: true},
		},
		{
			name:   "hidden font icon means unchecked",
			markup: `<span class="uu-coursekit-box"><i class="fa" style="visibility: hidden"></i></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: false},
		},
		{
			name:   "visible state background means checked",
			markup: `<span class="uu-coursekit-box"><span class="uu-coursekit-result-state-background"></span></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: true},
		},
		{
			name:   "hidden wrong-state background means unchecked",
			markup: `<span class="uu-coursekit-box"><span class="uu-coursekit-wrong-state-background" style="visibility: hidden"></span></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: false},
		},
		{
			name:   "dimmed sibling text means unchecked",
			markup: `<span class="uu-coursekit-box"></span><div style="opacity: 0.6">a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: false},
		},
		{
			name:   "dimmed sibling dotless spelling",
			markup: `<span class="uu-coursekit-box"></span><div style="opacity:.6">a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: false},
		},
		{
			name:   "no signals defaults to unchecked",
			markup: `<span class="uu-coursekit-box"></span><div>a</div>`,
			want:   Classification{Shape: ShapeCheckbox, Checked: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			marker, textDiv := markerAndDiv(t, tt.markup)
			if got := Classify(marker, textDiv); got != tt.want {
				t.Errorf("Classify() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

// TestMarkerText tests the literal marker lookup for every classification.
// The unchecked variants are their own literals, never derived from the
// checked ones.
func TestMarkerText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Classification
		want string
	}{
		{"checked checkbox", Classification{Shape: ShapeCheckbox, Checked: true}, "[x] "},
		{"unchecked checkbox", Classification{Shape: ShapeCheckbox, Checked: false}, "[ ] "},
		{"checked radio", Classification{Shape: ShapeRadio, Checked: true}, "(•) "},
		{"unchecked radio", Classification{Shape: ShapeRadio, Checked: false}, "( ) "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := markerText(tt.c); got != tt.want {
				t.Errorf("markerText(%+v) = %q, expected %q", tt.c, got, tt.want)
			}
		})
	}
}
