package strip

import (
	"strings"
	"testing"
)

// TestStripRemovesMachinery tests that scripts, styles, frames, and event
// handlers never survive the aggressive transform.
func TestStripRemovesMachinery(t *testing.T) {
	t.Parallel()

	in := `<html><head>
		<script src="track.js"></script>
		<style>p{color:red}</style>
		<link rel="stylesheet" href="a.css">
		<link rel="PRELOAD" href="b.js">
		<link rel="icon" href="fav.ico">
	</head><body onload="init()">
		<iframe src="ads.html"></iframe>
		<embed src="x.swf">
		<object data="y"></object>
		<p onclick="go()" title="kept">Question text</p>
	</body></html>`

	out, err := New().Strip(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, banned := range []string{"<script", "<style", "<iframe", "<embed", "<object", "onload", "onclick", "a.css", "b.js"} {
		if strings.Contains(out, banned) {
			t.Errorf("expected %q removed, got %q", banned, out)
		}
	}
	if !strings.Contains(out, "Question text") {
		t.Errorf("expected visible text preserved, got %q", out)
	}
	if !strings.Contains(out, `title="kept"`) {
		t.Errorf("expected non-handler attribute preserved, got %q", out)
	}
	if !strings.Contains(out, "fav.ico") {
		t.Errorf("expected icon link preserved, got %q", out)
	}
}

// TestStripComments tests comment removal.
func TestStripComments(t *testing.T) {
	t.Parallel()

	out, err := New().Strip("<p>a</p><!-- secret --><p>b</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "secret") {
		t.Errorf("expected comment removed, got %q", out)
	}
}

// TestStripImages tests the keep-images switch.
func TestStripImages(t *testing.T) {
	t.Parallel()

	in := `<p>before</p><img src="data:image/png;base64,QUJD" alt="pic"><p>after</p>`

	t.Run("images removed by default", func(t *testing.T) {
		t.Parallel()
		out, err := New().Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, "<img") {
			t.Errorf("expected img removed, got %q", out)
		}
	})

	t.Run("keep-images preserves src", func(t *testing.T) {
		t.Parallel()
		out, err := New(WithKeepImages(true)).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, `src="data:image/png;base64,QUJD"`) {
			t.Errorf("expected data URI preserved, got %q", out)
		}
	})
}

// TestFlattenNativeInputs tests shape A flattening against the literal
// marker strings.
func TestFlattenNativeInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		html   string
		marker string
	}{
		{"checked checkbox", `<input type="checkbox" checked>`, "[x] "},
		{"unchecked checkbox", `<input type="checkbox">`, "[ ] "},
		{"checked radio", `<input type="radio" checked>`, "(•) "},
		{"unchecked radio", `<input type="radio">`, "( ) "},
		{"uppercase type attribute", `<input type="CHECKBOX" checked>`, "[x] "},
		{"legacy checked value", `<input type="checkbox" checked="checked">`, "[x] "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := mustParse(t, tt.html)
			New(WithFlattenInputs(true)).flattenNativeInputs(root)

			got := renderNode(t, root)
			if !strings.Contains(got, tt.marker) {
				t.Errorf("expected marker %q, got %q", tt.marker, got)
			}
			if strings.Contains(got, "<input") {
				t.Errorf("expected input removed, got %q", got)
			}
		})
	}
}

// TestFlattenIgnoresOtherInputs tests that text inputs survive flattening.
func TestFlattenIgnoresOtherInputs(t *testing.T) {
	t.Parallel()

	out, err := New(WithFlattenInputs(true)).Strip(`<input type="text" value="answer">`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<input") {
		t.Errorf("expected text input preserved, got %q", out)
	}
}

// TestFlattenMarkerSpans tests shape B flattening.
func TestFlattenMarkerSpans(t *testing.T) {
	t.Parallel()

	t.Run("result-state span becomes checked checkbox text", func(t *testing.T) {
		t.Parallel()
		in := `<span class="uu-coursekit-result-state"></span><div>Answer text</div>`
		out, err := New(WithFlattenInputs(true)).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The space after the marker is part of the literal; the final
		// minify pass must not swallow it.
		if !strings.Contains(out, "[x] <div>Answer text</div>") {
			t.Errorf("expected marker with trailing space before the answer div, got %q", out)
		}
		if strings.Contains(out, "<span") {
			t.Errorf("expected marker span removed, got %q", out)
		}
	})

	t.Run("span without sibling div is left untouched", func(t *testing.T) {
		t.Parallel()
		in := `<p><span class="uu-coursekit-dark-text">loose</span></p>`
		out, err := New(WithFlattenInputs(true)).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "<span") {
			t.Errorf("expected span preserved, got %q", out)
		}
	})

	t.Run("span with empty sibling div is left untouched", func(t *testing.T) {
		t.Parallel()
		in := `<span class="uu-coursekit-x"></span><div>   </div>`
		out, err := New(WithFlattenInputs(true)).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "<span") {
			t.Errorf("expected span preserved, got %q", out)
		}
	})

	t.Run("unrelated spans are never candidates", func(t *testing.T) {
		t.Parallel()
		in := `<span class="highlight">note</span><div>text</div>`
		out, err := New(WithFlattenInputs(true)).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "<span") {
			t.Errorf("expected span preserved, got %q", out)
		}
	})

	t.Run("custom vendor prefix", func(t *testing.T) {
		t.Parallel()
		in := `<span class="acme-kit-result-state"></span><div>Pick me</div>`
		out, err := New(WithFlattenInputs(true), WithMarkerClassPrefix("acme-kit")).Strip(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "[x]") {
			t.Errorf("expected marker emitted for custom prefix, got %q", out)
		}
	})
}

// TestFlattenMarkersSurviveMinify tests that the marker literals come out
// of the full Strip pipeline intact, trailing space included, even when a
// tag follows immediately.
func TestFlattenMarkersSurviveMinify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "checked checkbox before label",
			in:   `<input type="checkbox" checked><label>Pick</label>`,
			want: "[x] <label>Pick</label>",
		},
		{
			name: "unchecked radio before label",
			in:   `<input type="radio"><label>Skip</label>`,
			want: "( ) <label>Skip</label>",
		},
		{
			name: "checked radio marker span",
			in:   `<span class="uu-coursekit-result-state" style="width: 32px"></span><div>Option</div>`,
			want: "(•) <div>Option</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := New(WithFlattenInputs(true)).Strip(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, out)
			}
		})
	}
}

// TestStripWithoutFlatten tests that inputs survive when flattening is off.
func TestStripWithoutFlatten(t *testing.T) {
	t.Parallel()

	out, err := New().Strip(`<input type="checkbox" checked>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<input") {
		t.Errorf("expected input preserved without flattening, got %q", out)
	}
}

// TestStripMalformedAttributes tests that structural anomalies are skipped,
// never fatal.
func TestStripMalformedAttributes(t *testing.T) {
	t.Parallel()

	in := `<link href="no-rel.css"><input><span class="uu-coursekit"></span>`
	if _, err := New(WithFlattenInputs(true)).Strip(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
