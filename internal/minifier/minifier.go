package minifier

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// MIME types the HTML minify funcs are registered under. The second one
// selects the whitespace-preserving variant used after the strip transform.
const (
	mediaType               = "text/html"
	keepWhitespaceMediaType = "text/html; ws=keep"
)

var m = minify.New()

func init() {
	m.AddFunc(mediaType, minifyHTML)
	m.AddFunc(keepWhitespaceMediaType, minifyHTMLKeepWhitespace)
}

// minifyHTML runs the tdewolff HTML minifier in conservative mode: every
// element, attribute, end tag, and quote survives, so only whitespace,
// comments, and boolean attribute values change.
func minifyHTML(m *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	ins := &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	}
	return ins.Minify(m, w, r, params)
}

// minifyHTMLKeepWhitespace is the conservative configuration with text-node
// whitespace preserved verbatim. Flattening inserts marker text like "[x] "
// directly before a block element; collapsing would swallow the trailing
// space and glue the marker to the answer text.
func minifyHTMLKeepWhitespace(m *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	ins := &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepWhitespace:      true,
	}
	return ins.Minify(m, w, r, params)
}

// Minify returns the whitespace-only minified form of the document.
// Minification failures fall back to the input unchanged; a document that
// cannot be minified is still a valid result, just a larger one.
func Minify(doc string) string {
	return run(mediaType, doc)
}

// MinifyKeepWhitespace minifies without collapsing text-node whitespace.
// Used for the post-strip render, where flattening markers depend on their
// trailing space surviving.
func MinifyKeepWhitespace(doc string) string {
	return run(keepWhitespaceMediaType, doc)
}

// run minifies doc under the given registered type, keeping data: URIs
// byte-identical.
func run(mimetype, doc string) string {
	shielded, token, uris := shieldDataURIs(doc)
	out, err := m.String(mimetype, shielded)
	if err != nil {
		return doc
	}
	return restoreDataURIs(out, token, uris)
}

// dataURIPattern matches a data: URI inside an attribute value, up to the
// closing quote, tag end, or whitespace.
var dataURIPattern = regexp.MustCompile(`data:[^"'>\s]+`)

// shieldDataURIs swaps every data: URI for an opaque placeholder token.
// The minifier rewrites URL attribute values (re-encoding base64 payloads
// among other things), but embedded resources must survive byte-for-byte;
// a placeholder that looks like a relative path passes through untouched.
func shieldDataURIs(doc string) (shielded, token string, uris []string) {
	if !strings.Contains(doc, "data:") {
		return doc, "", nil
	}

	token = uniqueToken(doc)
	shielded = dataURIPattern.ReplaceAllStringFunc(doc, func(uri string) string {
		uris = append(uris, uri)
		return fmt.Sprintf("%s%d.", token, len(uris)-1)
	})
	return shielded, token, uris
}

// restoreDataURIs puts the original URIs back in place of their placeholders.
func restoreDataURIs(doc, token string, uris []string) string {
	for i, uri := range uris {
		doc = strings.Replace(doc, fmt.Sprintf("%s%d.", token, i), uri, 1)
	}
	return doc
}

// uniqueToken returns a placeholder prefix that does not occur in doc, so
// restoration can never touch original content. The trailing "." after the
// index keeps "token1." from matching inside "token10.".
func uniqueToken(doc string) string {
	token := "htmlslim-uri-"
	for strings.Contains(doc, token) {
		token += "x"
	}
	return token
}
