// Package minifier provides whitespace-only HTML minification.
//
// The transform collapses insignificant whitespace between tags, strips
// comments, and shortens boolean attributes (checked="checked" -> checked)
// without removing any element or attribute. Content inside preformatted
// elements is preserved verbatim. The output is deterministic and minifying
// already-minified text changes nothing further.
package minifier
