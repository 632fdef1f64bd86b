// Package strip implements the aggressive content-preserving transform.
//
// The transform removes scripts, styles, stylesheet/preload links, tracking
// frames, and inline event handlers while keeping visible content, and can
// flatten checkbox/radio state into plain-text markers so a reader of the
// stripped page still sees which choices were selected. Two markup shapes
// are handled: native input elements and vendor-specific marker spans that
// simulate form controls visually.
//
// The transforms are best-effort heuristics, not validators: anything that
// does not match cleanly is skipped, never an error.
package strip
