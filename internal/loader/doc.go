// Package loader reads HTML documents from disk as text.
//
// Exported course pages come from many tools and are not always clean UTF-8:
// some carry a BOM, some are UTF-16, and some contain stray bytes from broken
// templating. The loader decodes leniently so that analysis always has text
// to work with: UTF-16 input is converted via its BOM, and invalid byte
// sequences are dropped rather than reported as errors.
package loader
