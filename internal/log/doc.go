// Package log provides logging helpers for htmlslim.
//
// Debug logging in this tool routinely carries document fragments: attribute
// values, rejected markup, data-URI prefixes. A single inline image can be
// megabytes of base64, which makes raw slog output unusable. TruncateHandler
// wraps any slog.Handler and caps string attribute values before they reach
// the terminal.
package log
