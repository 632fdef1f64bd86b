// Package analyzer computes size metrics for HTML documents.
//
// A single parse and tree walk produces a model.SizeReport: visible text
// length, comment bytes, script/style bytes and counts, inline style
// attribute bytes, and decoded sizes of embedded base64 data URIs. The
// analyzer is best-effort by design: malformed attributes and undecodable
// base64 payloads degrade to estimates instead of errors, so analysis
// completes for any input the parser accepts.
package analyzer
