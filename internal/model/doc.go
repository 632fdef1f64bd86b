// Package model defines the core data structures used throughout htmlslim.
//
// This package contains the following main types:
//   - SizeReport: Per-document size metrics produced by the analyzer
//   - Result: One processed file (input, mode, report, output)
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (analyzer, pipeline, report, history) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
