// Package pipeline orchestrates processing of HTML input files.
//
// The Processor runs a single file through the fixed sequence of
// loading, size analysis, mode-specific transformation, and output
// writing, producing a model.Result. The BatchProcessor runs many
// files through the same Processor concurrently with a bounded
// goroutine limit.
//
// The pipeline owns sequencing and file I/O only; the measurement and
// transformation logic lives in the analyzer, minifier, and strip
// packages.
package pipeline
