package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file is specified.
	ErrNoInput = errors.New("no input specified: provide at least one HTML file path")

	// ErrUnknownMode is returned for a mode outside analyze/minify/aggressive.
	// This is caught during argument validation, before any file is touched.
	ErrUnknownMode = errors.New("unknown mode: must be analyze, minify, or aggressive")

	// ErrOutputWithAnalyze is returned when --output is combined with
	// analyze mode, which never writes a file.
	ErrOutputWithAnalyze = errors.New("output path not allowed: analyze mode writes no file")

	// ErrOutputWithMultipleInputs is returned when --output is combined with
	// more than one input; a single explicit path cannot serve several files.
	ErrOutputWithMultipleInputs = errors.New("output path not allowed with multiple inputs: derived paths are used instead")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
