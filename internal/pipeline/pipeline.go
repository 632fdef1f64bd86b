package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/htmlslim/htmlslim/internal/analyzer"
	"github.com/htmlslim/htmlslim/internal/loader"
	"github.com/htmlslim/htmlslim/internal/minifier"
	"github.com/htmlslim/htmlslim/internal/model"
	"github.com/htmlslim/htmlslim/internal/strip"
)

// Processor runs a single HTML file through the processing sequence:
// load, analyze, transform according to the mode, and write the output.
//
// Design decision: We use one Processor with a fixed sequence rather than a
// generic step interface because:
//  1. The sequence is the same for every mode; only the transform differs
//  2. Each phase feeds typed data to the next (string in, report out),
//     which a generic step signature would erase
//  3. A fixed sequence is easier to reason about for a file-in, file-out tool
type Processor struct {
	// mode selects analyze, minify, or aggressive processing.
	mode model.Mode

	// outputPath is the explicit output path override.
	// Empty means the path is derived from the input path and mode.
	outputPath string

	// analyzer measures the document before any transformation.
	analyzer *analyzer.Analyzer

	// stripper performs the aggressive transformation. Nil unless the
	// mode is aggressive.
	stripper *strip.Stripper

	// logger is used for structured logging during processing.
	logger *slog.Logger
}

// Option is a function that configures a Processor.
// This follows the functional options pattern for clean API design.
type Option func(*Processor)

// WithLogger sets a custom logger for the processor.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithOutputPath sets an explicit output file path.
// When empty, the output path is derived as <input-without-ext>.<mode>.html.
func WithOutputPath(path string) Option {
	return func(p *Processor) {
		p.outputPath = path
	}
}

// WithAnalyzer sets the analyzer used to measure each document.
// If not set, a default analyzer without EXIF inspection is used.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(p *Processor) {
		p.analyzer = a
	}
}

// WithStripper sets the stripper used in aggressive mode.
// If not set, a default stripper is created when the mode is aggressive.
func WithStripper(s *strip.Stripper) Option {
	return func(p *Processor) {
		p.stripper = s
	}
}

// NewProcessor creates a Processor for the given mode.
func NewProcessor(mode model.Mode, opts ...Option) *Processor {
	p := &Processor{mode: mode}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.analyzer == nil {
		p.analyzer = analyzer.New()
	}
	if p.stripper == nil && mode == model.ModeAggressive {
		p.stripper = strip.New()
	}

	return p
}

// Process runs one input file through the pipeline and returns the result.
// In analyze mode no output file is written and the result's OutputPath
// is empty.
func (p *Processor) Process(ctx context.Context, inputPath string) (*model.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p.logger.Debug("loading input",
		"path", inputPath,
		"mode", p.mode,
	)

	doc, err := loader.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	report, err := p.analyzer.Analyze(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", inputPath, err)
	}

	result := &model.Result{
		InputPath:   inputPath,
		Mode:        p.mode,
		Report:      *report,
		ProcessedAt: time.Now(),
	}

	if p.mode == model.ModeAnalyze {
		return result, nil
	}

	output, err := p.transform(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to transform %s: %w", inputPath, err)
	}

	outputPath := p.outputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath, p.mode)
	}

	if err := os.WriteFile(outputPath, []byte(output), 0600); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	p.logger.Debug("wrote output",
		"path", outputPath,
		"size", len(output),
	)

	result.OutputPath = outputPath
	result.OutputSize = len(output)
	return result, nil
}

// transform applies the mode-specific reduction to the document.
func (p *Processor) transform(doc string) (string, error) {
	switch p.mode {
	case model.ModeMinify:
		return minifier.Minify(doc), nil
	case model.ModeAggressive:
		return p.stripper.Strip(doc)
	default:
		return "", fmt.Errorf("mode %q produces no output", p.mode)
	}
}

// DefaultOutputPath derives the output path for an input file and mode.
// "page.html" processed in minify mode becomes "page.minify.html".
// An input without an extension gets the suffix appended as-is.
func DefaultOutputPath(inputPath string, mode model.Mode) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "." + string(mode) + ".html"
}
