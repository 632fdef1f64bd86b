package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/htmlslim/htmlslim/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent processing of multiple input files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Processor because:
//  1. It keeps the Processor focused on single-file execution
//  2. It allows different batch strategies (e.g., rate limiting, retries)
//  3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// processor runs each individual file. Explicit output paths are
	// rejected at config validation for multi-file runs, so one shared
	// processor is safe here.
	processor *Processor

	// concurrency is the maximum number of files processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrently processed files.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor driving the given processor.
func NewBatchProcessor(processor *Processor, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		processor:   processor,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch processes multiple input files concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each file gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// The returned slice keeps the input order; entries for failed files are
// nil. Per-file failures do not stop the batch: they are joined into the
// returned error so the caller can report them after all files finish.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.Result, error) {
	bp.logger.Debug("starting batch processing",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate the results slice to maintain input order
	results := make([]*model.Result, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("processing file",
				"path", path,
				"index", i+1,
				"total", len(paths),
			)

			result, err := bp.processor.Process(ctx, path)
			if err != nil {
				bp.logger.Warn("processing failed",
					"path", path,
					"error", err,
				)
				// Don't return the error to errgroup - we want the other
				// files to finish. Each goroutine owns its own slot, so no
				// mutex is needed.
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return nil
			}

			results[i] = result
			return nil
		})
	}

	// Wait returns non-nil only on cancellation; per-file errors are in errs
	if err := g.Wait(); err != nil {
		return results, err
	}

	bp.logger.Debug("batch processing complete",
		"total_files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return results, errors.Join(errs...)
}

// ProcessBatchWithCallback processes multiple files and calls a callback
// for each completed file. This is useful for streaming results.
//
// The callback receives the input index, the result (nil on failure), and
// the per-file error. It is called from the goroutine that processed the
// file, so shared state inside the callback needs the caller's own locking;
// the mutex here only keeps callback invocations from interleaving.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	paths []string,
	callback func(index int, result *model.Result, err error),
) error {
	bp.logger.Debug("starting batch processing with callback",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := bp.processor.Process(ctx, path)

			mu.Lock()
			callback(i, result, err)
			mu.Unlock()

			return nil
		})
	}

	return g.Wait()
}
