// Package main provides the entry point for the htmlslim CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/htmlslim/htmlslim/internal/analyzer"
	"github.com/htmlslim/htmlslim/internal/config"
	"github.com/htmlslim/htmlslim/internal/history"
	"github.com/htmlslim/htmlslim/internal/log"
	"github.com/htmlslim/htmlslim/internal/model"
	"github.com/htmlslim/htmlslim/internal/pipeline"
	"github.com/htmlslim/htmlslim/internal/report"
	"github.com/htmlslim/htmlslim/internal/strip"
)

// NewRootCmd creates the root command for htmlslim.
// The root command itself does the processing; subcommands cover setup
// and history inspection.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlslim [file...]",
		Short: "Analyze and reduce exported HTML files",
		Long: `htmlslim measures where the bytes go in an exported HTML page (scripts,
styles, embedded images, comments) and can write a reduced copy.

Modes:
  analyze     Print the size breakdown without writing any file.
  minify      Write a whitespace-minified copy. Safe for any page.
  aggressive  Additionally strip scripts, styles, tracking frames, event
              handlers, and images. Keeps the visible text only.

Examples:
  # Analyze a page
  htmlslim --mode analyze page.html

  # Minify (the default mode); output goes to page.minify.html
  htmlslim page.html

  # Aggressively strip a quiz export and flatten checkboxes to text markers
  htmlslim --mode aggressive --flatten-inputs quiz.html

  # Process a whole export concurrently
  htmlslim --mode aggressive --batch 8 pages/*.html

Configuration file (.htmlslim) example:
  mode: aggressive
  flattenInputs: true
  keepImages: false
  batchSize: 8`,
		Args:          cobra.ArbitraryArgs,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Processing flags
	cmd.Flags().String("mode", string(config.DefaultMode),
		"Processing mode: analyze, minify, or aggressive")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (single input only; default: <input>.<mode>.html)")
	cmd.Flags().Bool("keep-images", false,
		"Keep img elements in aggressive mode")
	cmd.Flags().Bool("flatten-inputs", false,
		"Convert checkboxes and radios to text markers in aggressive mode")
	cmd.Flags().String("marker-class-prefix", "",
		"Vendor class prefix identifying simulated form controls (default: "+strip.DefaultMarkerClassPrefix+")")
	cmd.Flags().Bool("exif", false,
		"Detect EXIF metadata in embedded data-URI images")

	// Batch processing flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files processed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .htmlslim in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd executes the processing run.
func runRootCmd(cmd *cobra.Command, args []string) error {
	// Build config from the config file and flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runProcess(ctx, cfg, logger)
}

// buildConfig creates a Config from the optional config file and the
// command's flags. Flags the user set explicitly win over file values.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	// Load defaults from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently skip when no file exists.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags override file values only when the user set them, so a file
	// default survives a plain invocation.
	if cmd.Flags().Changed("mode") {
		mode, err := cmd.Flags().GetString("mode")
		if err != nil {
			return nil, err
		}
		cfg.Mode = model.Mode(mode)
	}
	if cmd.Flags().Changed("keep-images") {
		if cfg.KeepImages, err = cmd.Flags().GetBool("keep-images"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("flatten-inputs") {
		if cfg.FlattenInputs, err = cmd.Flags().GetBool("flatten-inputs"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("marker-class-prefix") {
		if cfg.MarkerClassPrefix, err = cmd.Flags().GetString("marker-class-prefix"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}

	// Flags without config-file counterparts are read unconditionally
	if cfg.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.InspectEXIF, err = cmd.Flags().GetBool("exif"); err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}

	// Positional arguments are the input files
	cfg.Inputs = args

	return cfg, nil
}

// runProcess executes the run described by cfg.
func runProcess(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug("starting run",
		"inputs", len(cfg.Inputs),
		"mode", cfg.Mode,
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveHistory,
	)

	// Open the history store if recording is enabled
	var store *history.Store
	if cfg.SaveHistory {
		var err error
		store, err = history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close() //nolint:errcheck // Best effort cleanup
		logger.Debug("history database opened", "dir", cfg.HistoryDir)
	}

	processor := newProcessor(cfg, logger)
	writer := newReportWriter(cfg)

	// Use the batch processor for concurrent runs when there are
	// multiple inputs
	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		return runBatch(ctx, cfg, processor, writer, store, logger)
	}

	return runSequential(ctx, cfg, processor, writer, store, logger)
}

// runSequential processes inputs one at a time.
// A failed file is reported to stderr and does not stop the remaining
// files; the run still exits non-zero.
func runSequential(ctx context.Context, cfg *config.Config, processor *pipeline.Processor, writer report.Writer, store *history.Store, logger *slog.Logger) error {
	var failed int
	for _, input := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := processor.Process(ctx, input)
		if err != nil {
			logger.Error("processing failed", "input", input, "error", err)
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", input, err)
			failed++
			continue
		}

		if err := emitResult(ctx, result, writer, store, logger); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(cfg.Inputs))
	}
	return nil
}

// runBatch processes inputs concurrently and reports them in input order
// once all files finish.
func runBatch(ctx context.Context, cfg *config.Config, processor *pipeline.Processor, writer report.Writer, store *history.Store, logger *slog.Logger) error {
	bp := pipeline.NewBatchProcessor(processor,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	results, batchErr := bp.ProcessBatch(ctx, cfg.Inputs)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for i, result := range results {
		if result == nil {
			// The joined batchErr already names the file
			fmt.Fprintf(os.Stderr, "Error processing %s\n", cfg.Inputs[i])
			continue
		}
		if err := emitResult(ctx, result, writer, store, logger); err != nil {
			return err
		}
	}

	return batchErr
}

// emitResult writes the console report for one result and records it in
// the history store. A history write failure is logged, not fatal: the
// output file already exists and the user has their report.
func emitResult(ctx context.Context, result *model.Result, writer report.Writer, store *history.Store, logger *slog.Logger) error {
	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report for %s: %w", result.InputPath, err)
	}

	if store != nil {
		if _, err := store.SaveResult(ctx, result); err != nil {
			logger.Error("failed to record run", "input", result.InputPath, "error", err)
		}
	}

	return nil
}

// newProcessor builds the file processor from the configuration.
func newProcessor(cfg *config.Config, logger *slog.Logger) *pipeline.Processor {
	stripOpts := []strip.Option{
		strip.WithKeepImages(cfg.KeepImages),
		strip.WithFlattenInputs(cfg.FlattenInputs),
	}
	if cfg.MarkerClassPrefix != "" {
		stripOpts = append(stripOpts, strip.WithMarkerClassPrefix(cfg.MarkerClassPrefix))
	}

	return pipeline.NewProcessor(cfg.Mode,
		pipeline.WithLogger(logger),
		pipeline.WithOutputPath(cfg.OutputPath),
		pipeline.WithAnalyzer(analyzer.New(analyzer.WithEXIFInspection(cfg.InspectEXIF))),
		pipeline.WithStripper(strip.New(stripOpts...)),
	)
}

// newReportWriter selects the console report format.
func newReportWriter(cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(os.Stdout)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(os.Stdout)
	default:
		return report.NewTextWriter(os.Stdout, report.WithEXIFLine(cfg.InspectEXIF))
	}
}
