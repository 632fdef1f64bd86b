package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/htmlslim/htmlslim/internal/model"
)

// Default configuration values.
const (
	// DefaultMode is whitespace-only minification: it is always safe, so it
	// makes the no-flags invocation useful without risking content loss.
	DefaultMode = model.ModeMinify

	// DefaultBatchSize of 4 concurrent files keeps multi-file runs quick
	// without saturating the machine; each file is independent, so the limit
	// is purely about CPU and memory, not coordination.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "htmlslim"
)

// Config holds all configuration options for htmlslim.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// Inputs is the list of HTML files to process.
	// Must contain at least one path; each must be a regular file.
	Inputs []string

	// Mode selects analyze, minify, or aggressive processing.
	Mode model.Mode

	// OutputPath is the explicit output file path.
	// Only valid for minify/aggressive modes with a single input; when
	// empty, the output path is derived as <input-without-ext>.<mode>.html.
	OutputPath string

	// KeepImages leaves img elements untouched in aggressive mode.
	KeepImages bool

	// FlattenInputs converts checkbox/radio state to text markers in
	// aggressive mode.
	FlattenInputs bool

	// MarkerClassPrefix is the vendor class prefix identifying simulated
	// form controls for flattening. Empty means the built-in default.
	MarkerClassPrefix string

	// InspectEXIF enables EXIF detection in embedded data-URI images.
	InspectEXIF bool

	// BatchSize is the number of files processed concurrently when multiple
	// inputs are given.
	BatchSize int

	// JSONReport enables JSON console output instead of the text format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown console output instead of the text
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .htmlslim in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SaveHistory controls whether completed runs are recorded in the
	// sqlite history store.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	HistoryDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (mode, batch size,
// history saving). This also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Mode:        DefaultMode,
		BatchSize:   DefaultBatchSize,
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for htmlslim.
// On Linux: ~/.local/share/htmlslim
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing, before any
// processing begins, and return the first error found: fixing one error
// often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if !c.Mode.Valid() {
		return ErrUnknownMode
	}

	if c.OutputPath != "" {
		if c.Mode == model.ModeAnalyze {
			return ErrOutputWithAnalyze
		}
		if len(c.Inputs) > 1 {
			return ErrOutputWithMultipleInputs
		}
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
