package config

import "github.com/htmlslim/htmlslim/internal/model"

// File represents the structure of the .htmlslim configuration file.
// It carries defaults for flags that users tend to set the same way on
// every run against the same course export.
type File struct {
	// Mode is the default processing mode (analyze, minify, aggressive).
	Mode string `yaml:"mode,omitempty"`

	// KeepImages is the default for the --keep-images flag.
	KeepImages *bool `yaml:"keepImages,omitempty"`

	// FlattenInputs is the default for the --flatten-inputs flag.
	FlattenInputs *bool `yaml:"flattenInputs,omitempty"`

	// MarkerClassPrefix overrides the vendor class prefix used to detect
	// simulated checkboxes/radios during flattening.
	MarkerClassPrefix string `yaml:"markerClassPrefix,omitempty"`

	// BatchSize is the default concurrency for multi-file runs.
	BatchSize int `yaml:"batchSize,omitempty"`

	// SaveHistory controls recording runs in the history database.
	SaveHistory *bool `yaml:"saveHistory,omitempty"`
}

// Apply copies the file's values onto cfg. Only set fields override;
// pointer fields distinguish "absent" from an explicit false.
func (f *File) Apply(cfg *Config) {
	if f.Mode != "" {
		cfg.Mode = modelMode(f.Mode)
	}
	if f.KeepImages != nil {
		cfg.KeepImages = *f.KeepImages
	}
	if f.FlattenInputs != nil {
		cfg.FlattenInputs = *f.FlattenInputs
	}
	if f.MarkerClassPrefix != "" {
		cfg.MarkerClassPrefix = f.MarkerClassPrefix
	}
	if f.BatchSize > 0 {
		cfg.BatchSize = f.BatchSize
	}
	if f.SaveHistory != nil {
		cfg.SaveHistory = *f.SaveHistory
	}
}

// modelMode converts a config-file mode string to a model.Mode.
// Invalid values pass through unchanged so Validate reports them.
func modelMode(s string) model.Mode {
	return model.Mode(s)
}
