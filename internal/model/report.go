package model

import "time"

// SizeReport records where the bytes of one HTML document go.
// It is produced once per input file and never mutated afterwards;
// all fields are non-negative and derived solely from the input document.
type SizeReport struct {
	// FileSize is the byte length of the decoded input text.
	FileSize int `json:"file_size"`

	// MinifiedSize is the byte length after whitespace-only minification.
	// This is a size-reduction baseline; the minified text itself is only
	// written to disk in minify mode.
	MinifiedSize int `json:"minified_size"`

	// TextChars approximates the number of visible text characters:
	// text nodes outside script/style, whitespace-collapsed, joined
	// with single spaces.
	TextChars int `json:"text_chars"`

	// CommentsBytes is the total UTF-8 byte length of all comment nodes.
	CommentsBytes int `json:"comments_bytes"`

	// ScriptsBytes sums script element content bytes plus src attribute
	// bytes when present.
	ScriptsBytes int `json:"scripts_bytes"`

	// ScriptsCount is the number of script elements.
	ScriptsCount int `json:"scripts_count"`

	// StylesBytes sums style element content bytes.
	StylesBytes int `json:"styles_bytes"`

	// StylesCount is the number of style elements.
	StylesCount int `json:"styles_count"`

	// InlineStyleAttrBytes sums the byte length of every element's
	// style attribute value.
	InlineStyleAttrBytes int `json:"inline_style_attr_bytes"`

	// DataURIBytes is the decoded byte total of base64 data: URIs found in
	// img/source src (or srcset) attributes and in style attribute values.
	// Payloads that fail to decode contribute an estimate of 3/4 of their
	// base64 length.
	DataURIBytes int `json:"data_uri_bytes"`

	// ImagesCount is the number of img/source elements whose src or srcset
	// is an inline data: URI.
	ImagesCount int `json:"images_count"`

	// EXIFImages is the number of embedded data-URI images whose decoded
	// payload carries EXIF metadata. Only populated when EXIF inspection
	// is enabled.
	EXIFImages int `json:"exif_images,omitempty"`
}

// Mode identifies the processing mode applied to an input file.
type Mode string

// Processing modes. These are the only values accepted by the CLI.
const (
	// ModeAnalyze measures the document without writing any output.
	ModeAnalyze Mode = "analyze"

	// ModeMinify writes a whitespace-only minified copy of the document.
	ModeMinify Mode = "minify"

	// ModeAggressive writes a stripped copy with scripts, styles, tracking
	// frames, and event handlers removed.
	ModeAggressive Mode = "aggressive"
)

// Valid reports whether m is a known processing mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeAnalyze, ModeMinify, ModeAggressive:
		return true
	}
	return false
}

// Result describes one processed input file.
type Result struct {
	// InputPath is the path of the analyzed HTML file.
	InputPath string `json:"input_path"`

	// Mode is the processing mode that produced this result.
	Mode Mode `json:"mode"`

	// Report holds the size metrics of the input document.
	Report SizeReport `json:"report"`

	// OutputPath is the path the reduced document was written to.
	// Empty in analyze mode.
	OutputPath string `json:"output_path,omitempty"`

	// OutputSize is the byte length of the written output file.
	// Zero in analyze mode.
	OutputSize int `json:"output_size,omitempty"`

	// ProcessedAt is when the file was processed.
	ProcessedAt time.Time `json:"processed_at"`
}

// SavedBytes returns the size reduction achieved by the written output.
func (r *Result) SavedBytes() int {
	return r.Report.FileSize - r.OutputSize
}

// SavedPercent returns the size reduction as a percentage of the input size.
// It returns 0 when the input was empty to avoid division by zero.
func (r *Result) SavedPercent() float64 {
	if r.Report.FileSize == 0 {
		return 0
	}
	return float64(r.SavedBytes()) / float64(r.Report.FileSize) * 100
}
