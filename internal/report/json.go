package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/htmlslim/htmlslim/internal/model"
)

// JSONWriter outputs results as indented JSON for tool integration.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result as JSON.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
