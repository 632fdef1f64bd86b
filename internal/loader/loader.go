package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotRegularFile is returned when the input path exists but is not a
// regular file (directory, socket, device, ...).
var ErrNotRegularFile = errors.New("input is not a regular file")

// ReadFile reads the file at path and returns its content as UTF-8 text.
//
// A UTF-8 or UTF-16 BOM is honored and stripped; without a BOM the bytes are
// treated as UTF-8. Invalid byte sequences are dropped rather than raising,
// so the returned text is always valid UTF-8 and reading never fails for
// decoding reasons.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("input file not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return "", fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	return decode(f)
}

// decode converts r to valid UTF-8 text, dropping undecodable sequences.
func decode(r io.Reader) (string, error) {
	// BOMOverride switches to UTF-16 when a UTF-16 BOM is present and strips
	// a leading UTF-8 BOM. Without a BOM, bytes pass through as UTF-8.
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	// The decoder maps ill-formed sequences to U+FFFD; the original bytes are
	// unrecoverable either way, so drop the replacement runes entirely to
	// keep byte counts tied to real content.
	return strings.ToValidUTF8(strings.ReplaceAll(string(data), "�", ""), ""), nil
}
