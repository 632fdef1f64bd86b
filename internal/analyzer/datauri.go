package analyzer

import (
	"encoding/base64"
	"regexp"

	exif "github.com/dsoprea/go-exif/v3"
)

// dataURIPattern matches base64 data URIs embedded in attribute values.
// The payload group is restricted to the base64 alphabet so a URI followed
// by CSS or srcset descriptors terminates cleanly.
var dataURIPattern = regexp.MustCompile(`data:[^;]+;base64,([A-Za-z0-9+/=]+)`)

// scanDataURIs sums the decoded byte length of every base64 data URI in s
// and counts payloads carrying EXIF metadata when inspection is enabled.
//
// A payload that fails to decode contributes an estimate of 3/4 of its
// base64 length instead. Malformed payloads are tolerated, never fatal:
// exported pages routinely truncate inline images.
func (a *Analyzer) scanDataURIs(s string) (total int, withEXIF int) {
	if s == "" {
		return 0, 0
	}

	for _, match := range dataURIPattern.FindAllStringSubmatch(s, -1) {
		payload := match[1]
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			total += len(payload) * 3 / 4
			continue
		}
		total += len(decoded)

		if a.inspectEXIF && hasEXIF(decoded) {
			withEXIF++
		}
	}
	return total, withEXIF
}

// hasEXIF reports whether data contains an EXIF block.
func hasEXIF(data []byte) bool {
	_, err := exif.SearchAndExtractExif(data)
	return err == nil
}
