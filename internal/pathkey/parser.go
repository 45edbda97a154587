// internal/pathkey/parser.go
package pathkey

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment. Segments are model or submodel ids.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidSegment reports whether s can be used as a key segment.
func ValidSegment(s string) bool {
	return segmentRegex.MatchString(s)
}

// Parse creates a Key from its canonical string representation.
func Parse(raw string) (Key, error) {
	if raw == "" {
		return Key{}, fmt.Errorf("path key cannot be empty")
	}

	var segments []string
	for _, s := range strings.Split(raw, Separator) {
		if s == "" {
			return Key{}, fmt.Errorf("path key contains empty segment")
		}
		if !ValidSegment(s) {
			return Key{}, fmt.Errorf("invalid path key segment: %q", s)
		}
		segments = append(segments, s)
	}
	return Key{segments: segments}, nil
}
