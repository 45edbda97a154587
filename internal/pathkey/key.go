// internal/pathkey/key.go
package pathkey

import (
	"slices"
	"strings"
)

// Separator joins segments in the canonical string form of a Key.
const Separator = "."

// Key is an ordered sequence of submodel-instance names, root first.
type Key struct {
	segments []string
}

// New builds a key from the given segments.
func New(segments ...string) Key {
	return Key{segments: slices.Clone(segments)}
}

// Push returns a new key extended by one segment.
func (k Key) Push(segment string) Key {
	next := make([]string, len(k.segments), len(k.segments)+1)
	copy(next, k.segments)
	return Key{segments: append(next, segment)}
}

// Pop returns the key of the parent node. Popping the empty key yields the
// empty key.
func (k Key) Pop() Key {
	if len(k.segments) == 0 {
		return k
	}
	return Key{segments: slices.Clone(k.segments[:len(k.segments)-1])}
}

// Extend returns a new key with all given segments appended.
func (k Key) Extend(segments ...string) Key {
	out := k
	for _, s := range segments {
		out = out.Push(s)
	}
	return out
}

// Len reports the number of segments.
func (k Key) Len() int { return len(k.segments) }

// IsRoot reports whether the key designates the root of a composition tree
// (or nothing at all).
func (k Key) IsRoot() bool { return len(k.segments) <= 1 }

// Last returns the final segment, or "" for the empty key.
func (k Key) Last() string {
	if len(k.segments) == 0 {
		return ""
	}
	return k.segments[len(k.segments)-1]
}

// Segments returns a copy of the key's segments.
func (k Key) Segments() []string {
	return slices.Clone(k.segments)
}

// HasPrefix reports whether other is an ancestor of, or equal to, k.
func (k Key) HasPrefix(other Key) bool {
	if len(other.segments) > len(k.segments) {
		return false
	}
	return slices.Equal(k.segments[:len(other.segments)], other.segments)
}

// Equal checks whether two keys name the same node.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k.segments, other.segments)
}

// String serializes the key into its canonical representation. It is also the
// form used as a map key by the lookup tables keyed by tree position.
func (k Key) String() string {
	return strings.Join(k.segments, Separator)
}
