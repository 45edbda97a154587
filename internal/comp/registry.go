package comp

import (
	"github.com/specialistvlad/compflat/internal/pathkey"
)

// Record is the fate of an element that is replaced: references to it must
// resolve to TargetID in the node at Origin, scaled by ConversionFactor when
// set. ModelID is the definition instantiated at Origin.
//
// A nil *Record in the registry marks a deletion.
type Record struct {
	TargetID         string
	TargetKind       RefKind
	ModelID          string
	ConversionFactor string
	Origin           pathkey.Key
}

// Entry is one registered key of a node.
type Entry struct {
	Kind   RefKind
	ID     string
	Record *Record
}

type entryKey struct {
	kind RefKind
	id   string
}

type registryNode struct {
	index   map[entryKey]int
	entries []Entry
}

// Registry records, per composition-tree node, which elements are deleted or
// replaced. It is owned by a single flatten call.
type Registry struct {
	nodes map[string]*registryNode
	paths []pathkey.Key
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*registryNode)}
}

// Insert registers the fate of (kind, id) at path. The first writer wins,
// except that a replacement takes the place of a bare deletion. It reports
// whether the registry changed.
func (r *Registry) Insert(path pathkey.Key, kind RefKind, id string, rec *Record) bool {
	n, ok := r.nodes[path.String()]
	if !ok {
		n = &registryNode{index: make(map[entryKey]int)}
		r.nodes[path.String()] = n
		r.paths = append(r.paths, path)
	}
	k := entryKey{kind, id}
	if i, exists := n.index[k]; exists {
		if n.entries[i].Record == nil && rec != nil {
			n.entries[i].Record = rec
			return true
		}
		return false
	}
	n.index[k] = len(n.entries)
	n.entries = append(n.entries, Entry{Kind: kind, ID: id, Record: rec})
	return true
}

// Lookup returns the record registered for (kind, id) at path. found is true
// for deletions as well, which carry a nil record.
func (r *Registry) Lookup(path pathkey.Key, kind RefKind, id string) (rec *Record, found bool) {
	n, ok := r.nodes[path.String()]
	if !ok {
		return nil, false
	}
	i, ok := n.index[entryKey{kind, id}]
	if !ok {
		return nil, false
	}
	return n.entries[i].Record, true
}

// Entries returns the entries of path in insertion order.
func (r *Registry) Entries(path pathkey.Key) []Entry {
	n, ok := r.nodes[path.String()]
	if !ok {
		return nil
	}
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	return out
}

// Paths returns every path that has entries, in the order they were first
// written.
func (r *Registry) Paths() []pathkey.Key {
	out := make([]pathkey.Key, len(r.paths))
	copy(out, r.paths)
	return out
}

// Len reports the number of entries across all nodes.
func (r *Registry) Len() int {
	total := 0
	for _, n := range r.nodes {
		total += len(n.entries)
	}
	return total
}
