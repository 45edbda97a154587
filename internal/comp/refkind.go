package comp

import (
	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// RefKind says which attribute of a reference designates its target.
type RefKind int

const (
	KindID RefKind = iota
	KindMetaID
	KindPort
	KindUnit
)

func (k RefKind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindMetaID:
		return "metaId"
	case KindPort:
		return "port"
	case KindUnit:
		return "unit"
	}
	return "unknown"
}

// refPriority is the resolution order for references that set more than one
// attribute: the first non-empty attribute wins.
var refPriority = []struct {
	kind RefKind
	get  func(*sbml.Ref) string
}{
	{KindID, func(r *sbml.Ref) string { return r.IDRef }},
	{KindMetaID, func(r *sbml.Ref) string { return r.MetaIDRef }},
	{KindPort, func(r *sbml.Ref) string { return r.PortRef }},
	{KindUnit, func(r *sbml.Ref) string { return r.UnitRef }},
}

// SelectRef returns the target designated by ref and its kind. ok is false
// when no attribute is set.
func SelectRef(ref sbml.Ref) (id string, kind RefKind, ok bool) {
	for _, p := range refPriority {
		if v := p.get(&ref); v != "" {
			return v, p.kind, true
		}
	}
	return "", 0, false
}

// resolveChain walks a nested reference to its innermost link. Every
// traversed link names a submodel, which extends path.
func resolveChain(path pathkey.Key, ref *sbml.Ref) (pathkey.Key, *sbml.Ref) {
	for ref.Nested != nil {
		seg := ref.IDRef
		if seg == "" {
			seg = ref.MetaIDRef
		}
		path = path.Push(seg)
		ref = ref.Nested
	}
	return path, ref
}
