package comp

import (
	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// registerReplacedElements records, for every replaced-element declaration
// in m, that the designated element of a descendant is replaced by the
// declaring element. The declarations are stripped afterwards unless the
// element also carries a replaced-by, which is harvested later.
func (f *flattening) registerReplacedElements(m *sbml.Model, path pathkey.Key) {
	m.Walk(func(e sbml.Element) bool {
		b := e.Common()
		for _, re := range b.ReplacedElements {
			f.registerReplacedElement(m, path, e, re)
		}
		if b.ReplacedBy == nil {
			b.ReplacedElements = nil
		}
		return true
	})
}

func (f *flattening) registerReplacedElement(m *sbml.Model, path pathkey.Key, e sbml.Element, re *sbml.ReplacedElement) {
	rec := &Record{ModelID: m.ID, ConversionFactor: re.ConversionFactor, Origin: path}
	var ok bool
	if rec.TargetID, rec.TargetKind, ok = ownKey(e); !ok {
		f.unresolvable(path, KindID, e.TypeName(), "replacing element has neither id nor metaId")
		return
	}

	ref := &re.Ref
	if re.DeletionRef != "" {
		d := deletion(m.Submodel(re.SubmodelRef), re.DeletionRef)
		if d == nil {
			f.unresolvable(path, KindID, re.DeletionRef, "no such deletion in submodel "+re.SubmodelRef)
			return
		}
		ref = &d.Ref
	}
	if m.Submodel(re.SubmodelRef) == nil {
		f.unresolvable(path, KindID, re.SubmodelRef, "no such submodel")
		return
	}

	target, leaf := resolveChain(path.Push(re.SubmodelRef), ref)
	id, kind, ok := SelectRef(*leaf)
	if !ok {
		f.unresolvable(target, KindID, rec.TargetID, "replaced element reference sets no target")
		return
	}
	f.registry.Insert(target, kind, id, rec)
}

// registerDeletions records the deletions of sm, whose node is at path.
func (f *flattening) registerDeletions(path pathkey.Key, sm *sbml.Submodel) {
	for _, d := range sm.Deletions {
		target, leaf := resolveChain(path, &d.Ref)
		id, kind, ok := SelectRef(*leaf)
		if !ok {
			f.unresolvable(path, KindID, d.ID, "deletion sets no target")
			continue
		}
		f.registry.Insert(target, kind, id, nil)
	}
}

// registerReplacedBy records, for every element of m that is replaced by an
// element of a submodel, the fate of the element itself. It runs once the
// submodels of path have been visited, so the target node is known. All
// composition decorations of m are gone afterwards.
func (f *flattening) registerReplacedBy(m *sbml.Model, path pathkey.Key) {
	m.Walk(func(e sbml.Element) bool {
		b := e.Common()
		if rb := b.ReplacedBy; rb != nil {
			f.registerReplacedByOne(m, path, e, rb)
		}
		b.StripDecorations()
		return true
	})
}

func (f *flattening) registerReplacedByOne(m *sbml.Model, path pathkey.Key, e sbml.Element, rb *sbml.ReplacedBy) {
	ownID, ownKind, ok := ownKey(e)
	if !ok {
		f.unresolvable(path, KindID, e.TypeName(), "replaced element has neither id nor metaId")
		return
	}
	if m.Submodel(rb.SubmodelRef) == nil {
		f.unresolvable(path, KindID, rb.SubmodelRef, "no such submodel")
		return
	}
	target, leaf := resolveChain(path.Push(rb.SubmodelRef), &rb.Ref)
	id, kind, ok := SelectRef(*leaf)
	if !ok {
		f.unresolvable(target, KindID, ownID, "replaced-by reference sets no target")
		return
	}
	modelID, visited := f.nodes[target.String()]
	if !visited {
		f.unresolvable(target, kind, id, "replaced-by target node was not instantiated")
		return
	}
	f.registry.Insert(path, ownKind, ownID, &Record{
		TargetID:   id,
		TargetKind: kind,
		ModelID:    modelID,
		Origin:     target,
	})
}

// ownKey returns the key under which other declarations designate e.
func ownKey(e sbml.Element) (string, RefKind, bool) {
	b := e.Common()
	switch {
	case b.ID != "":
		if _, unit := e.(*sbml.UnitDefinition); unit {
			return b.ID, KindUnit, true
		}
		return b.ID, KindID, true
	case b.MetaID != "":
		return b.MetaID, KindMetaID, true
	}
	return "", 0, false
}

func deletion(sm *sbml.Submodel, id string) *sbml.Deletion {
	if sm == nil {
		return nil
	}
	for _, d := range sm.Deletions {
		if d.ID == id {
			return d
		}
	}
	return nil
}
