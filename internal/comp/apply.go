package comp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/specialistvlad/compflat/internal/pathkey"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// migration moves the assignments of a replaced species reference onto the
// donor reference that replaces it.
type migration struct {
	rec     *Record
	donorID string
	ias     []*sbml.InitialAssignment
	rules   []*sbml.Rule
}

// target is an element of m designated by a registry entry.
type target struct {
	entry Entry
	elem  sbml.Element
}

// applyEntries removes from m every element the registry marks as deleted
// or replaced at path and fills repl accordingly. Replaced species
// references stay in place with the donor's attributes; the migrations for
// their assignments are returned.
func (f *flattening) applyEntries(m *sbml.Model, path pathkey.Key, repl *Replacements) []migration {
	// Locate everything first so one removal cannot hide the target of
	// another entry.
	var targets []target
	for _, entry := range f.registry.Entries(path) {
		e, reason := f.locate(m, entry.Kind, entry.ID)
		if e == nil {
			f.unresolvable(path, entry.Kind, entry.ID, reason)
			continue
		}
		targets = append(targets, target{entry: entry, elem: e})
	}

	// An element reached by both a deletion and a replacement, under any
	// of its keys, is replaced.
	replaced := make(map[sbml.Element]bool)
	for _, t := range targets {
		if t.entry.Record != nil {
			replaced[t.elem] = true
		}
	}

	var migrations []migration
	for _, t := range targets {
		rec := t.entry.Record
		if rec == nil && replaced[t.elem] {
			continue
		}
		b := t.elem.Common()
		switch e := t.elem.(type) {
		case *sbml.Port:
			m.Remove(e)
		case *sbml.SpeciesReference:
			if rec == nil {
				m.Remove(e)
				repl.Deleted[b.ID] = struct{}{}
				continue
			}
			if mig, ok := f.adoptDonor(m, path, e, rec, repl); ok {
				migrations = append(migrations, mig)
			}
		case *sbml.UnitDefinition:
			m.Remove(e)
			if rec == nil {
				repl.DeletedUnits[b.ID] = struct{}{}
				continue
			}
			if _, taken := repl.Units[b.ID]; !taken {
				repl.Units[b.ID] = UnitTarget{Origin: rec.Origin, ModelID: rec.ModelID, Kind: rec.TargetKind, UnitID: rec.TargetID}
			}
		default:
			m.Remove(e)
			if b.ID == "" {
				continue
			}
			if rec == nil {
				repl.Deleted[b.ID] = struct{}{}
				continue
			}
			if _, taken := repl.IDs[b.ID]; taken {
				continue
			}
			id, ok := f.resolveID(rec.Origin, rec.TargetKind, rec.TargetID)
			if !ok {
				f.unresolvable(path, t.entry.Kind, t.entry.ID, "replacing element was deleted")
				repl.Deleted[b.ID] = struct{}{}
				continue
			}
			sub := Substitution{ID: id}
			if rec.ConversionFactor != "" {
				if sub.Factor, ok = f.resolveID(rec.Origin, KindID, rec.ConversionFactor); !ok {
					f.unresolvable(rec.Origin, KindID, rec.ConversionFactor, "conversion factor parameter was deleted")
				}
			}
			repl.IDs[b.ID] = sub
		}
	}
	return migrations
}

// locate finds the element of m designated by (kind, id). reason explains a
// nil result.
func (f *flattening) locate(m *sbml.Model, kind RefKind, id string) (sbml.Element, string) {
	switch kind {
	case KindID:
		if e := m.FindBySID(id); e != nil {
			if _, ok := e.(*sbml.Submodel); ok {
				return nil, "submodels cannot be deleted or replaced"
			}
			return e, ""
		}
		if ud := m.UnitDefinition(id); ud != nil {
			return ud, ""
		}
	case KindMetaID:
		if e := m.FindByMetaID(id); e != nil {
			return e, ""
		}
	case KindUnit:
		if ud := m.UnitDefinition(id); ud != nil {
			return ud, ""
		}
	case KindPort:
		p := m.Port(id)
		if p == nil {
			break
		}
		if p.Ref.Nested != nil {
			return nil, "port designates an element of a nested submodel"
		}
		ref, refKind, ok := SelectRef(p.Ref)
		if !ok || refKind == KindPort {
			return nil, "port sets no target"
		}
		e, reason := f.locate(m, refKind, ref)
		if e == nil {
			return nil, reason
		}
		// The port goes with the element it designates.
		m.Remove(p)
		return e, ""
	}
	return nil, "no such element"
}

// adoptDonor copies the donor's attributes onto sr, which keeps its own id,
// and prepares the migration of the assignments that target sr.
func (f *flattening) adoptDonor(m *sbml.Model, path pathkey.Key, sr *sbml.SpeciesReference, rec *Record, repl *Replacements) (migration, bool) {
	donor := f.donor(rec)
	if donor == nil {
		f.unresolvable(path, rec.TargetKind, rec.TargetID, "replacing species reference not found in "+rec.ModelID)
		return migration{}, false
	}
	species, ok := f.resolveID(rec.Origin, KindID, donor.Species)
	if !ok {
		f.unresolvable(rec.Origin, KindID, donor.Species, "species of the replacing reference was deleted")
		return migration{}, false
	}
	c := donor.Clone()
	sr.Species = species
	sr.Stoichiometry = c.Stoichiometry
	sr.Constant = c.Constant
	sr.Annotation = c.Annotation
	repl.Premapped[sr] = struct{}{}

	mig := migration{rec: rec, donorID: donor.ID}
	for _, ia := range m.InitialAssignments {
		if ia.Symbol == sr.ID {
			mig.ias = append(mig.ias, ia)
		}
	}
	for _, r := range m.Rules {
		if r.Kind != sbml.AlgebraicRule && r.Variable == sr.ID {
			mig.rules = append(mig.rules, r)
		}
	}
	return mig, true
}

// donor returns the replacing species reference from the snapshot of the
// model that declares it.
func (f *flattening) donor(rec *Record) *sbml.SpeciesReference {
	snap := f.visited[rec.ModelID]
	if snap == nil {
		return nil
	}
	kind, id := rec.TargetKind, rec.TargetID
	if kind == KindPort {
		p := snap.Port(id)
		if p == nil || p.Ref.Nested != nil {
			return nil
		}
		var ok bool
		if id, kind, ok = SelectRef(p.Ref); !ok {
			return nil
		}
	}
	var e sbml.Element
	switch kind {
	case KindID:
		e = snap.FindBySID(id)
	case KindMetaID:
		e = snap.FindByMetaID(id)
	}
	sr, _ := e.(*sbml.SpeciesReference)
	return sr
}

// migrate hands the rewritten assignments of replaced species references to
// the node of their donor. A donor node that already merged gets them
// straight into the accumulator.
func (f *flattening) migrate(m *sbml.Model, migrations []migration) error {
	for _, mig := range migrations {
		origin := mig.rec.Origin.String()
		var extra []addition
		for _, ia := range mig.ias {
			if !slices.Contains(m.InitialAssignments, ia) {
				continue
			}
			c := ia.Clone()
			c.ID, c.MetaID = "", ""
			c.Symbol = mig.donorID
			extra = append(extra, addition{ia: c})
		}
		for _, r := range mig.rules {
			if !slices.Contains(m.Rules, r) {
				continue
			}
			c := r.Clone()
			c.ID, c.MetaID = "", ""
			c.Variable = mig.donorID
			extra = append(extra, addition{rule: c})
		}
		if len(extra) == 0 {
			continue
		}
		if !f.merged[origin] {
			f.pending[origin] = append(f.pending[origin], extra...)
			continue
		}

		variable, ok := f.resolveID(mig.rec.Origin, KindID, mig.donorID)
		if !ok {
			f.unresolvable(mig.rec.Origin, KindID, mig.donorID, "replacing species reference was deleted")
			continue
		}
		late := sbml.NewModel("")
		for _, add := range extra {
			if add.ia != nil {
				add.ia.Symbol = variable
				late.InitialAssignments = append(late.InitialAssignments, add.ia)
			}
			if add.rule != nil {
				add.rule.Variable = variable
				late.Rules = append(late.Rules, add.rule)
			}
		}
		if err := f.merger.Merge(f.acc, late); err != nil {
			return fmt.Errorf("failed to merge migrated assignments into %q: %w", origin, err)
		}
	}
	return nil
}

// chainNode turns a conversion factor chain into the expression that scales
// math. A chain of several factors is materialized once as a parameter
// holding their product.
func (f *flattening) chainNode(chain []string) (*formula.Node, error) {
	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return formula.Name(chain[0]), nil
	}
	name := strings.Join(chain, "_times_")
	if id, ok := f.chains[name]; ok {
		return formula.Name(id), nil
	}

	id := name
	for f.merger.Has(id) {
		id += prefixPad
	}
	product := formula.Name(chain[0])
	for _, factor := range chain[1:] {
		product = formula.Op(formula.KindTimes, product, formula.Name(factor))
	}
	constant := true
	level := sbml.NewModel("")
	level.Parameters = []*sbml.Parameter{{Base: sbml.Base{ID: id}, Constant: &constant}}
	level.InitialAssignments = []*sbml.InitialAssignment{{Symbol: id, Math: product}}
	if err := f.merger.Merge(f.acc, level); err != nil {
		return nil, fmt.Errorf("failed to materialize conversion factor %q: %w", id, err)
	}
	f.chains[name] = id
	return formula.Name(id), nil
}
