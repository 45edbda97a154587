package comp

import (
	"github.com/specialistvlad/compflat/internal/sbml"
)

const (
	namespaceSID    = "id"
	namespaceUnit   = "unit definition id"
	namespaceMetaID = "metaId"
)

// Merger appends rewritten models into the flat accumulator. It remembers
// every identifier it has placed so a collision is reported instead of
// silently producing two elements with the same id.
type Merger struct {
	ids     map[string]string
	unitIDs map[string]string
	metaIDs map[string]string
}

// NewMerger creates a merger for one accumulator.
func NewMerger() *Merger {
	return &Merger{
		ids:     make(map[string]string),
		unitIDs: make(map[string]string),
		metaIDs: make(map[string]string),
	}
}

// Merge moves the content of level into acc in the canonical order:
// compartments, species, function definitions, rules, events, unit
// definitions, reactions, constraints, parameters, initial assignments.
// Reactions move whole, with their nested lists.
//
// Identifiers are checked before anything is moved; on an
// *AmbiguousIdentifierError acc is left as it was.
func (mg *Merger) Merge(acc, level *sbml.Model) error {
	staged := map[string]map[string]string{}
	claim := func(ns string, seen map[string]string, id, owner string) error {
		if id == "" {
			return nil
		}
		if existing, ok := seen[id]; ok {
			return &AmbiguousIdentifierError{ID: id, Namespace: ns, Existing: existing, Incoming: owner}
		}
		if staged[ns] == nil {
			staged[ns] = map[string]string{}
		}
		if existing, ok := staged[ns][id]; ok {
			return &AmbiguousIdentifierError{ID: id, Namespace: ns, Existing: existing, Incoming: owner}
		}
		staged[ns][id] = owner
		return nil
	}

	var err error
	level.Walk(func(e sbml.Element) bool {
		b := e.Common()
		switch e.(type) {
		case *sbml.UnitDefinition:
			err = claim(namespaceUnit, mg.unitIDs, b.ID, e.TypeName())
		case *sbml.LocalParameter:
		default:
			err = claim(namespaceSID, mg.ids, b.ID, e.TypeName())
		}
		if err == nil {
			err = claim(namespaceMetaID, mg.metaIDs, b.MetaID, e.TypeName())
		}
		return err == nil
	})
	if err != nil {
		return err
	}

	for ns, ids := range staged {
		target := mg.table(ns)
		for id, owner := range ids {
			target[id] = owner
		}
	}

	acc.Compartments = append(acc.Compartments, level.Compartments...)
	acc.Species = append(acc.Species, level.Species...)
	acc.FunctionDefinitions = append(acc.FunctionDefinitions, level.FunctionDefinitions...)
	acc.Rules = append(acc.Rules, level.Rules...)
	acc.Events = append(acc.Events, level.Events...)
	acc.UnitDefinitions = append(acc.UnitDefinitions, level.UnitDefinitions...)
	acc.Reactions = append(acc.Reactions, level.Reactions...)
	acc.Constraints = append(acc.Constraints, level.Constraints...)
	acc.Parameters = append(acc.Parameters, level.Parameters...)
	acc.InitialAssignments = append(acc.InitialAssignments, level.InitialAssignments...)
	return nil
}

// Has reports whether id is already taken in the model-wide namespace of the
// accumulator.
func (mg *Merger) Has(id string) bool {
	_, ok := mg.ids[id]
	return ok
}

func (mg *Merger) table(ns string) map[string]string {
	switch ns {
	case namespaceUnit:
		return mg.unitIDs
	case namespaceMetaID:
		return mg.metaIDs
	}
	return mg.ids
}
