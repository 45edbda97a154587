// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements traversal, lookup and detachment over a Model.
package sbml

// Walk visits every content element of the model in document order,
// descending into reactions and events. Ports, submodels and deletions are
// not visited. Walk stops as soon as fn returns false.
func (m *Model) Walk(fn func(Element) bool) {
	m.walk(fn, false)
}

// WalkAll is Walk plus the composition parts of the model: ports, submodels
// and their deletions.
func (m *Model) WalkAll(fn func(Element) bool) {
	m.walk(fn, true)
}

func (m *Model) walk(fn func(Element) bool, all bool) {
	stopped := false
	visit := func(e Element) bool {
		if stopped {
			return false
		}
		if !fn(e) {
			stopped = true
		}
		return !stopped
	}

	for _, e := range m.FunctionDefinitions {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.UnitDefinitions {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.Compartments {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.Species {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.Parameters {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.InitialAssignments {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.Rules {
		if !visit(e) {
			return
		}
	}
	for _, e := range m.Constraints {
		if !visit(e) {
			return
		}
	}
	for _, r := range m.Reactions {
		if !visit(r) {
			return
		}
		for _, e := range r.Reactants {
			if !visit(e) {
				return
			}
		}
		for _, e := range r.Products {
			if !visit(e) {
				return
			}
		}
		for _, e := range r.Modifiers {
			if !visit(e) {
				return
			}
		}
		if r.KineticLaw != nil {
			if !visit(r.KineticLaw) {
				return
			}
			for _, e := range r.KineticLaw.LocalParameters {
				if !visit(e) {
					return
				}
			}
		}
	}
	for _, ev := range m.Events {
		if !visit(ev) {
			return
		}
		if ev.Trigger != nil && !visit(ev.Trigger) {
			return
		}
		if ev.Delay != nil && !visit(ev.Delay) {
			return
		}
		if ev.Priority != nil && !visit(ev.Priority) {
			return
		}
		for _, e := range ev.Assignments {
			if !visit(e) {
				return
			}
		}
	}
	if !all {
		return
	}
	for _, p := range m.Ports {
		if !visit(p) {
			return
		}
	}
	for _, s := range m.Submodels {
		if !visit(s) {
			return
		}
		for _, d := range s.Deletions {
			if !visit(d) {
				return
			}
		}
	}
}

// InSIDNamespace reports whether the id of e shares the model-wide identifier
// namespace. Unit definitions and local parameters have namespaces of their
// own.
func InSIDNamespace(e Element) bool {
	switch e.(type) {
	case *UnitDefinition, *LocalParameter:
		return false
	}
	return true
}

// FindBySID returns the element whose id is sid, searching the model-wide
// identifier namespace including ports and submodels.
func (m *Model) FindBySID(sid string) Element {
	if sid == "" {
		return nil
	}
	var found Element
	m.WalkAll(func(e Element) bool {
		if e.Common().ID == sid && InSIDNamespace(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// FindByMetaID returns the element carrying the given metaId.
func (m *Model) FindByMetaID(metaID string) Element {
	if metaID == "" {
		return nil
	}
	var found Element
	m.WalkAll(func(e Element) bool {
		if e.Common().MetaID == metaID {
			found = e
			return false
		}
		return true
	})
	return found
}

// UnitDefinition returns the unit definition with the given id.
func (m *Model) UnitDefinition(id string) *UnitDefinition {
	for _, u := range m.UnitDefinitions {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Parameter returns the parameter with the given id.
func (m *Model) Parameter(id string) *Parameter {
	for _, p := range m.Parameters {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Port returns the port with the given id.
func (m *Model) Port(id string) *Port {
	for _, p := range m.Ports {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Submodel returns the submodel instance with the given id.
func (m *Model) Submodel(id string) *Submodel {
	for _, s := range m.Submodels {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FunctionDefinition returns the function definition with the given id.
func (m *Model) FunctionDefinition(id string) *FunctionDefinition {
	for _, f := range m.FunctionDefinitions {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Remove detaches e from the model. It reports whether e was found.
func (m *Model) Remove(e Element) bool {
	switch x := e.(type) {
	case *FunctionDefinition:
		return removeFrom(&m.FunctionDefinitions, x)
	case *UnitDefinition:
		return removeFrom(&m.UnitDefinitions, x)
	case *Compartment:
		return removeFrom(&m.Compartments, x)
	case *Species:
		return removeFrom(&m.Species, x)
	case *Parameter:
		return removeFrom(&m.Parameters, x)
	case *InitialAssignment:
		return removeFrom(&m.InitialAssignments, x)
	case *Rule:
		return removeFrom(&m.Rules, x)
	case *Constraint:
		return removeFrom(&m.Constraints, x)
	case *Reaction:
		return removeFrom(&m.Reactions, x)
	case *Event:
		return removeFrom(&m.Events, x)
	case *Port:
		return removeFrom(&m.Ports, x)
	case *Submodel:
		return removeFrom(&m.Submodels, x)
	case *SpeciesReference:
		for _, r := range m.Reactions {
			if removeFrom(&r.Reactants, x) || removeFrom(&r.Products, x) {
				return true
			}
		}
	case *ModifierSpeciesReference:
		for _, r := range m.Reactions {
			if removeFrom(&r.Modifiers, x) {
				return true
			}
		}
	case *KineticLaw:
		for _, r := range m.Reactions {
			if r.KineticLaw == x {
				r.KineticLaw = nil
				return true
			}
		}
	case *LocalParameter:
		for _, r := range m.Reactions {
			if r.KineticLaw != nil && removeFrom(&r.KineticLaw.LocalParameters, x) {
				return true
			}
		}
	case *Trigger:
		for _, ev := range m.Events {
			if ev.Trigger == x {
				ev.Trigger = nil
				return true
			}
		}
	case *Delay:
		for _, ev := range m.Events {
			if ev.Delay == x {
				ev.Delay = nil
				return true
			}
		}
	case *Priority:
		for _, ev := range m.Events {
			if ev.Priority == x {
				ev.Priority = nil
				return true
			}
		}
	case *EventAssignment:
		for _, ev := range m.Events {
			if removeFrom(&ev.Assignments, x) {
				return true
			}
		}
	case *Deletion:
		for _, s := range m.Submodels {
			if removeFrom(&s.Deletions, x) {
				return true
			}
		}
	}
	return false
}

func removeFrom[T comparable](list *[]T, target T) bool {
	for i, e := range *list {
		if e == target {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
