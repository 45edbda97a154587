// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements deep copies of the tree.
package sbml

import "slices"

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneList[T any](in []*T, fn func(*T) *T) []*T {
	if in == nil {
		return nil
	}
	out := make([]*T, len(in))
	for i, e := range in {
		out[i] = fn(e)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Model = d.Model.Clone()
	c.ModelDefinitions = cloneList(d.ModelDefinitions, (*Model).Clone)
	c.ExternalModelDefinitions = cloneList(d.ExternalModelDefinitions, (*ExternalModelDefinition).Clone)
	return &c
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	c := *m
	c.Base = m.Base.clone()
	c.FunctionDefinitions = cloneList(m.FunctionDefinitions, (*FunctionDefinition).Clone)
	c.UnitDefinitions = cloneList(m.UnitDefinitions, (*UnitDefinition).Clone)
	c.Compartments = cloneList(m.Compartments, (*Compartment).Clone)
	c.Species = cloneList(m.Species, (*Species).Clone)
	c.Parameters = cloneList(m.Parameters, (*Parameter).Clone)
	c.InitialAssignments = cloneList(m.InitialAssignments, (*InitialAssignment).Clone)
	c.Rules = cloneList(m.Rules, (*Rule).Clone)
	c.Constraints = cloneList(m.Constraints, (*Constraint).Clone)
	c.Reactions = cloneList(m.Reactions, (*Reaction).Clone)
	c.Events = cloneList(m.Events, (*Event).Clone)
	c.Ports = cloneList(m.Ports, (*Port).Clone)
	c.Submodels = cloneList(m.Submodels, (*Submodel).Clone)
	return &c
}

func (e *ExternalModelDefinition) Clone() *ExternalModelDefinition {
	c := *e
	c.Base = e.Base.clone()
	return &c
}

func (p *Port) Clone() *Port {
	c := *p
	c.Base = p.Base.clone()
	c.Ref.Nested = p.Ref.Nested.Clone()
	return &c
}

func (d *Deletion) Clone() *Deletion {
	c := *d
	c.Base = d.Base.clone()
	c.Ref.Nested = d.Ref.Nested.Clone()
	return &c
}

func (s *Submodel) Clone() *Submodel {
	c := *s
	c.Base = s.Base.clone()
	c.Deletions = cloneList(s.Deletions, (*Deletion).Clone)
	return &c
}

func (f *FunctionDefinition) Clone() *FunctionDefinition {
	c := *f
	c.Base = f.Base.clone()
	c.Args = slices.Clone(f.Args)
	c.Body = f.Body.Clone()
	return &c
}

func (u *UnitDefinition) Clone() *UnitDefinition {
	c := *u
	c.Base = u.Base.clone()
	c.Units = slices.Clone(u.Units)
	return &c
}

func (x *Compartment) Clone() *Compartment {
	c := *x
	c.Base = x.Base.clone()
	c.SpatialDimensions = cloneFloat(x.SpatialDimensions)
	c.Size = cloneFloat(x.Size)
	c.Constant = cloneBool(x.Constant)
	return &c
}

func (x *Species) Clone() *Species {
	c := *x
	c.Base = x.Base.clone()
	c.InitialAmount = cloneFloat(x.InitialAmount)
	c.InitialConcentration = cloneFloat(x.InitialConcentration)
	c.HasOnlySubstanceUnits = cloneBool(x.HasOnlySubstanceUnits)
	c.BoundaryCondition = cloneBool(x.BoundaryCondition)
	c.Constant = cloneBool(x.Constant)
	return &c
}

func (x *Parameter) Clone() *Parameter {
	c := *x
	c.Base = x.Base.clone()
	c.Value = cloneFloat(x.Value)
	c.Constant = cloneBool(x.Constant)
	return &c
}

func (x *InitialAssignment) Clone() *InitialAssignment {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}

func (x *Rule) Clone() *Rule {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}

func (x *Constraint) Clone() *Constraint {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}

func (x *Reaction) Clone() *Reaction {
	c := *x
	c.Base = x.Base.clone()
	c.Reversible = cloneBool(x.Reversible)
	c.Reactants = cloneList(x.Reactants, (*SpeciesReference).Clone)
	c.Products = cloneList(x.Products, (*SpeciesReference).Clone)
	c.Modifiers = cloneList(x.Modifiers, (*ModifierSpeciesReference).Clone)
	if x.KineticLaw != nil {
		c.KineticLaw = x.KineticLaw.Clone()
	}
	return &c
}

func (x *SpeciesReference) Clone() *SpeciesReference {
	c := *x
	c.Base = x.Base.clone()
	c.Stoichiometry = cloneFloat(x.Stoichiometry)
	c.Constant = cloneBool(x.Constant)
	return &c
}

func (x *ModifierSpeciesReference) Clone() *ModifierSpeciesReference {
	c := *x
	c.Base = x.Base.clone()
	return &c
}

func (x *KineticLaw) Clone() *KineticLaw {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	c.LocalParameters = cloneList(x.LocalParameters, (*LocalParameter).Clone)
	return &c
}

func (x *LocalParameter) Clone() *LocalParameter {
	c := *x
	c.Base = x.Base.clone()
	c.Value = cloneFloat(x.Value)
	return &c
}

func (x *Event) Clone() *Event {
	c := *x
	c.Base = x.Base.clone()
	c.UseValuesFromTriggerTime = cloneBool(x.UseValuesFromTriggerTime)
	if x.Trigger != nil {
		c.Trigger = x.Trigger.Clone()
	}
	if x.Delay != nil {
		c.Delay = x.Delay.Clone()
	}
	if x.Priority != nil {
		c.Priority = x.Priority.Clone()
	}
	c.Assignments = cloneList(x.Assignments, (*EventAssignment).Clone)
	return &c
}

func (x *Trigger) Clone() *Trigger {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	c.InitialValue = cloneBool(x.InitialValue)
	c.Persistent = cloneBool(x.Persistent)
	return &c
}

func (x *Delay) Clone() *Delay {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}

func (x *Priority) Clone() *Priority {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}

func (x *EventAssignment) Clone() *EventAssignment {
	c := *x
	c.Base = x.Base.clone()
	c.Math = x.Math.Clone()
	return &c
}
