// This file translates the gohcl schema structs into the format-agnostic
// element tree of the sbml package.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// translateBase decodes the shared attributes kept in an element's remain
// body. A non-empty label wins over an `id` attribute.
func translateBase(label string, remain hcl.Body) (sbml.Base, error) {
	var c commonBlock
	if remain != nil {
		if diags := gohcl.DecodeBody(remain, nil, &c); diags.HasErrors() {
			return sbml.Base{}, diags
		}
	}
	b := sbml.Base{
		ID:         c.ID,
		MetaID:     c.MetaID,
		Name:       c.Name,
		SBOTerm:    c.SBOTerm,
		Annotation: c.Annotation,
	}
	if label != "" {
		b.ID = label
	}
	for _, re := range c.ReplacedElements {
		b.ReplacedElements = append(b.ReplacedElements, &sbml.ReplacedElement{
			SubmodelRef:      re.SubmodelRef,
			Ref:              sbml.Ref{IDRef: re.IDRef, MetaIDRef: re.MetaIDRef, PortRef: re.PortRef, UnitRef: re.UnitRef, Nested: translateRef(re.Nested)},
			ConversionFactor: re.ConversionFactor,
			DeletionRef:      re.DeletionRef,
		})
	}
	if rb := c.ReplacedBy; rb != nil {
		b.ReplacedBy = &sbml.ReplacedBy{
			SubmodelRef: rb.SubmodelRef,
			Ref:         sbml.Ref{IDRef: rb.IDRef, MetaIDRef: rb.MetaIDRef, PortRef: rb.PortRef, UnitRef: rb.UnitRef, Nested: translateRef(rb.Nested)},
		}
	}
	return b, nil
}

func translateRef(r *refBlock) *sbml.Ref {
	if r == nil {
		return nil
	}
	return &sbml.Ref{
		IDRef:     r.IDRef,
		MetaIDRef: r.MetaIDRef,
		PortRef:   r.PortRef,
		UnitRef:   r.UnitRef,
		Nested:    translateRef(r.Nested),
	}
}

// translateModel converts one model or model_definition block.
func translateModel(mb *modelBlock) (*sbml.Model, error) {
	base, err := translateBase(mb.ID, mb.Remain)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", mb.ID, err)
	}
	m := &sbml.Model{
		Base:             base,
		CompEnabled:      mb.Comp != nil && *mb.Comp,
		SubstanceUnits:   mb.SubstanceUnits,
		TimeUnits:        mb.TimeUnits,
		VolumeUnits:      mb.VolumeUnits,
		AreaUnits:        mb.AreaUnits,
		LengthUnits:      mb.LengthUnits,
		ExtentUnits:      mb.ExtentUnits,
		ConversionFactor: mb.ConversionFactor,
	}

	wrap := func(kind, id string, err error) error {
		return fmt.Errorf("model %q: %s %q: %w", mb.ID, kind, id, err)
	}

	for _, b := range mb.FunctionDefinitions {
		fd, err := translateFunctionDefinition(b)
		if err != nil {
			return nil, wrap("function_definition", b.ID, err)
		}
		m.FunctionDefinitions = append(m.FunctionDefinitions, fd)
	}
	for _, b := range mb.UnitDefinitions {
		base, err := translateBase(b.ID, b.Remain)
		if err != nil {
			return nil, wrap("unit_definition", b.ID, err)
		}
		ud := &sbml.UnitDefinition{Base: base}
		for _, u := range b.Units {
			ud.Units = append(ud.Units, translateUnit(u))
		}
		m.UnitDefinitions = append(m.UnitDefinitions, ud)
	}
	for _, b := range mb.Compartments {
		base, err := translateBase(b.ID, b.Remain)
		if err != nil {
			return nil, wrap("compartment", b.ID, err)
		}
		m.Compartments = append(m.Compartments, &sbml.Compartment{
			Base:              base,
			SpatialDimensions: b.SpatialDimensions,
			Size:              b.Size,
			Units:             b.Units,
			Constant:          b.Constant,
		})
	}
	for _, b := range mb.Species {
		base, err := translateBase(b.ID, b.Remain)
		if err != nil {
			return nil, wrap("species", b.ID, err)
		}
		m.Species = append(m.Species, &sbml.Species{
			Base:                  base,
			Compartment:           b.Compartment,
			InitialAmount:         b.InitialAmount,
			InitialConcentration:  b.InitialConcentration,
			SubstanceUnits:        b.SubstanceUnits,
			HasOnlySubstanceUnits: b.HasOnlySubstanceUnits,
			BoundaryCondition:     b.BoundaryCondition,
			Constant:              b.Constant,
			ConversionFactor:      b.ConversionFactor,
		})
	}
	for _, b := range mb.Parameters {
		base, err := translateBase(b.ID, b.Remain)
		if err != nil {
			return nil, wrap("parameter", b.ID, err)
		}
		m.Parameters = append(m.Parameters, &sbml.Parameter{
			Base:     base,
			Value:    b.Value,
			Units:    b.Units,
			Constant: b.Constant,
		})
	}
	for _, b := range mb.InitialAssignments {
		base, err := translateBase("", b.Remain)
		if err != nil {
			return nil, wrap("initial_assignment", b.Symbol, err)
		}
		math, err := convertMath(b.Math, "math", true)
		if err != nil {
			return nil, wrap("initial_assignment", b.Symbol, err)
		}
		m.InitialAssignments = append(m.InitialAssignments, &sbml.InitialAssignment{Base: base, Symbol: b.Symbol, Math: math})
	}
	for _, b := range mb.AssignmentRules {
		r, err := translateRule(sbml.AssignmentRule, b.Variable, b.Math, b.Remain)
		if err != nil {
			return nil, wrap("assignment_rule", b.Variable, err)
		}
		m.Rules = append(m.Rules, r)
	}
	for _, b := range mb.RateRules {
		r, err := translateRule(sbml.RateRule, b.Variable, b.Math, b.Remain)
		if err != nil {
			return nil, wrap("rate_rule", b.Variable, err)
		}
		m.Rules = append(m.Rules, r)
	}
	for i, b := range mb.AlgebraicRules {
		r, err := translateRule(sbml.AlgebraicRule, "", b.Math, b.Remain)
		if err != nil {
			return nil, wrap("algebraic_rule", fmt.Sprint(i), err)
		}
		m.Rules = append(m.Rules, r)
	}
	for i, b := range mb.Constraints {
		base, err := translateBase("", b.Remain)
		if err != nil {
			return nil, wrap("constraint", fmt.Sprint(i), err)
		}
		math, err := convertMath(b.Math, "math", true)
		if err != nil {
			return nil, wrap("constraint", fmt.Sprint(i), err)
		}
		m.Constraints = append(m.Constraints, &sbml.Constraint{Base: base, Math: math, Message: b.Message})
	}
	for _, b := range mb.Reactions {
		r, err := translateReaction(b)
		if err != nil {
			return nil, wrap("reaction", b.ID, err)
		}
		m.Reactions = append(m.Reactions, r)
	}
	for _, b := range mb.Events {
		ev, err := translateEvent(b)
		if err != nil {
			return nil, wrap("event", b.ID, err)
		}
		m.Events = append(m.Events, ev)
	}
	for _, b := range mb.Ports {
		base, err := translateBase(b.ID, b.Remain)
		if err != nil {
			return nil, wrap("port", b.ID, err)
		}
		m.Ports = append(m.Ports, &sbml.Port{
			Base: base,
			Ref:  sbml.Ref{IDRef: b.IDRef, MetaIDRef: b.MetaIDRef, UnitRef: b.UnitRef, Nested: translateRef(b.Nested)},
		})
	}
	for _, b := range mb.Submodels {
		sm, err := translateSubmodel(b)
		if err != nil {
			return nil, wrap("submodel", b.ID, err)
		}
		m.Submodels = append(m.Submodels, sm)
	}
	return m, nil
}

func translateFunctionDefinition(b *functionDefinitionBlock) (*sbml.FunctionDefinition, error) {
	base, err := translateBase(b.ID, b.Remain)
	if err != nil {
		return nil, err
	}
	body, err := convertMath(b.Body, "body", true)
	if err != nil {
		return nil, err
	}
	return &sbml.FunctionDefinition{Base: base, Args: b.Args, Body: body}, nil
}

func translateUnit(u *unitBlock) sbml.Unit {
	out := sbml.Unit{Kind: u.Kind, Exponent: 1, Multiplier: 1}
	if u.Exponent != nil {
		out.Exponent = *u.Exponent
	}
	if u.Scale != nil {
		out.Scale = *u.Scale
	}
	if u.Multiplier != nil {
		out.Multiplier = *u.Multiplier
	}
	return out
}

func translateRule(kind sbml.RuleKind, variable string, expr hcl.Expression, remain hcl.Body) (*sbml.Rule, error) {
	base, err := translateBase("", remain)
	if err != nil {
		return nil, err
	}
	math, err := convertMath(expr, "math", true)
	if err != nil {
		return nil, err
	}
	return &sbml.Rule{Base: base, Kind: kind, Variable: variable, Math: math}, nil
}

func translateReaction(b *reactionBlock) (*sbml.Reaction, error) {
	base, err := translateBase(b.ID, b.Remain)
	if err != nil {
		return nil, err
	}
	r := &sbml.Reaction{Base: base, Reversible: b.Reversible, Compartment: b.Compartment}

	speciesRefs := func(blocks []*speciesReferenceBlock) ([]*sbml.SpeciesReference, error) {
		var out []*sbml.SpeciesReference
		for _, sb := range blocks {
			base, err := translateBase("", sb.Remain)
			if err != nil {
				return nil, fmt.Errorf("species reference to %q: %w", sb.Species, err)
			}
			out = append(out, &sbml.SpeciesReference{
				Base:          base,
				Species:       sb.Species,
				Stoichiometry: sb.Stoichiometry,
				Constant:      sb.Constant,
			})
		}
		return out, nil
	}
	if r.Reactants, err = speciesRefs(b.Reactants); err != nil {
		return nil, err
	}
	if r.Products, err = speciesRefs(b.Products); err != nil {
		return nil, err
	}
	for _, mb := range b.Modifiers {
		base, err := translateBase("", mb.Remain)
		if err != nil {
			return nil, fmt.Errorf("modifier %q: %w", mb.Species, err)
		}
		r.Modifiers = append(r.Modifiers, &sbml.ModifierSpeciesReference{Base: base, Species: mb.Species})
	}
	if kb := b.KineticLaw; kb != nil {
		base, err := translateBase("", kb.Remain)
		if err != nil {
			return nil, fmt.Errorf("kinetic_law: %w", err)
		}
		math, err := convertMath(kb.Math, "math", true)
		if err != nil {
			return nil, fmt.Errorf("kinetic_law: %w", err)
		}
		kl := &sbml.KineticLaw{Base: base, Math: math}
		for _, lb := range kb.LocalParameters {
			base, err := translateBase(lb.ID, lb.Remain)
			if err != nil {
				return nil, fmt.Errorf("local_parameter %q: %w", lb.ID, err)
			}
			kl.LocalParameters = append(kl.LocalParameters, &sbml.LocalParameter{Base: base, Value: lb.Value, Units: lb.Units})
		}
		r.KineticLaw = kl
	}
	return r, nil
}

func translateEvent(b *eventBlock) (*sbml.Event, error) {
	base, err := translateBase(b.ID, b.Remain)
	if err != nil {
		return nil, err
	}
	ev := &sbml.Event{Base: base, UseValuesFromTriggerTime: b.UseValuesFromTriggerTime}

	if tb := b.Trigger; tb != nil {
		base, err := translateBase("", tb.Remain)
		if err != nil {
			return nil, fmt.Errorf("trigger: %w", err)
		}
		math, err := convertMath(tb.Math, "math", true)
		if err != nil {
			return nil, fmt.Errorf("trigger: %w", err)
		}
		ev.Trigger = &sbml.Trigger{Base: base, Math: math, InitialValue: tb.InitialValue, Persistent: tb.Persistent}
	}
	if db := b.Delay; db != nil {
		base, math, err := translateMathBlock(db)
		if err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
		ev.Delay = &sbml.Delay{Base: base, Math: math}
	}
	if pb := b.Priority; pb != nil {
		base, math, err := translateMathBlock(pb)
		if err != nil {
			return nil, fmt.Errorf("priority: %w", err)
		}
		ev.Priority = &sbml.Priority{Base: base, Math: math}
	}
	for _, ab := range b.Assignments {
		base, err := translateBase("", ab.Remain)
		if err != nil {
			return nil, fmt.Errorf("event_assignment %q: %w", ab.Variable, err)
		}
		math, err := convertMath(ab.Math, "math", true)
		if err != nil {
			return nil, fmt.Errorf("event_assignment %q: %w", ab.Variable, err)
		}
		ev.Assignments = append(ev.Assignments, &sbml.EventAssignment{Base: base, Variable: ab.Variable, Math: math})
	}
	return ev, nil
}

func translateMathBlock(b *mathBlock) (sbml.Base, *formula.Node, error) {
	base, err := translateBase("", b.Remain)
	if err != nil {
		return sbml.Base{}, nil, err
	}
	math, err := convertMath(b.Math, "math", true)
	if err != nil {
		return sbml.Base{}, nil, err
	}
	return base, math, nil
}

func translateSubmodel(b *submodelBlock) (*sbml.Submodel, error) {
	base, err := translateBase(b.ID, b.Remain)
	if err != nil {
		return nil, err
	}
	sm := &sbml.Submodel{
		Base:                   base,
		ModelRef:               b.ModelRef,
		TimeConversionFactor:   b.TimeConversionFactor,
		ExtentConversionFactor: b.ExtentConversionFactor,
	}
	for _, db := range b.Deletions {
		base, err := translateBase("", db.Remain)
		if err != nil {
			return nil, fmt.Errorf("deletion: %w", err)
		}
		sm.Deletions = append(sm.Deletions, &sbml.Deletion{
			Base: base,
			Ref:  sbml.Ref{IDRef: db.IDRef, MetaIDRef: db.MetaIDRef, PortRef: db.PortRef, UnitRef: db.UnitRef, Nested: translateRef(db.Nested)},
		})
	}
	return sm, nil
}

func translateExternalModel(b *externalModelBlock) (*sbml.ExternalModelDefinition, error) {
	base, err := translateBase(b.ID, b.Remain)
	if err != nil {
		return nil, fmt.Errorf("external_model_definition %q: %w", b.ID, err)
	}
	return &sbml.ExternalModelDefinition{Base: base, Source: b.Source, ModelRef: b.ModelRef, MD5: b.MD5}, nil
}
