// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the content elements of a model. Optional numeric and
// boolean attributes are pointers so an unset attribute survives a round trip
// through the codecs.
package sbml

import "github.com/specialistvlad/compflat/internal/formula"

// FunctionDefinition is a named lambda. Args are the bound variable names of
// Body and are never rewritten as model identifiers.
type FunctionDefinition struct {
	Base
	Args []string
	Body *formula.Node
}

func (*FunctionDefinition) TypeName() string { return "function_definition" }

// Unit is one factor of a unit definition.
type Unit struct {
	Kind       string
	Exponent   float64
	Scale      int
	Multiplier float64
}

// UnitDefinition is a named product of units. Unit definition ids live in a
// namespace of their own.
type UnitDefinition struct {
	Base
	Units []Unit
}

func (*UnitDefinition) TypeName() string { return "unit_definition" }

type Compartment struct {
	Base
	SpatialDimensions *float64
	Size              *float64
	Units             string
	Constant          *bool
}

func (*Compartment) TypeName() string { return "compartment" }

type Species struct {
	Base
	Compartment           string
	InitialAmount         *float64
	InitialConcentration  *float64
	SubstanceUnits        string
	HasOnlySubstanceUnits *bool
	BoundaryCondition     *bool
	Constant              *bool
	ConversionFactor      string
}

func (*Species) TypeName() string { return "species" }

type Parameter struct {
	Base
	Value    *float64
	Units    string
	Constant *bool
}

func (*Parameter) TypeName() string { return "parameter" }

// InitialAssignment sets the initial value of Symbol.
type InitialAssignment struct {
	Base
	Symbol string
	Math   *formula.Node
}

func (*InitialAssignment) TypeName() string { return "initial_assignment" }

// RuleKind distinguishes the three rule flavours.
type RuleKind int

const (
	AlgebraicRule RuleKind = iota
	AssignmentRule
	RateRule
)

func (k RuleKind) String() string {
	switch k {
	case AssignmentRule:
		return "assignment_rule"
	case RateRule:
		return "rate_rule"
	default:
		return "algebraic_rule"
	}
}

// Rule is an algebraic, assignment or rate rule. Variable is empty for
// algebraic rules.
type Rule struct {
	Base
	Kind     RuleKind
	Variable string
	Math     *formula.Node
}

func (r *Rule) TypeName() string { return r.Kind.String() }

type Constraint struct {
	Base
	Math    *formula.Node
	Message string
}

func (*Constraint) TypeName() string { return "constraint" }

type Reaction struct {
	Base
	Reversible  *bool
	Compartment string
	Reactants   []*SpeciesReference
	Products    []*SpeciesReference
	Modifiers   []*ModifierSpeciesReference
	KineticLaw  *KineticLaw
}

func (*Reaction) TypeName() string { return "reaction" }

type SpeciesReference struct {
	Base
	Species       string
	Stoichiometry *float64
	Constant      *bool
}

func (*SpeciesReference) TypeName() string { return "species_reference" }

type ModifierSpeciesReference struct {
	Base
	Species string
}

func (*ModifierSpeciesReference) TypeName() string { return "modifier" }

type KineticLaw struct {
	Base
	Math            *formula.Node
	LocalParameters []*LocalParameter
}

func (*KineticLaw) TypeName() string { return "kinetic_law" }

// LocalParameter is scoped to its kinetic law; its id does not clash with
// model-wide identifiers.
type LocalParameter struct {
	Base
	Value *float64
	Units string
}

func (*LocalParameter) TypeName() string { return "local_parameter" }

type Event struct {
	Base
	UseValuesFromTriggerTime *bool
	Trigger                  *Trigger
	Delay                    *Delay
	Priority                 *Priority
	Assignments              []*EventAssignment
}

func (*Event) TypeName() string { return "event" }

type Trigger struct {
	Base
	Math         *formula.Node
	InitialValue *bool
	Persistent   *bool
}

func (*Trigger) TypeName() string { return "trigger" }

type Delay struct {
	Base
	Math *formula.Node
}

func (*Delay) TypeName() string { return "delay" }

type Priority struct {
	Base
	Math *formula.Node
}

func (*Priority) TypeName() string { return "priority" }

type EventAssignment struct {
	Base
	Variable string
	Math     *formula.Node
}

func (*EventAssignment) TypeName() string { return "event_assignment" }
