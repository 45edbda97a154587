// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Model and Document, the two containers of the tree.
package sbml

// Model is a set of element lists. A model either is the document's main
// model or a model definition instantiated through submodels.
type Model struct {
	Base
	// CompEnabled marks that the composition extension is active on the model.
	CompEnabled bool

	SubstanceUnits   string
	TimeUnits        string
	VolumeUnits      string
	AreaUnits        string
	LengthUnits      string
	ExtentUnits      string
	ConversionFactor string

	FunctionDefinitions []*FunctionDefinition
	UnitDefinitions     []*UnitDefinition
	Compartments        []*Compartment
	Species             []*Species
	Parameters          []*Parameter
	InitialAssignments  []*InitialAssignment
	Rules               []*Rule
	Constraints         []*Constraint
	Reactions           []*Reaction
	Events              []*Event

	Ports     []*Port
	Submodels []*Submodel
}

func (*Model) TypeName() string { return "model" }

// NewModel returns an empty model with the given id.
func NewModel(id string) *Model {
	return &Model{Base: Base{ID: id}}
}

// IsEmpty reports whether the model has no content elements.
func (m *Model) IsEmpty() bool {
	empty := true
	m.Walk(func(Element) bool {
		empty = false
		return false
	})
	return empty
}

// Document is one parsed file.
type Document struct {
	// LocationURI is where the document was read from. It is the base against
	// which external model definition sources are resolved.
	LocationURI string
	// CompEnabled marks that the document declares the composition extension.
	CompEnabled bool

	Model                    *Model
	ModelDefinitions         []*Model
	ExternalModelDefinitions []*ExternalModelDefinition
}

// ModelDefinition returns the local model definition with the given id.
func (d *Document) ModelDefinition(id string) *Model {
	for _, m := range d.ModelDefinitions {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ExternalModelDefinition returns the external model definition with the
// given id.
func (d *Document) ExternalModelDefinition(id string) *ExternalModelDefinition {
	for _, e := range d.ExternalModelDefinitions {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FindModel resolves id to the main model or a local model definition.
func (d *Document) FindModel(id string) *Model {
	if d.Model != nil && d.Model.ID == id {
		return d.Model
	}
	return d.ModelDefinition(id)
}
