// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the composition-extension parts of the tree: references,
// replacements, deletions, ports, submodels and external model definitions.
package sbml

// Ref points at an element inside a submodel. Exactly one of IDRef,
// MetaIDRef, PortRef and UnitRef is expected to be set. When Nested is set the
// referenced element is itself a submodel and Nested continues inside it.
type Ref struct {
	IDRef     string
	MetaIDRef string
	PortRef   string
	UnitRef   string
	Nested    *Ref
}

// Clone returns a deep copy of the reference chain.
func (r *Ref) Clone() *Ref {
	if r == nil {
		return nil
	}
	c := *r
	c.Nested = r.Nested.Clone()
	return &c
}

// Leaf follows Nested to the innermost reference of the chain.
func (r *Ref) Leaf() *Ref {
	for r.Nested != nil {
		r = r.Nested
	}
	return r
}

// ReplacedElement declares that the owning element stands in for an element
// of one of the model's submodels.
type ReplacedElement struct {
	SubmodelRef      string
	Ref              Ref
	ConversionFactor string
	DeletionRef      string
}

// Clone returns a deep copy.
func (r *ReplacedElement) Clone() *ReplacedElement {
	if r == nil {
		return nil
	}
	c := *r
	c.Ref.Nested = r.Ref.Nested.Clone()
	return &c
}

// ReplacedBy declares that the owning element is replaced by an element of
// one of the model's submodels.
type ReplacedBy struct {
	SubmodelRef string
	Ref         Ref
}

// Clone returns a deep copy.
func (r *ReplacedBy) Clone() *ReplacedBy {
	if r == nil {
		return nil
	}
	c := *r
	c.Ref.Nested = r.Ref.Nested.Clone()
	return &c
}

// Deletion removes an element from a submodel instance.
type Deletion struct {
	Base
	Ref Ref
}

func (*Deletion) TypeName() string { return "deletion" }

// Port re-exposes an inner element under its own id.
type Port struct {
	Base
	Ref Ref
}

func (*Port) TypeName() string { return "port" }

// Submodel is a named instance of a model definition inside a parent model.
type Submodel struct {
	Base
	ModelRef               string
	TimeConversionFactor   string
	ExtentConversionFactor string
	Deletions              []*Deletion
}

func (*Submodel) TypeName() string { return "submodel" }

// ExternalModelDefinition names a model that lives in another document.
type ExternalModelDefinition struct {
	Base
	Source   string
	ModelRef string
	MD5      string
}

func (*ExternalModelDefinition) TypeName() string { return "external_model_definition" }
