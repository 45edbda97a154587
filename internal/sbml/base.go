// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Base, the attribute set shared by every element, and the
// Element interface implemented by all element types.
package sbml

// Base holds the attributes and composition decorations common to all
// elements.
type Base struct {
	ID         string
	MetaID     string
	Name       string
	SBOTerm    string
	Annotation string

	ReplacedElements []*ReplacedElement
	ReplacedBy       *ReplacedBy
}

// Common returns the shared attribute set of an element.
func (b *Base) Common() *Base { return b }

// HasDecorations reports whether the element carries composition data.
func (b *Base) HasDecorations() bool {
	return len(b.ReplacedElements) > 0 || b.ReplacedBy != nil
}

// StripDecorations removes all composition data from the element.
func (b *Base) StripDecorations() {
	b.ReplacedElements = nil
	b.ReplacedBy = nil
}

func (b Base) clone() Base {
	c := b
	if b.ReplacedElements != nil {
		c.ReplacedElements = make([]*ReplacedElement, len(b.ReplacedElements))
		for i, r := range b.ReplacedElements {
			c.ReplacedElements[i] = r.Clone()
		}
	}
	c.ReplacedBy = b.ReplacedBy.Clone()
	return c
}

// Element is implemented by every node of the model tree.
type Element interface {
	Common() *Base
	// TypeName is the element's block name in documents and diagnostics.
	TypeName() string
}
