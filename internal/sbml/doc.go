// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sbml provides the Go struct representation of a reaction-network
// model document with hierarchical composition. It is the format-agnostic
// element tree the rest of the program works on: the HCL codec decodes into
// it and encodes from it, and the flattener rewrites it.
//
// # Core Concepts
//
//   - Document: one file. It holds the main Model plus the composition
//     library: local ModelDefinitions and ExternalModelDefinitions.
//
//   - Model: compartments, species, parameters, reactions, rules, events and
//     the other element lists, plus the composition parts of a model: Ports
//     and Submodels.
//
//   - Base: the attributes every element carries (id, metaId, name,
//     annotation) and its composition decorations, the ReplacedElement list
//     and the optional ReplacedBy.
//
//   - Ref: a possibly nested reference into a submodel, used by deletions,
//     replacements, ports and replaced-by declarations.
//
// Every element type implements Element, so generic code can walk a model,
// look elements up by id or metaId and detach them without a type switch at
// every call site. Clone produces fully independent deep copies; no slice or
// pointer is shared between a clone and its source.
package sbml
