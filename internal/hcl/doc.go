// Package hcl reads and writes model documents in HCL syntax.
//
// A document holds at most one `model` block plus any number of
// `model_definition` and `external_model_definition` blocks. Element blocks
// are labelled with their id; math is written as native HCL expressions and
// converted to formula trees on load. Encode emits the same grammar in a
// fixed order, so Digest is stable for equal documents.
package hcl
