// Package formula is the in-memory expression tree used for every piece of
// model math: kinetic laws, rules, assignments, event triggers and function
// bodies.
//
// A Node is either a leaf (number, boolean, name, time symbol) or an operator
// with ordered children. The tree is mutated in place by the flattening code
// through a small contract:
//
//   - Children, Child and ReplaceChild for positional access,
//   - MultiplyWith and DivideBy to scale a subtree in place,
//   - IsLeaf and Kind for dispatch.
//
// String renders a node as a native HCL expression, which is also the syntax
// the loader reads math from, so a rendered formula can be parsed back.
package formula
