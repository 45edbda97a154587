// internal/pathkey/doc.go

/*
Package pathkey identifies a node of a composition tree by the ordered chain
of submodel-instance names that leads to it from the root model.

The canonical text form is a dot-separated sequence of segments, e.g.
`main.cell.nucleus`. The first segment names the root model itself; every
following segment is the id of a submodel instance declared by the node
before it.

Keys are values: Push and Pop return new keys and never alias the receiver,
so a key captured in a lookup table stays valid while the traversal keeps
descending and returning.
*/
package pathkey
