/*
Package comp flattens hierarchical model compositions.

A composed document has a main model that instantiates model definitions as
named submodels, which may instantiate further definitions. Elements cross
instance boundaries in three ways: a deletion drops an element of a
submodel, a replaced element stands in for an element of a submodel, and a
replaced-by hands an element's role to an element of a submodel.

Flattening visits the composition tree depth first. At each node:

 1. The definition is cloned and a snapshot kept for later attribute copies.
 2. Replaced-element declarations are recorded in the Registry under the
    path of the node they target.
 3. The node prefix is computed (ComputePrefix); the root has none.
 4. Each submodel's deletions are recorded and the submodel is visited, with
    its time and extent conversion factors appended to the inherited chains.
 5. Replaced-by declarations are recorded once the submodels are known.
 6. Elements the Registry marks for this node are removed, and the
    replacements collected for the Rewriter.
 7. A replaced species reference keeps its id and adopts the donor's
    attributes; assignments to it migrate to the donor's node.
 8. Assignments migrated to this node are spliced in.
 9. Element ids get the node prefix.
 10. The Rewriter maps every reference and scales math by conversion factors.
 11. The Merger appends the result to the flat model.

Unit attributes that name a replaced unit definition are resolved after the
whole tree has merged.

Internalizer is an optional pre-pass that pulls external model definitions
into the document so flattening itself never does I/O.
*/
package comp
