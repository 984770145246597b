// Package merge consolidates device tree nodes which are fragments of the
// same logical node.
//
// Device tree source allows a labeled node to be amended anywhere in the
// file with a "&label { ... };" block, and a node path to be reopened by
// repeating it.  [ByRef] splices each back-reference node into the node
// carrying its label (or, for "&{/path}" references, the node at that
// path).  [ByPath] then splices nodes sharing a full path into the one
// created first.  [Merge] checks consistency and runs both phases.
//
// Merging is idempotent.
package merge
