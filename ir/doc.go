// Package ir provides the in-memory representation of a device tree.
//
// # Overview
//
// A Tree owns every Node in a registry keyed by a stable integer Handle.
// Handle 0 is always the synthetic root node "/".  Nodes refer to their
// parent and children by handle rather than by pointer, so a node can be
// moved between parents, or merged into another node, by rewriting handles
// without walking the whole tree.
//
// # Node Structure
//
// Each node carries a Signature (labels, name and unit address, or a
// back-reference "&label"), an ordered list of Properties which is unique
// by name, an ordered list of children and the node level compiler
// directives (/include/, /delete-node/, /delete-property/).
//
// Properties are a closed tagged union selected by Type:
//
//   - BoolType: presence-only flag, "name;"
//   - IntType: a single integer, rendered "<0x..>"
//   - StringType: a quoted string
//   - TupleType: a cell group of opaque tokens, "<1 2 &label MACRO>"
//   - IntListType, StringListType, TupleListType: non-empty homogeneous
//     lists of the scalar variants
//
// # Derived Views
//
// Indexes by pathname (ByName), back-reference (ByRef), label (ByLabel)
// and full path (PathIndex) are computed on demand from the registry.
//
// # Related Packages
//
//   - github.com/signadot/dts-format/parse - Parse source text to a Tree
//   - github.com/signadot/dts-format/merge - Consolidate node fragments
//   - github.com/signadot/dts-format/encode - Encode a Tree to source text
package ir
