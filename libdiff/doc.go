// Package libdiff compares device trees.
//
// [Compare] aligns the node paths of two trees and, for nodes present in
// both, their property names, reporting inserted, deleted and changed
// nodes and properties.  Back-reference blocks which were not merged are
// compared by their reference text ("&uart0").
//
// A [Diff] renders as a line oriented report with [Diff.WriteTo], or as an
// ordered record with [Diff.Record] for YAML or JSON output.
package libdiff
