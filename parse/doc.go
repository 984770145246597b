// Package parse builds device trees from source text.
//
// [ParseSignature] parses node header text such as "uart0: serial@1000"
// or "&uart0".  [Parse] drives the [token] scanner and lexer over a whole
// source file and populates an [ir.Tree]:
//
//   - top level named blocks attach under the root,
//   - top level back-reference blocks ("&label { ... };") stay detached
//     until the merge engine splices them into the labeled node,
//   - blocks reopening an existing child (same name and unit address) add to
//     that child.
//
// With [ParseMerge] the merge engine runs on the result before it is
// returned.
package parse
