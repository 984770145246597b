// Package encode renders device trees as canonical source text.
//
// # Usage
//
//	tree, err := parse.Parse(src)
//	...
//	err = encode.Encode(tree, os.Stdout)
//
//	// single line lists, tab indentation, no banner
//	err = encode.Encode(tree, w, encode.Compact(true), encode.Tabs(true), encode.NoBanner())
//
// Output order is: banner, "/dts-vN/;", file level directives, #include
// and #define lines, the root subtree, then each unresolved back-reference
// block.  Within a node block /include/ directives come above the
// signature, followed by /delete-node/ and /delete-property/ directives,
// properties and children.
//
// Only semantic equivalence with the parsed input is preserved, not its
// formatting.
//
// # Related Packages
//
//   - github.com/signadot/dts-format/ir - tree representation
//   - github.com/signadot/dts-format/parse - parse source text to a tree
package encode
