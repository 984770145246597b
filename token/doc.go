// Package token provides the text level passes over device tree source.
//
// [StripComments] removes comments and linker markers from a sequence of
// [Line]s.  [Scan] splits the remaining text into statements and discovers
// the node block structure, producing a [File] of ordered [Block]s whose
// blocks with identical signatures are already combined.
//
// [Statements] groups the self-lines of a block into complete statements and
// [Lex] converts the right hand side of a property assignment to an
// [ir.Property].
package token
