// Package dts reads, consolidates and writes device tree source.
//
//	tree, err := dts.Load("board.dts", parse.ParseMerge(true))
//	...
//	nodes, err := dts.Find(tree, `"okay" == props.status && compatible("ns16550a")`)
//	...
//	err = dts.Export(tree, "out.dts")
//
// Trees are also read and written in the YAML and JSON record form of
// package dictify; [LoadAny] and [ExportAny] pick the form from the file
// suffix, and [Patch] edits a tree through that form with a JSON patch or
// merge patch.
package dts
