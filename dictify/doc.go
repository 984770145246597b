// Package dictify maps device trees to and from a plain record form which
// is written as YAML or JSON.
//
// A document has the keys filename, dts_version, gcc_include, gcc_define,
// dtc_directives and nodes.  dtc_directives is a sequence of single entry
// mappings since a tag such as memreserve may repeat.  nodes maps the signature text of each top
// level node ("/", "&uart0") to a node record with the keys signature,
// dtc_include, dtc_delete_node, dtc_delete_property, gcc_include (the
// "#include" lines inside the block), properties and children, children being keyed like nodes.  A record may give nodename,
// labels, ref and unit_address instead of signature; with neither, the key
// is the signature.
//
// Property values are true for booleans, integers, strings, "<a b c>"
// strings for tuples and sequences of those for lists.  A string which
// would otherwise read as a tuple or as a bare macro or reference is kept
// in double quotes.
package dictify
