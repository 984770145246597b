package parse

type parseOpts struct {
	filename string
	merge    bool
}

type ParseOption func(*parseOpts)

// ParseFilename records the source file name on the tree and in errors.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// ParseMerge runs the merge engine after the tree is built.
func ParseMerge(v bool) ParseOption {
	return func(o *parseOpts) { o.merge = v }
}
