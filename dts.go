package dts

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/dts-format/dictify"
	"github.com/signadot/dts-format/encode"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/merge"
	"github.com/signadot/dts-format/parse"
)

// Import parses source text into a tree.
func Import(d []byte, opts ...parse.ParseOption) (*ir.Tree, error) {
	return parse.Parse(d, opts...)
}

// Load parses the source file at path.  Read errors are returned
// unchanged.
func Load(path string, opts ...parse.ParseOption) (*ir.Tree, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, append([]parse.ParseOption{parse.ParseFilename(path)}, opts...)...)
}

// LoadAny loads source, YAML or JSON according to the suffix of path.
func LoadAny(path string, opts ...parse.ParseOption) (*ir.Tree, error) {
	return Decode(format.FromFilename(path), path, opts...)
}

// Decode reads the file at path in format f.
func Decode(f format.Format, path string, opts ...parse.ParseOption) (*ir.Tree, error) {
	if !f.IsInterchange() {
		return Load(path, opts...)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := dictify.Unmarshal(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Filename == "" {
		t.Filename = path
	}
	return t, nil
}

// Merge runs the merge engine on t in place.
func Merge(t *ir.Tree) error {
	return merge.Merge(t)
}

// Serialize renders t as source text.
func Serialize(t *ir.Tree, opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal renders t in format f.
func Marshal(t *ir.Tree, f format.Format, opts ...encode.EncodeOption) ([]byte, error) {
	if f.IsInterchange() {
		return dictify.Marshal(t, f)
	}
	return Serialize(t, opts...)
}

// Export writes t as source text to path.
func Export(t *ir.Tree, path string, opts ...encode.EncodeOption) error {
	return write(t, format.DTSFormat, path, opts)
}

// ExportAny writes t to path in the format given by its suffix.
func ExportAny(t *ir.Tree, path string, opts ...encode.EncodeOption) error {
	return write(t, format.FromFilename(path), path, opts)
}

func write(t *ir.Tree, f format.Format, path string, opts []encode.EncodeOption) (err error) {
	d, err := Marshal(t, f, opts...)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = out.Write(d)
	return err
}
