package dts

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/signadot/dts-format/debug"
	"github.com/signadot/dts-format/dictify"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"
)

// Patch applies a patch to the record form of t and returns the resulting
// tree.  A patch holding a sequence is an RFC 6902 JSON patch, a mapping
// is an RFC 7386 merge patch.  Patches may be written in YAML.  t is not
// modified.
func Patch(t *ir.Tree, patch []byte) (*ir.Tree, error) {
	doc, err := dictify.Marshal(t, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	p, err := yaml.YAMLToJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	p = bytes.TrimSpace(p)
	var res []byte
	switch {
	case bytes.HasPrefix(p, []byte("[")):
		ops, err := jsonpatch.DecodePatch(p)
		if err != nil {
			return nil, fmt.Errorf("patch: %w", err)
		}
		res, err = ops.Apply(doc)
		if err != nil {
			return nil, fmt.Errorf("patch: %w", err)
		}
	case bytes.HasPrefix(p, []byte("{")):
		res, err = jsonpatch.MergePatch(doc, p)
		if err != nil {
			return nil, fmt.Errorf("merge patch: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: patch is neither a sequence nor a mapping", ir.ErrParse)
	}
	if debug.Merge() {
		debug.Logf("patched record:\n%s\n", string(res))
	}
	var doc2 yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(res, &doc2, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return dictify.ToTree(reorder(dictify.FromTree(t), doc2))
}

// reorder puts the keys of patched that also occur in orig back in orig's
// order, recursively.  Keys added by the patch follow in their own order.
func reorder(orig, patched yaml.MapSlice) yaml.MapSlice {
	pos := make(map[any]int, len(patched))
	for i, it := range patched {
		pos[it.Key] = i
	}
	res := make(yaml.MapSlice, 0, len(patched))
	used := make([]bool, len(patched))
	for _, o := range orig {
		i, ok := pos[o.Key]
		if !ok {
			continue
		}
		used[i] = true
		it := patched[i]
		om, ok1 := o.Value.(yaml.MapSlice)
		pm, ok2 := it.Value.(yaml.MapSlice)
		if ok1 && ok2 {
			it.Value = reorder(om, pm)
		}
		res = append(res, it)
	}
	for i, it := range patched {
		if !used[i] {
			res = append(res, it)
		}
	}
	return res
}

// MergePatch returns the RFC 7386 merge patch taking the record form of
// from to that of to.
func MergePatch(from, to *ir.Tree) ([]byte, error) {
	a, err := dictify.Marshal(from, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	b, err := dictify.Marshal(to, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}
