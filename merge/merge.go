package merge

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/dts-format/debug"
	"github.com/signadot/dts-format/ir"
)

// Merge validates t and runs [ByRef] then [ByPath].  If validation fails
// with ir.ErrMergeConsistency the tree is unchanged.
func Merge(t *ir.Tree) error {
	if err := Check(t); err != nil {
		return err
	}
	if err := ByRef(t); err != nil {
		return err
	}
	return ByPath(t)
}

// Check reports label and reference conflicts which would make a merge
// ambiguous: a label declared by more than one node, or back-references
// whose targets form a cycle, such as a block referring into itself or two
// blocks each referring into the other.
func Check(t *ir.Tree) error {
	idx := t.LabelIndex()
	for _, l := range slices.Sorted(maps.Keys(idx)) {
		hs := idx[l]
		if len(hs) < 2 {
			continue
		}
		sigs := make([]string, len(hs))
		for i, h := range hs {
			sigs[i] = t.Node(h).Path()
		}
		return fmt.Errorf("%w: label %q is declared by %d nodes: %s", ir.ErrMergeConsistency, l, len(hs), strings.Join(sigs, ", "))
	}
	return checkCycles(t)
}

// checkCycles follows each back-reference to the top level block holding
// its target.  When that block is itself a back-reference the splice
// depends on it; a chain returning to its start cannot be merged.
func checkCycles(t *ir.Tree) error {
	next := map[*ir.Node]*ir.Node{}
	refs := refNodes(t)
	for _, r := range refs {
		dst := Resolve(t, r.Ref)
		if dst == nil {
			continue
		}
		top := dst
		for top.Parent() != nil {
			top = top.Parent()
		}
		if top.Ref != "" {
			next[r] = top
		}
	}
	for _, r := range refs {
		chain := []string{"&" + r.Ref}
		seen := map[*ir.Node]bool{r: true}
		for n := next[r]; n != nil; n = next[n] {
			chain = append(chain, "&"+n.Ref)
			if n == r {
				return fmt.Errorf("%w: back-references form a cycle: %s", ir.ErrMergeConsistency, strings.Join(chain, " -> "))
			}
			if seen[n] {
				break
			}
			seen[n] = true
		}
	}
	return nil
}

// Resolve finds the target of a back-reference: the node labeled ref, or
// for a path reference "{/a/b}" the node at that path.
func Resolve(t *ir.Tree, ref string) *ir.Node {
	if p, ok := strings.CutPrefix(ref, "{"); ok {
		return t.ResolvePath(strings.TrimSuffix(p, "}"))
	}
	hs := t.LabelIndex()[ref]
	if len(hs) == 0 {
		return nil
	}
	return t.Node(hs[0])
}

// ByRef splices every resolvable back-reference node into its target, in
// handle order.  The back-reference of a spliced node is cleared and the
// node removed.  Unresolvable back-references stay detached.
func ByRef(t *ir.Tree) error {
	for _, r := range refNodes(t) {
		if t.Node(r.Handle) != r {
			continue
		}
		dst := Resolve(t, r.Ref)
		if dst == nil {
			if debug.Merge() {
				debug.Logf("&%s is unresolved\n", r.Ref)
			}
			continue
		}
		if debug.Merge() {
			debug.Logf("merge &%s (handle %d) into %s (handle %d)\n", r.Ref, r.Handle, dst.Path(), dst.Handle)
		}
		if err := splice(t, dst, r); err != nil {
			return err
		}
	}
	return nil
}

// ByPath splices nodes sharing a full path into the one with the lowest
// handle.  Shallower paths are merged first since merging two parents can
// make their children collide.
func ByPath(t *ir.Tree) error {
	for {
		groups := dupGroups(t)
		if len(groups) == 0 {
			return nil
		}
		for _, hs := range groups {
			dst := t.Node(hs[0])
			for _, h := range hs[1:] {
				src := t.Node(h)
				if debug.Merge() {
					debug.Logf("merge %s (handle %d) into handle %d\n", src.Path(), h, dst.Handle)
				}
				if err := splice(t, dst, src); err != nil {
					return err
				}
			}
		}
	}
}

// dupGroups returns the groups of handles sharing a path at the shallowest
// depth where any path is shared, each group in ascending handle order.
func dupGroups(t *ir.Tree) [][]ir.Handle {
	idx := t.PathIndex()
	var (
		res   [][]ir.Handle
		depth = -1
	)
	for _, p := range slices.Sorted(maps.Keys(idx)) {
		hs := idx[p]
		if len(hs) < 2 {
			continue
		}
		d := t.Node(hs[0]).Depth()
		switch {
		case depth == -1 || d < depth:
			depth = d
			res = [][]ir.Handle{hs}
		case d == depth:
			res = append(res, hs)
		}
	}
	return res
}

func splice(t *ir.Tree, dst, src *ir.Node) error {
	if err := dst.Join(src); err != nil {
		return err
	}
	src.Ref = ""
	return t.Remove(src)
}

func refNodes(t *ir.Tree) []*ir.Node {
	var res []*ir.Node
	for _, n := range t.Nodes() {
		if n.Ref != "" {
			res = append(res, n)
		}
	}
	return res
}
