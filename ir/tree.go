package ir

import (
	"fmt"
	"maps"
	"slices"
)

// RootHandle is the handle of the synthetic root node "/".
const RootHandle Handle = 0

// Define is a "#define NAME [value]" preprocessor line.  An empty Value is a
// pure flag.
type Define struct {
	Name  string
	Value string
}

// Directive is a file level compiler directive such as "/plugin/;" or
// "/memreserve/ 0x0 0x1000;".
type Directive struct {
	Tag   string
	Value string
}

// Tree owns every node of a device tree in a registry keyed by handle.
type Tree struct {
	Filename   string
	Version    int
	Includes   []string
	Defines    []Define
	Directives []Directive

	nodes map[Handle]*Node
	next  Handle
}

func NewTree(filename string) *Tree {
	t := &Tree{
		Filename: filename,
		Version:  1,
		nodes:    map[Handle]*Node{},
	}
	root := &Node{Signature: Signature{Name: "/"}, parent: NoHandle}
	t.register(root)
	return t
}

func (t *Tree) register(n *Node) {
	n.Handle = t.next
	n.tree = t
	t.nodes[n.Handle] = n
	t.next++
}

func (t *Tree) Root() *Node { return t.nodes[RootHandle] }

func (t *Tree) Node(h Handle) *Node { return t.nodes[h] }

func (t *Tree) Len() int { return len(t.nodes) }

// Handles returns the registered handles in ascending order.
func (t *Tree) Handles() []Handle {
	return slices.Sorted(maps.Keys(t.nodes))
}

// Nodes returns all registered nodes in ascending handle order.
func (t *Tree) Nodes() []*Node {
	hs := t.Handles()
	res := make([]*Node, len(hs))
	for i, h := range hs {
		res[i] = t.nodes[h]
	}
	return res
}

// NewNode validates sig, registers a new node and attaches it under
// parent.  A nil parent leaves the node detached, which is where top level
// back-reference blocks live until they are merged.
func (t *Tree) NewNode(parent *Node, sig Signature) (*Node, error) {
	n, err := NewNode(sig)
	if err != nil {
		return nil, err
	}
	if sig.Name == "/" {
		return nil, fmt.Errorf("%w: only one root node", ErrSignature)
	}
	if parent != nil && parent.tree != t {
		return nil, fmt.Errorf("%w: parent %s is not in this tree", errInternal, parent)
	}
	t.register(n)
	if parent != nil {
		if err := parent.AddChild(n); err != nil {
			delete(t.nodes, n.Handle)
			return nil, err
		}
	}
	return n, nil
}

// Remove drops n and its subtree from the registry.  The root cannot be
// removed.
func (t *Tree) Remove(n *Node) error {
	if n.tree != t || t.nodes[n.Handle] != n {
		return fmt.Errorf("%w: %s is not registered", errInternal, n)
	}
	if n.Handle == RootHandle {
		return fmt.Errorf("%w: cannot remove root", errInternal)
	}
	if p := n.Parent(); p != nil {
		p.removeChild(n.Handle)
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, x.Children()...)
		delete(t.nodes, x.Handle)
		x.tree = nil
		x.parent = NoHandle
		x.children = nil
	}
	return nil
}

// Detached returns the parentless nodes other than the root, which are
// the unresolved back-reference blocks, in handle order.
func (t *Tree) Detached() []*Node {
	res := []*Node{}
	for _, n := range t.Nodes() {
		if n.Handle != RootHandle && n.parent == NoHandle {
			res = append(res, n)
		}
	}
	return res
}

// ByName indexes named nodes by pathname.  On collision the node with the
// highest handle wins.
func (t *Tree) ByName() map[string]*Node {
	res := map[string]*Node{}
	for _, n := range t.Nodes() {
		if n.Name != "" {
			res[n.PathName()] = n
		}
	}
	return res
}

// ByRef indexes back-reference nodes by their reference text.
func (t *Tree) ByRef() map[string]*Node {
	res := map[string]*Node{}
	for _, n := range t.Nodes() {
		if n.Ref != "" {
			res[n.Ref] = n
		}
	}
	return res
}

// ByLabel indexes labelled nodes by label.
func (t *Tree) ByLabel() map[string]*Node {
	res := map[string]*Node{}
	for _, n := range t.Nodes() {
		for _, l := range n.Labels {
			res[l] = n
		}
	}
	return res
}

// RefIndex maps reference text to the handles of nodes carrying it.
func (t *Tree) RefIndex() map[string][]Handle {
	res := map[string][]Handle{}
	for _, n := range t.Nodes() {
		if n.Ref != "" {
			res[n.Ref] = append(res[n.Ref], n.Handle)
		}
	}
	return res
}

// LabelIndex maps each label to the handles of the nodes declaring it.
func (t *Tree) LabelIndex() map[string][]Handle {
	res := map[string][]Handle{}
	for _, n := range t.Nodes() {
		for _, l := range n.Labels {
			res[l] = append(res[l], n.Handle)
		}
	}
	return res
}

// PathIndex maps each full path to the handles of the nodes at that path,
// in ascending order.
func (t *Tree) PathIndex() map[string][]Handle {
	res := map[string][]Handle{}
	for _, n := range t.Nodes() {
		p := n.Path()
		res[p] = append(res[p], n.Handle)
	}
	return res
}

// Paths returns the sorted set of node paths.
func (t *Tree) Paths() []string {
	return slices.Sorted(maps.Keys(t.PathIndex()))
}

// Lookup finds an existing top level node for a signature: the node
// carrying the same back-reference, the root, or a root child with the
// same name and unit address.
func (t *Tree) Lookup(sig *Signature) *Node {
	switch {
	case sig.Ref != "":
		for _, n := range t.Nodes() {
			if n.Ref == sig.Ref && n.parent == NoHandle {
				return n
			}
		}
		return nil
	case sig.Name == "/":
		return t.Root()
	case sig.Name != "":
		return t.Root().FindChild(sig.Name, sig.Address)
	}
	return nil
}

// SetDefine records a preprocessor define, replacing an existing one of
// the same name in place.
func (t *Tree) SetDefine(name, value string) {
	for i := range t.Defines {
		if t.Defines[i].Name == name {
			t.Defines[i].Value = value
			return
		}
	}
	t.Defines = append(t.Defines, Define{Name: name, Value: value})
}

func (t *Tree) Define(name string) (string, bool) {
	for _, d := range t.Defines {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}
