package ir

import (
	"fmt"
	"slices"
)

// Handle is the stable registry key of a node within its Tree.
type Handle int

// NoHandle marks the absence of a parent.
const NoHandle Handle = -1

// Node is a vertex of a device tree.  Parent and child relations are kept
// as handles into the owning Tree's registry.
type Node struct {
	Signature
	Handle Handle

	Properties []*Property

	Include        []string
	DeleteNode     []string
	DeleteProperty []string
	// CppInclude holds "#include" lines inside the node block, delimiters
	// kept.
	CppInclude []string

	// Line is the 1-based source line where the node was first opened, or 0.
	Line int

	tree     *Tree
	parent   Handle
	children []Handle
}

// NewNode creates a node which does not yet belong to a tree.
func NewNode(sig Signature) (*Node, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return &Node{Signature: sig.Clone(), Handle: NoHandle, parent: NoHandle}, nil
}

func (n *Node) Tree() *Tree { return n.tree }

func (n *Node) IsRoot() bool { return n.Name == "/" && n.Handle == RootHandle }

// Parent returns the parent node, or nil for the root and for detached
// back-reference nodes.
func (n *Node) Parent() *Node {
	if n.parent == NoHandle || n.tree == nil {
		return nil
	}
	return n.tree.nodes[n.parent]
}

func (n *Node) ParentHandle() Handle { return n.parent }

func (n *Node) Children() []*Node {
	res := make([]*Node, 0, len(n.children))
	for _, h := range n.children {
		if c := n.tree.nodes[h]; c != nil {
			res = append(res, c)
		}
	}
	return res
}

func (n *Node) ChildHandles() []Handle { return slices.Clone(n.children) }

// FindChild returns the child with the given name and unit address.
func (n *Node) FindChild(name string, addr *UnitAddress) *Node {
	for _, c := range n.Children() {
		if c.Name == name && c.Address.Equal(addr) {
			return c
		}
	}
	return nil
}

// AddChild attaches c under n, detaching it from any previous parent.
func (n *Node) AddChild(c *Node) error {
	if n.tree == nil || c.tree != n.tree {
		return fmt.Errorf("%w: %s and %s are not in the same tree", errInternal, n, c)
	}
	for a := n; a != nil; a = a.Parent() {
		if a == c {
			return fmt.Errorf("%w: cannot attach %s under its descendant %s", errInternal, c, n)
		}
	}
	if old := c.Parent(); old != nil {
		old.removeChild(c.Handle)
	}
	c.parent = n.Handle
	if !slices.Contains(n.children, c.Handle) {
		n.children = append(n.children, c.Handle)
	}
	return nil
}

func (n *Node) removeChild(h Handle) {
	n.children = slices.DeleteFunc(n.children, func(x Handle) bool { return x == h })
}

// SignatureText renders the canonical signature of n.
func (n *Node) SignatureText() string {
	return n.Signature.String()
}

func (n *Node) Property(name string) *Property {
	i := n.propIndex(name)
	if i < 0 {
		return nil
	}
	return n.Properties[i]
}

func (n *Node) propIndex(name string) int {
	return slices.IndexFunc(n.Properties, func(p *Property) bool { return p.Name == name })
}

// SetProperty sets p on n.  A property of the same name and type is
// replaced in place; one of a different type is removed and p is appended.
func (n *Node) SetProperty(p *Property) {
	i := n.propIndex(p.Name)
	switch {
	case i < 0:
		n.Properties = append(n.Properties, p)
	case n.Properties[i].Type == p.Type:
		n.Properties[i] = p
	default:
		n.Properties = slices.Delete(n.Properties, i, i+1)
		n.Properties = append(n.Properties, p)
	}
}

// UnsetProperty removes the named property, reporting whether it existed.
func (n *Node) UnsetProperty(name string) bool {
	i := n.propIndex(name)
	if i < 0 {
		return false
	}
	n.Properties = slices.Delete(n.Properties, i, i+1)
	return true
}

// ExtendProperty appends the elements of p to the named list property.  If
// the existing property is a scalar of p's element type it becomes the
// first element of a new list.
func (n *Node) ExtendProperty(p *Property) error {
	old := n.Property(p.Name)
	if old == nil {
		n.SetProperty(p)
		return nil
	}
	if old.Type.Elem() != p.Type.Elem() || old.Type == BoolType {
		return fmt.Errorf("%w: cannot extend %s %q with %s", ErrPropertyType, old.Type, p.Name, p.Type)
	}
	res, err := NewList(p.Name, append(old.Elems(), p.Elems()...))
	if err != nil {
		return err
	}
	n.SetProperty(res)
	return nil
}

// AddCppInclude records a "#include" of file inside the node block.
func (n *Node) AddCppInclude(file string) {
	n.CppInclude = appendNew(n.CppInclude, file)
}

// AddDirective records a node level compiler directive.
func (n *Node) AddDirective(tag, arg string) error {
	switch tag {
	case "include":
		n.Include = appendNew(n.Include, arg)
	case "delete-node":
		n.DeleteNode = appendNew(n.DeleteNode, arg)
	case "delete-property":
		n.DeleteProperty = appendNew(n.DeleteProperty, arg)
	default:
		return fmt.Errorf("%w: unknown node directive /%s/", ErrParse, tag)
	}
	return nil
}

func appendNew(vs []string, v string) []string {
	if slices.Contains(vs, v) {
		return vs
	}
	return append(vs, v)
}

// Join splices o into n: labels are unioned, o's properties overwrite n's
// by name, o's children are re-parented under n and o's directives are
// appended.  o is left empty.
func (n *Node) Join(o *Node) error {
	n.AddLabels(o.Labels...)
	for _, p := range o.Properties {
		n.SetProperty(p)
	}
	o.Properties = nil
	for _, tag := range []struct {
		name string
		vs   []string
	}{{"include", o.Include}, {"delete-node", o.DeleteNode}, {"delete-property", o.DeleteProperty}} {
		for _, v := range tag.vs {
			if err := n.AddDirective(tag.name, v); err != nil {
				return err
			}
		}
	}
	for _, f := range o.CppInclude {
		n.AddCppInclude(f)
	}
	o.Include, o.DeleteNode, o.DeleteProperty, o.CppInclude = nil, nil, nil, nil
	for _, c := range o.Children() {
		if err := n.AddChild(c); err != nil {
			return err
		}
	}
	if n.Line == 0 || (o.Line != 0 && o.Line < n.Line) {
		n.Line = o.Line
	}
	return nil
}

// Visit walks the subtree rooted at n depth first, calling f before and
// after the children of each node.  Returning false from the pre-order
// call skips the node's children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	type frame struct {
		node *Node
		post bool
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if fr.post {
			if _, err := f(fr.node, true); err != nil {
				return err
			}
			continue
		}
		dive, err := f(fr.node, false)
		if err != nil {
			return err
		}
		stack = append(stack, frame{node: fr.node, post: true})
		if !dive {
			continue
		}
		cs := fr.node.Children()
		for i := len(cs) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: cs[i]})
		}
	}
	return nil
}
