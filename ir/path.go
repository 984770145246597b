package ir

import (
	"slices"
	"strings"
)

// Path returns the "/" joined pathnames from the root to n.  Nodes inside
// a detached back-reference block are rooted at the reference signature,
// e.g. "&uart0/pinctrl".
func (n *Node) Path() string {
	parts := []string{}
	x := n
	for {
		p := x.Parent()
		if p == nil {
			break
		}
		parts = append(parts, x.PathName())
		x = p
	}
	var head string
	switch {
	case x.Name == "/":
		head = "/"
	case x.Name != "":
		head = x.PathName()
	default:
		head = x.SignatureText()
	}
	if len(parts) == 0 {
		return head
	}
	slices.Reverse(parts)
	if head == "/" {
		return "/" + strings.Join(parts, "/")
	}
	return head + "/" + strings.Join(parts, "/")
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// SplitPath splits an absolute node path into pathnames.
func SplitPath(p string) []string {
	res := []string{}
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// ResolvePath finds the node at an absolute path such as "/soc/uart@1000".
func (t *Tree) ResolvePath(p string) *Node {
	if !strings.HasPrefix(p, "/") {
		return nil
	}
	n := t.Root()
	for _, seg := range SplitPath(p) {
		if name, addr, ok := strings.Cut(seg, "@"); ok {
			seg = name + "@" + ParseUnitAddress(addr).String()
		}
		var next *Node
		for _, c := range n.Children() {
			if c.PathName() == seg || (c.Address == nil && c.Name == seg) {
				next = c
				break
			}
		}
		if next == nil {
			for _, c := range n.Children() {
				if c.Name == seg {
					next = c
					break
				}
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}
