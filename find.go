package dts

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/dts-format/ir"
)

type FindConfig struct {
	Detached bool
}

type FindOpt func(*FindConfig)

// FindDetached includes unresolved back-reference blocks in the search.
func FindDetached(v bool) FindOpt {
	return func(c *FindConfig) { c.Detached = v }
}

// Find returns the nodes of t, in depth first order, for which the boolean
// expression query holds.  The expression sees
//
//	name      node name ("" for back-references)
//	labels    []string
//	ref       back-reference text
//	address   unit address text
//	path      full path
//	depth     number of ancestors
//	props     map of property name to value (true, int64, string, []string
//	          for tuples, or a slice of those)
//	children  child pathnames
//
// and the functions has(name) and compatible(s), the latter true when s
// is one of the node's compatible strings.
func Find(t *ir.Tree, query string, opts ...FindOpt) ([]*ir.Node, error) {
	cfg := &FindConfig{}
	for _, o := range opts {
		o(cfg)
	}
	prg, err := expr.Compile(query, expr.Env(nodeEnv(t.Root())), expr.AsBool())
	if err != nil {
		return nil, err
	}
	tops := []*ir.Node{t.Root()}
	if cfg.Detached {
		tops = append(tops, t.Detached()...)
	}
	var res []*ir.Node
	for _, top := range tops {
		err := top.Visit(func(n *ir.Node, isPost bool) (bool, error) {
			if isPost {
				return true, nil
			}
			ok, err := vm.Run(prg, nodeEnv(n))
			if err != nil {
				return false, fmt.Errorf("%s: %w", n.Path(), err)
			}
			if ok.(bool) {
				res = append(res, n)
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func nodeEnv(n *ir.Node) map[string]any {
	props := map[string]any{}
	for _, p := range n.Properties {
		props[p.Name] = p.Any()
	}
	children := []string{}
	for _, c := range n.Children() {
		children = append(children, c.PathName())
	}
	labels := slices.Clone(n.Labels)
	if labels == nil {
		labels = []string{}
	}
	return map[string]any{
		"name":     n.Name,
		"labels":   labels,
		"ref":      n.Ref,
		"address":  n.Address.String(),
		"path":     n.Path(),
		"depth":    n.Depth(),
		"props":    props,
		"children": children,
		"has": func(name string) bool {
			return n.Property(name) != nil
		},
		"compatible": func(s string) bool {
			p := n.Property("compatible")
			if p == nil {
				return false
			}
			for _, e := range p.Elems() {
				if e.Type == ir.StringType && e.String == s {
					return true
				}
			}
			return false
		},
	}
}
