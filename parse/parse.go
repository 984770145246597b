package parse

import (
	"fmt"
	"slices"

	"github.com/signadot/dts-format/debug"
	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/merge"
	"github.com/signadot/dts-format/token"
)

// Parse builds a device tree from source text.  No partial tree is
// returned on error.
func Parse(d []byte, opts ...ParseOption) (*ir.Tree, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	f, err := token.Scan(d)
	if err != nil {
		return nil, pOpts.wrap(err)
	}
	t, err := build(f, pOpts)
	if err != nil {
		return nil, pOpts.wrap(err)
	}
	return t, nil
}

// Build populates a tree from an already scanned file.
func Build(f *token.File, opts ...ParseOption) (*ir.Tree, error) {
	pOpts := &parseOpts{}
	for _, o := range opts {
		o(pOpts)
	}
	t, err := build(f, pOpts)
	if err != nil {
		return nil, pOpts.wrap(err)
	}
	return t, nil
}

func (o *parseOpts) wrap(err error) error {
	if o.filename == "" {
		return err
	}
	return fmt.Errorf("%s: %w", o.filename, err)
}

func build(f *token.File, opts *parseOpts) (*ir.Tree, error) {
	t := ir.NewTree(opts.filename)
	if f.Version != 0 {
		t.Version = f.Version
	}
	t.Includes = slices.Clone(f.Includes)
	for _, d := range f.Defines {
		t.SetDefine(d.Name, d.Value)
	}
	t.Directives = slices.Clone(f.Directives)
	b := &builder{tree: t}
	for _, blk := range f.Blocks {
		if err := b.topLevel(blk); err != nil {
			return nil, err
		}
	}
	if opts.merge {
		if err := merge.Merge(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

type builder struct {
	tree *ir.Tree
}

func (b *builder) topLevel(blk *token.Block) error {
	sig, err := ParseSignature(blk.Signature)
	if err != nil {
		return lineErr(blk.Line, err)
	}
	n := b.tree.Lookup(&sig)
	if n == nil {
		var parent *ir.Node
		if sig.Ref == "" {
			parent = b.tree.Root()
		}
		n, err = b.tree.NewNode(parent, sig)
		if err != nil {
			return lineErr(blk.Line, err)
		}
		if debug.Build() {
			debug.Logf("new top level %s (handle %d) at line %d\n", n.SignatureText(), n.Handle, blk.Line)
		}
	} else {
		n.AddLabels(sig.Labels...)
	}
	if n.Line == 0 {
		n.Line = blk.Line
	}
	return b.fill(n, blk)
}

// fill adds the statements and sub-blocks of blk to n and its
// descendants.
func (b *builder) fill(n *ir.Node, blk *token.Block) error {
	type item struct {
		node  *ir.Node
		block *token.Block
	}
	work := []item{{n, blk}}
	for len(work) != 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		kids := make([]opened, 0, len(it.block.Subs))
		for _, sub := range it.block.Subs {
			c, err := b.child(it.node, sub)
			if err != nil {
				return err
			}
			kids = append(kids, opened{line: sub.Line, node: c})
			work = append(work, item{c, sub})
		}
		if err := b.statements(it.node, it.block, kids); err != nil {
			return err
		}
	}
	return nil
}

// opened is a child node and the line its block opened at.
type opened struct {
	line int
	node *ir.Node
}

func (b *builder) child(p *ir.Node, sub *token.Block) (*ir.Node, error) {
	sig, err := ParseSignature(sub.Signature)
	if err != nil {
		return nil, lineErr(sub.Line, err)
	}
	if sig.Ref != "" {
		return nil, lineErr(sub.Line, fmt.Errorf("%w: &%s", ErrChildRef, sig.Ref))
	}
	if c := p.FindChild(sig.Name, sig.Address); c != nil {
		c.AddLabels(sig.Labels...)
		return c, nil
	}
	c, err := b.tree.NewNode(p, sig)
	if err != nil {
		return nil, lineErr(sub.Line, err)
	}
	c.Line = sub.Line
	if debug.Build() {
		debug.Logf("new child %s of %s (handle %d) at line %d\n", c.SignatureText(), p.SignatureText(), c.Handle, sub.Line)
	}
	return c, nil
}

// statements adds the statements of blk to n.  An /include/ directive
// belongs to the first child opened after it, or to n if there is none.
func (b *builder) statements(n *ir.Node, blk *token.Block, kids []opened) error {
	stmts, err := token.Statements(blk.Lines)
	if err != nil {
		return err
	}
	for _, st := range stmts {
		switch st.Kind {
		case token.DirectiveStatement:
			dst := n
			if st.Name == "include" {
				for _, k := range kids {
					if k.line > st.Line {
						dst = k.node
						break
					}
				}
			}
			err = dst.AddDirective(st.Name, st.Value)
		case token.IncludeStatement:
			n.AddCppInclude(st.Value)
		case token.BoolStatement:
			n.SetProperty(ir.NewBool(st.Name))
		case token.PropertyStatement:
			var p *ir.Property
			p, err = token.Lex(st.Name, st.Value)
			if err == nil {
				n.SetProperty(p)
			}
		}
		if err != nil {
			return lineErr(st.Line, err)
		}
	}
	return nil
}
