package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/dts-format/ir"
)

type EncState struct {
	indent  int
	tabs    bool
	banner  []string
	compact bool

	w   io.Writer
	err error

	// blocks which already hold output, for blank line separation.
	filled map[ir.Handle]bool

	Color func(ir.Type, ColorAttr, string) string
}

func newState(w io.Writer, opts []EncodeOption) *EncState {
	es := &EncState{
		indent: 4,
		tabs:   true,
		banner: DefaultBanner,
		w:      w,
		filled: map[ir.Handle]bool{},
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes t as device tree source.
func Encode(t *ir.Tree, w io.Writer, opts ...EncodeOption) error {
	es := newState(w, opts)
	if len(es.banner) != 0 {
		es.line(0, es.color(0, CommentColor, "/*"))
		for _, b := range es.banner {
			es.line(0, es.color(0, CommentColor, strings.TrimRight(" * "+b, " ")))
		}
		es.line(0, es.color(0, CommentColor, " */"))
		es.line(0, "")
	}
	es.line(0, es.color(0, DirectiveColor, "/dts-v"+strconv.Itoa(t.Version)+"/")+";")
	for _, d := range t.Directives {
		es.line(0, es.directive(d.Tag, d.Value))
	}
	if len(t.Includes)+len(t.Defines) != 0 {
		es.line(0, "")
	}
	for _, inc := range t.Includes {
		es.line(0, es.color(0, DirectiveColor, "#include")+" "+inc)
	}
	for _, d := range t.Defines {
		if d.Value == "" {
			es.line(0, es.color(0, DirectiveColor, "#define")+" "+d.Name)
			continue
		}
		es.line(0, es.color(0, DirectiveColor, "#define")+" "+d.Name+" "+d.Value)
	}
	for _, n := range append([]*ir.Node{t.Root()}, t.Detached()...) {
		es.line(0, "")
		es.node(n)
	}
	return es.err
}

// EncodeNode writes the block of n and its subtree, without file level
// statements.
func EncodeNode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(w, opts)
	es.node(n)
	return es.err
}

// MustString renders t without banner, panicking on error.
func MustString(t *ir.Tree, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(t, buf, append([]EncodeOption{NoBanner()}, opts...)...); err != nil {
		panic(err)
	}
	return buf.String()
}

func (es *EncState) node(top *ir.Node) {
	base := top.Depth()
	err := top.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		depth := n.Depth() - base
		if isPost {
			es.line(depth, "};")
			if p := n.Parent(); p != nil {
				es.filled[p.Handle] = true
			}
			return true, nil
		}
		if p := n.Parent(); p != nil && n != top && es.filled[p.Handle] {
			es.line(0, "")
		}
		for _, inc := range n.Include {
			es.line(depth, es.directive("include", `"`+inc+`"`))
		}
		es.line(depth, es.signature(n)+" {")
		for _, v := range n.DeleteNode {
			es.line(depth+1, es.directive("delete-node", v))
			es.filled[n.Handle] = true
		}
		for _, v := range n.DeleteProperty {
			es.line(depth+1, es.directive("delete-property", v))
			es.filled[n.Handle] = true
		}
		for _, v := range n.CppInclude {
			es.line(depth+1, es.color(0, DirectiveColor, "#include")+" "+v)
			es.filled[n.Handle] = true
		}
		for _, p := range n.Properties {
			es.property(depth+1, p)
			es.filled[n.Handle] = true
		}
		return true, es.err
	})
	if err != nil && es.err == nil {
		es.err = err
	}
}

func (es *EncState) signature(n *ir.Node) string {
	if n.Ref != "" {
		return es.color(0, RefColor, "&"+n.Ref)
	}
	var b strings.Builder
	for _, l := range n.Labels {
		b.WriteString(es.color(0, LabelColor, l))
		b.WriteString(": ")
	}
	b.WriteString(es.color(0, NameColor, n.Name))
	if n.Address != nil {
		b.WriteString("@")
		b.WriteString(es.color(0, AddressColor, n.Address.String()))
	}
	return b.String()
}

func (es *EncState) directive(tag, v string) string {
	res := es.color(0, DirectiveColor, "/"+tag+"/")
	if v != "" {
		res += " " + v
	}
	if tag == "include" {
		return res
	}
	return res + ";"
}

func (es *EncState) property(depth int, p *ir.Property) {
	name := es.color(p.Type, PropertyColor, p.Name)
	if p.Type == ir.BoolType {
		es.line(depth, name+";")
		return
	}
	vals := p.ValueLines()
	for i := range vals {
		vals[i] = es.color(p.Type, ValueColor, vals[i])
	}
	head := name + " = "
	if es.compact || len(vals) == 1 {
		es.line(depth, head+strings.Join(vals, ", ")+";")
		return
	}
	pad := strings.Repeat(" ", len(p.Name)+3)
	for i, v := range vals {
		switch {
		case i == 0:
			es.line(depth, head+v+",")
		case i == len(vals)-1:
			es.line(depth, pad+v+";")
		default:
			es.line(depth, pad+v+",")
		}
	}
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) line(depth int, s string) {
	if es.err != nil {
		return
	}
	if s == "" {
		_, es.err = io.WriteString(es.w, "\n")
		return
	}
	ind := strings.Repeat(" ", es.indent*depth)
	if es.tabs {
		ind = strings.Repeat("\t", depth)
	}
	_, es.err = fmt.Fprintf(es.w, "%s%s\n", ind, s)
}
