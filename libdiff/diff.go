package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/signadot/dts-format/ir"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
	Change
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Change:
		return "change"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o Op) sign() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Change:
		return "~"
	}
	return " "
}

// PropDiff is a property difference.  From is nil for insertions, To for
// deletions.
type PropDiff struct {
	Name     string
	Op       Op
	From, To *ir.Property
}

// NodeDiff is the difference at one node path.  For changed nodes, Props
// lists the property differences and FromSig/ToSig differ when the labels
// changed.
type NodeDiff struct {
	Path    string
	Op      Op
	FromSig string
	ToSig   string
	Props   []PropDiff
}

type Diff struct {
	Nodes []NodeDiff
}

func (d *Diff) Empty() bool { return len(d.Nodes) == 0 }

// Compare computes the differences from one tree to another.
func Compare(from, to *ir.Tree) *Diff {
	fromPaths, fromNodes := pathOrder(from)
	toPaths, toNodes := pathOrder(to)
	res := &Diff{}
	align(fromPaths, toPaths, func(p string, fi, ti int) {
		switch {
		case ti == -1:
			res.Nodes = append(res.Nodes, NodeDiff{Path: p, Op: Delete, FromSig: fromNodes[p].SignatureText()})
		case fi == -1:
			res.Nodes = append(res.Nodes, NodeDiff{Path: p, Op: Insert, ToSig: toNodes[p].SignatureText()})
		default:
			if nd := compareNodes(p, fromNodes[p], toNodes[p]); nd != nil {
				res.Nodes = append(res.Nodes, *nd)
			}
		}
	})
	return res
}

// pathOrder lists the distinct node paths of t in depth first order, the
// root subtree before detached blocks.
func pathOrder(t *ir.Tree) ([]string, map[string]*ir.Node) {
	var paths []string
	nodes := map[string]*ir.Node{}
	for _, top := range append([]*ir.Node{t.Root()}, t.Detached()...) {
		_ = top.Visit(func(n *ir.Node, isPost bool) (bool, error) {
			if isPost {
				return true, nil
			}
			p := n.Path()
			if _, ok := nodes[p]; !ok {
				nodes[p] = n
				paths = append(paths, p)
			}
			return true, nil
		})
	}
	return paths, nodes
}

func compareNodes(path string, from, to *ir.Node) *NodeDiff {
	nd := &NodeDiff{Path: path, Op: Change}
	if fs, ts := from.SignatureText(), to.SignatureText(); fs != ts {
		nd.FromSig, nd.ToSig = fs, ts
	}
	align(propNames(from), propNames(to), func(name string, fi, ti int) {
		switch {
		case ti == -1:
			nd.Props = append(nd.Props, PropDiff{Name: name, Op: Delete, From: from.Properties[fi]})
		case fi == -1:
			nd.Props = append(nd.Props, PropDiff{Name: name, Op: Insert, To: to.Properties[ti]})
		default:
			f, t := from.Properties[fi], to.Properties[ti]
			if !f.Equal(t) {
				nd.Props = append(nd.Props, PropDiff{Name: name, Op: Change, From: f, To: t})
			}
		}
	})
	if nd.FromSig == "" && len(nd.Props) == 0 {
		return nil
	}
	return nd
}

func propNames(n *ir.Node) []string {
	res := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		res[i] = p.Name
	}
	return res
}

// WriteTo writes a line oriented report, colored when colors is true.
func (d *Diff) WriteTo(w io.Writer, colors bool) error {
	paint := map[Op]func(string, ...any) string{}
	for _, op := range []Op{Equal, Insert, Delete, Change} {
		paint[op] = fmt.Sprintf
	}
	if colors {
		paint[Insert] = color.GreenString
		paint[Delete] = color.RedString
		paint[Change] = color.YellowString
	}
	var b strings.Builder
	for i := range d.Nodes {
		nd := &d.Nodes[i]
		fmt.Fprintln(&b, paint[nd.Op]("%s %s", nd.Op.sign(), nd.Path))
		if nd.Op == Change && nd.FromSig != "" {
			fmt.Fprintln(&b, paint[Delete]("    - %s", nd.FromSig))
			fmt.Fprintln(&b, paint[Insert]("    + %s", nd.ToSig))
		}
		for _, pd := range nd.Props {
			if pd.From != nil {
				fmt.Fprintln(&b, paint[Delete]("    - %s", pd.From.Statement()))
			}
			if pd.To != nil {
				fmt.Fprintln(&b, paint[Insert]("    + %s", pd.To.Statement()))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Record returns the diff as an ordered mapping from path to change.
func (d *Diff) Record() yaml.MapSlice {
	res := yaml.MapSlice{}
	for i := range d.Nodes {
		nd := &d.Nodes[i]
		rec := yaml.MapSlice{{Key: "op", Value: nd.Op.String()}}
		if nd.FromSig != "" || nd.ToSig != "" {
			sig := yaml.MapSlice{}
			if nd.FromSig != "" {
				sig = append(sig, yaml.MapItem{Key: "from", Value: nd.FromSig})
			}
			if nd.ToSig != "" {
				sig = append(sig, yaml.MapItem{Key: "to", Value: nd.ToSig})
			}
			rec = append(rec, yaml.MapItem{Key: "signature", Value: sig})
		}
		if len(nd.Props) != 0 {
			props := yaml.MapSlice{}
			for _, pd := range nd.Props {
				pr := yaml.MapSlice{{Key: "op", Value: pd.Op.String()}}
				if pd.From != nil {
					pr = append(pr, yaml.MapItem{Key: "from", Value: pd.From.Value()})
				}
				if pd.To != nil {
					pr = append(pr, yaml.MapItem{Key: "to", Value: pd.To.Value()})
				}
				props = append(props, yaml.MapItem{Key: pd.Name, Value: pr})
			}
			rec = append(rec, yaml.MapItem{Key: "properties", Value: props})
		}
		res = append(res, yaml.MapItem{Key: nd.Path, Value: rec})
	}
	return res
}
