package dictify

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/dts-format/format"
	"github.com/signadot/dts-format/ir"
)

const (
	KeyFilename       = "filename"
	KeyVersion        = "dts_version"
	KeyIncludes       = "gcc_include"
	KeyDefines        = "gcc_define"
	KeyDirectives     = "dtc_directives"
	KeyNodes          = "nodes"
	KeySignature      = "signature"
	KeyNodeName       = "nodename"
	KeyLabels         = "labels"
	KeyRef            = "ref"
	KeyUnitAddress    = "unit_address"
	KeyInclude        = "dtc_include"
	KeyDeleteNode     = "dtc_delete_node"
	KeyDeleteProperty = "dtc_delete_property"
	KeyProperties     = "properties"
	KeyChildren       = "children"
)

// FromTree builds the record form of t.
func FromTree(t *ir.Tree) yaml.MapSlice {
	doc := yaml.MapSlice{}
	if t.Filename != "" {
		doc = append(doc, yaml.MapItem{Key: KeyFilename, Value: t.Filename})
	}
	doc = append(doc, yaml.MapItem{Key: KeyVersion, Value: t.Version})
	if len(t.Includes) != 0 {
		doc = append(doc, yaml.MapItem{Key: KeyIncludes, Value: t.Includes})
	}
	if len(t.Defines) != 0 {
		defs := yaml.MapSlice{}
		for _, d := range t.Defines {
			var v any
			if d.Value != "" {
				v = d.Value
			}
			defs = append(defs, yaml.MapItem{Key: d.Name, Value: v})
		}
		doc = append(doc, yaml.MapItem{Key: KeyDefines, Value: defs})
	}
	if len(t.Directives) != 0 {
		ds := make([]yaml.MapSlice, len(t.Directives))
		for i, d := range t.Directives {
			ds[i] = yaml.MapSlice{{Key: d.Tag, Value: d.Value}}
		}
		doc = append(doc, yaml.MapItem{Key: KeyDirectives, Value: ds})
	}
	nodes := yaml.MapSlice{}
	for _, n := range append([]*ir.Node{t.Root()}, t.Detached()...) {
		nodes = append(nodes, yaml.MapItem{Key: n.SignatureText(), Value: FromNode(n)})
	}
	return append(doc, yaml.MapItem{Key: KeyNodes, Value: nodes})
}

// FromNode builds the record of n and its subtree.
func FromNode(top *ir.Node) yaml.MapSlice {
	recs := map[ir.Handle]*yaml.MapSlice{}
	_ = top.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost {
			rec := recs[n.Handle]
			if cs := n.Children(); len(cs) != 0 {
				kids := yaml.MapSlice{}
				for _, c := range cs {
					kids = append(kids, yaml.MapItem{Key: c.SignatureText(), Value: *recs[c.Handle]})
				}
				*rec = append(*rec, yaml.MapItem{Key: KeyChildren, Value: kids})
			}
			return true, nil
		}
		rec := yaml.MapSlice{{Key: KeySignature, Value: n.SignatureText()}}
		for _, d := range []struct {
			key string
			vs  []string
		}{{KeyInclude, n.Include}, {KeyDeleteNode, n.DeleteNode}, {KeyDeleteProperty, n.DeleteProperty}, {KeyIncludes, n.CppInclude}} {
			if len(d.vs) != 0 {
				rec = append(rec, yaml.MapItem{Key: d.key, Value: d.vs})
			}
		}
		if len(n.Properties) != 0 {
			props := yaml.MapSlice{}
			for _, p := range n.Properties {
				props = append(props, yaml.MapItem{Key: p.Name, Value: Value(p)})
			}
			rec = append(rec, yaml.MapItem{Key: KeyProperties, Value: props})
		}
		recs[n.Handle] = &rec
		return true, nil
	})
	return *recs[top.Handle]
}

// Value returns the record form of a property value.
func Value(p *ir.Property) any {
	return p.Record()
}

// Marshal encodes the record form of t as YAML or JSON.
func Marshal(t *ir.Tree, f format.Format) ([]byte, error) {
	doc := FromTree(t)
	switch f {
	case format.YAMLFormat:
		return yaml.Marshal(doc)
	case format.JSONFormat:
		return yaml.MarshalWithOptions(doc, yaml.JSON())
	}
	return nil, fmt.Errorf("%w: %s is not an interchange format", format.ErrBadFormat, f)
}

// Unmarshal decodes a YAML or JSON record document into a tree.
func Unmarshal(d []byte) (*ir.Tree, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(d, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return ToTree(doc)
}
