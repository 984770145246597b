package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/merge"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.tree == nil {
		return nil, nil
	}
	n := doc.nodeAt(params.Position)
	if n == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(n),
		},
	}, nil
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.tree == nil {
		return nil, nil
	}
	ref, ok := strings.CutPrefix(wordAt(doc.content, params.Position), "&")
	if !ok {
		return nil, nil
	}
	n := merge.Resolve(doc.tree, ref)
	if n == nil || n.Line == 0 {
		return nil, nil
	}
	return []protocol.Location{{
		URI:   params.TextDocument.URI,
		Range: lineRange(doc.content, n.Line),
	}}, nil
}

// nodeAt finds the node referenced under pos, or else the node opened on
// the line of pos.
func (doc *document) nodeAt(pos protocol.Position) *ir.Node {
	if ref, ok := strings.CutPrefix(wordAt(doc.content, pos), "&"); ok {
		if n := merge.Resolve(doc.tree, ref); n != nil {
			return n
		}
	}
	line := int(pos.Line) + 1
	for _, n := range doc.tree.Nodes() {
		if n.Line == line {
			return n
		}
	}
	return nil
}

func hoverText(n *ir.Node) string {
	parts := []string{fmt.Sprintf("**Node:** `%s`", n.Path())}
	if len(n.Labels) != 0 {
		parts = append(parts, fmt.Sprintf("**Labels:** `%s`", strings.Join(n.Labels, "`, `")))
	}
	if n.Ref != "" {
		parts = append(parts, fmt.Sprintf("**References:** `&%s`", n.Ref))
	}
	if len(n.Properties) != 0 {
		var b strings.Builder
		b.WriteString("```dts\n")
		for _, p := range n.Properties {
			b.WriteString(p.Statement())
			b.WriteByte('\n')
		}
		b.WriteString("```")
		parts = append(parts, b.String())
	}
	if cs := n.Children(); len(cs) != 0 {
		names := make([]string, len(cs))
		for i, c := range cs {
			names[i] = c.PathName()
		}
		parts = append(parts, fmt.Sprintf("**Children:** %s", strings.Join(names, ", ")))
	}
	return strings.Join(parts, "\n\n")
}
