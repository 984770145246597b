package main

import (
	"context"

	"github.com/signadot/dts-format/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.tree == nil {
		return nil, nil
	}
	res := []interface{}{}
	for _, top := range append([]*ir.Node{doc.tree.Root()}, doc.tree.Detached()...) {
		res = append(res, symbol(doc.content, top))
	}
	return res, nil
}

func symbol(content string, n *ir.Node) protocol.DocumentSymbol {
	rng := lineRange(content, n.Line)
	sym := protocol.DocumentSymbol{
		Name:           n.SignatureText(),
		Detail:         n.Path(),
		Kind:           protocol.SymbolKindObject,
		Range:          rng,
		SelectionRange: rng,
	}
	if n.Ref != "" {
		sym.Kind = protocol.SymbolKindNamespace
	}
	for _, p := range n.Properties {
		sym.Children = append(sym.Children, protocol.DocumentSymbol{
			Name:           p.Name,
			Detail:         p.Value(),
			Kind:           protocol.SymbolKindProperty,
			Range:          rng,
			SelectionRange: rng,
		})
	}
	for _, c := range n.Children() {
		sym.Children = append(sym.Children, symbol(content, c))
	}
	return sym
}
