package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/signadot/dts-format/encode"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.tree == nil {
		return nil, nil
	}
	opts := []encode.EncodeOption{encode.NoBanner()}
	if !params.Options.InsertSpaces {
		opts = append(opts, encode.Tabs(true))
	} else if params.Options.TabSize > 0 {
		opts = append(opts, encode.Indent(int(params.Options.TabSize)))
	}
	var buf bytes.Buffer
	if err := encode.Encode(doc.tree, &buf, opts...); err != nil {
		return nil, nil
	}
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	nl := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		nl++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(nl),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}, nil
}
