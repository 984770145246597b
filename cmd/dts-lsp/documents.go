package main

import (
	"context"
	"net/url"
	"path"
	"sync"

	"github.com/signadot/dts-format/ir"
	"github.com/signadot/dts-format/merge"
	"github.com/signadot/dts-format/parse"
	"github.com/sirupsen/logrus"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	// tree is nil when content does not parse, err says why
	tree *ir.Tree
	err  error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
	}
	doc.tree, doc.err = parse.Parse([]byte(content), parse.ParseFilename(uriBase(uri)))

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func uriBase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return uri
	}
	return path.Base(u.Path)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diags := validateDocument(doc)
	s.log.WithFields(logrus.Fields{
		"uri":         uri,
		"version":     doc.version,
		"diagnostics": len(diags),
	}).Debug("validated")
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diags,
		})
	}
}

// validateDocument reports parse errors, merge conflicts and
// back-references with no target.
func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		return append(diagnostics, diagnostic(doc.content, errorLine(doc.err), protocol.DiagnosticSeverityError, doc.err.Error()))
	}
	if err := merge.Check(doc.tree); err != nil {
		diagnostics = append(diagnostics, diagnostic(doc.content, 1, protocol.DiagnosticSeverityError, err.Error()))
	}
	for _, n := range doc.tree.Detached() {
		if merge.Resolve(doc.tree, n.Ref) != nil {
			continue
		}
		diagnostics = append(diagnostics, diagnostic(doc.content, n.Line, protocol.DiagnosticSeverityWarning,
			"unresolved reference &"+n.Ref))
	}
	return diagnostics
}

func diagnostic(content string, line int, sev protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    lineRange(content, line),
		Severity: sev,
		Message:  msg,
		Source:   "dts",
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change.Range, change.Text)
	}
	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
