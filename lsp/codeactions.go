package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// CodeAction handles textDocument/codeAction requests.
// Offers to replace each translatable statement in range with its GQL text,
// and to translate the whole document.
func (s *Server) CodeAction(_ context.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	s.logger.Debug("CodeAction",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int("diagnosticCount", len(params.Context.Diagnostics)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	var actions []protocol.CodeAction

	if wants(params.Context.Only, protocol.QuickFix) {
		for _, st := range doc.Statements {
			if rangesOverlap(st.Range, params.Range) {
				if action, ok := replaceAction(doc.URI, st); ok {
					actions = append(actions, action)
				}
			}
		}
	}

	if wants(params.Context.Only, protocol.Source) {
		if action, ok := translateAllAction(doc); ok {
			actions = append(actions, action)
		}
	}

	return actions, nil
}

// wants reports whether kind was requested. An empty filter requests all.
func wants(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}

	for _, k := range only {
		if k == kind || strings.HasPrefix(string(kind), string(k)+".") {
			return true
		}
	}

	return false
}

// needsRewrite reports whether a statement has GQL text that differs from it.
func needsRewrite(st *Statement) bool {
	return st.Translation.Translated() && st.Translation.GQL != st.Text
}

func replaceAction(uri protocol.DocumentURI, st *Statement) (protocol.CodeAction, bool) {
	if !needsRewrite(st) {
		return protocol.CodeAction{}, false
	}

	return protocol.CodeAction{
		Title:       "Replace with ISO GQL",
		Kind:        protocol.QuickFix,
		Diagnostics: []protocol.Diagnostic{statementDiagnostic(st)},
		IsPreferred: true,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentURI][]protocol.TextEdit{
				uri: {{Range: st.Range, NewText: st.Translation.GQL}},
			},
		},
	}, true
}

func translateAllAction(doc *Document) (protocol.CodeAction, bool) {
	var edits []protocol.TextEdit

	for _, st := range doc.Statements {
		if needsRewrite(st) {
			edits = append(edits, protocol.TextEdit{Range: st.Range, NewText: st.Translation.GQL})
		}
	}

	if len(edits) == 0 {
		return protocol.CodeAction{}, false
	}

	return protocol.CodeAction{
		Title: "Translate all statements to ISO GQL",
		Kind:  protocol.Source,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentURI][]protocol.TextEdit{doc.URI: edits},
		},
	}, true
}
