package lsp

import (
	"context"
	"strconv"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// DocumentSymbol handles textDocument/documentSymbol requests.
// Returns one symbol per statement for the outline view.
func (s *Server) DocumentSymbol(_ context.Context, params *protocol.DocumentSymbolParams) ([]any, error) {
	s.logger.Debug("DocumentSymbol",
		zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	result := make([]any, len(doc.Statements))
	for i, st := range doc.Statements {
		result[i] = statementSymbol(st)
	}

	return result, nil
}

func statementSymbol(st *Statement) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           "#" + strconv.Itoa(st.Index+1) + " " + firstWords(st.Text, 3),
		Detail:         st.Translation.Category.Short(),
		Kind:           protocol.SymbolKindFunction,
		Range:          st.Range,
		SelectionRange: st.Range,
	}
}

// firstWords returns up to n whitespace-separated words of s.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = append(words[:n], "…")
	}

	return strings.Join(words, " ")
}
