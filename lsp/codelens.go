package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// CodeLens handles textDocument/codeLens requests.
// Returns a lens naming the category above every statement.
func (s *Server) CodeLens(_ context.Context, params *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	s.logger.Debug("CodeLens",
		zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	lenses := make([]protocol.CodeLens, 0, len(doc.Statements))

	for _, st := range doc.Statements {
		lenses = append(lenses, protocol.CodeLens{
			Range: protocol.Range{Start: st.Range.Start, End: st.Range.Start},
			Command: &protocol.Command{
				Title: string(st.Translation.Category),
			},
		})
	}

	return lenses, nil
}
