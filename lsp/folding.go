package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// FoldingRanges handles textDocument/foldingRange requests.
// Every statement spanning more than one line folds.
func (s *Server) FoldingRanges(_ context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	s.logger.Debug("FoldingRanges",
		zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	var ranges []protocol.FoldingRange

	for _, st := range doc.Statements {
		if st.Range.End.Line > st.Range.Start.Line {
			ranges = append(ranges, protocol.FoldingRange{
				StartLine: st.Range.Start.Line,
				EndLine:   st.Range.End.Line,
				Kind:      protocol.RegionFoldingRange,
			})
		}
	}

	return ranges, nil
}
