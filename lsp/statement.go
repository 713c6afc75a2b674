package lsp

import (
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
	"github.com/rlch/graphil/translate"
)

// Statement is one `;`-separated statement of a document.
type Statement struct {
	Index       int
	Text        string
	Range       protocol.Range
	Translation translate.Translation
}

// analyze splits content into statements and translates each. Content the
// Cypher lexer cannot split is translated as a single statement.
func (s *Server) analyze(content string) []*Statement {
	spans, err := cyphergrammar.SplitStatements(content)
	if err != nil {
		s.logger.Debug("Split failed", zap.Error(err))

		text := strings.TrimSpace(content)
		if text == "" {
			return nil
		}

		start := strings.Index(content, text)
		spans = []cyphergrammar.Statement{{Text: text, Offset: start}}
	}

	stmts := make([]*Statement, len(spans))

	for i, span := range spans {
		stmts[i] = &Statement{
			Index: i,
			Text:  span.Text,
			Range: protocol.Range{
				Start: offsetToPosition(content, span.Offset),
				End:   offsetToPosition(content, span.End()),
			},
			Translation: s.translator.Translate(span.Text),
		}
	}

	return stmts
}

// statementAt returns the statement containing pos.
func statementAt(stmts []*Statement, pos protocol.Position) *Statement {
	for _, st := range stmts {
		if containsPosition(st.Range, pos) {
			return st
		}
	}

	return nil
}
