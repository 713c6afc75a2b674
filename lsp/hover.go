package lsp

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/translate"
)

// Hover handles textDocument/hover requests.
// Shows the GQL translation of the statement under the cursor.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	st := statementAt(doc.Statements, params.Position)
	if st == nil {
		return nil, nil //nolint:nilnil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverContent(st.Translation),
		},
		Range: rangePtr(st.Range),
	}, nil
}

// hoverContent renders the category and the GQL text, or why there is none.
func hoverContent(tr translate.Translation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**\n\n", tr.Category)

	if tr.Translated() {
		b.WriteString("```" + graphil.MarkdownLanguage("gql") + "\n")
		b.WriteString(tr.GQL)
		b.WriteString("\n```")

		return b.String()
	}

	if tr.Err != nil {
		fmt.Fprintf(&b, "%s: `%v`", translate.Reason(tr.Err), tr.Err)
	}

	return strings.TrimSpace(b.String())
}
