package lsp

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/translate"
)

// diagnosticSource is the source of every published diagnostic.
const diagnosticSource = "graphil"

// publishDiagnostics publishes one diagnostic per statement.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.Statements)+len(doc.Lint))

	for _, st := range doc.Statements {
		d := statementDiagnostic(st)
		s.logger.Debug("Publishing diagnostic",
			zap.Uint32("start.line", d.Range.Start.Line),
			zap.Uint32("start.char", d.Range.Start.Character),
			zap.String("category", string(st.Translation.Category)))
		diagnostics = append(diagnostics, d)
	}

	diagnostics = append(diagnostics, doc.Lint...)

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

// statementDiagnostic describes how a statement translates. The category is
// the diagnostic code.
func statementDiagnostic(st *Statement) protocol.Diagnostic {
	tr := st.Translation

	return protocol.Diagnostic{
		Range:    st.Range,
		Severity: categorySeverity(tr.Category),
		Code:     string(tr.Category),
		Source:   diagnosticSource,
		Message:  diagnosticMessage(tr),
	}
}

func diagnosticMessage(tr translate.Translation) string {
	switch {
	case tr.Category == graphil.CategoryCompliant:
		return "already valid ISO GQL"
	case tr.Translated():
		return fmt.Sprintf("%s: %s", tr.Category, tr.GQL)
	case tr.Err != nil:
		return fmt.Sprintf("%s: %v", tr.Category, tr.Err)
	default:
		return string(tr.Category)
	}
}

func categorySeverity(c graphil.Category) protocol.DiagnosticSeverity {
	switch c {
	case graphil.CategoryNotCypher:
		return protocol.DiagnosticSeverityError
	case graphil.CategoryNotSupported, graphil.CategoryNoStandard:
		return protocol.DiagnosticSeverityWarning
	case graphil.CategoryMusked, graphil.CategoryTranslatable:
		return protocol.DiagnosticSeverityInformation
	case graphil.CategoryCompliant:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

// lint runs the script analyzer. Scripts that do not lex are left to the
// statement diagnostics.
func (s *Server) lint(uri protocol.DocumentURI, content string) []protocol.Diagnostic {
	result := s.analyzer.Analyze(string(uri), []byte(content))
	if result.ParseError != nil {
		return nil
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(result.Diagnostics))

	for _, d := range result.Diagnostics {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: offsetToPosition(content, d.Span.Start.Offset),
				End:   offsetToPosition(content, d.Span.End.Offset),
			},
			Severity: protocol.DiagnosticSeverity(d.Severity),
			Code:     d.Code,
			Source:   d.Source,
			Message:  d.Message,
		})
	}

	return diagnostics
}
