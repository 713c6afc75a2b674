// Package analysis lints Cypher scripts for problems that affect their
// translation into ISO GQL.
package analysis

import (
	"github.com/alecthomas/participle/v2/lexer"

	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

// AnalyzedFile holds analysis results for a single script.
type AnalyzedFile struct {
	// Path is the file path (URI in LSP terms).
	Path string

	// Content is the script text.
	Content string

	// Statements of the script. Nil if splitting failed.
	Statements []cyphergrammar.Statement

	// Tokens of each statement, trivia included, positioned relative to
	// the statement.
	Tokens [][]lexer.Token

	// ParseError holds the lexer error if the script could not be split.
	ParseError error

	// Diagnostics contains all errors and warnings found during analysis.
	Diagnostics []Diagnostic
}

// Span is a range of the script. Offsets are byte offsets.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Diagnostic represents a problem found during analysis.
type Diagnostic struct {
	Span     Span
	Severity DiagnosticSeverity
	Message  string
	Code     string // rule name, e.g. "reserved-word"
	Source   string // "graphil"
}

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

// Diagnostic severity constants.
const (
	SeverityError DiagnosticSeverity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

const diagnosticSource = "graphil"
