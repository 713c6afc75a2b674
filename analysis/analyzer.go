package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

// Analyzer runs lint rules over Cypher scripts.
type Analyzer struct {
	// rules is the set of checks to run.
	rules []*Rule
}

// NewAnalyzer creates a new analyzer with default rules.
func NewAnalyzer() *Analyzer {
	return &Analyzer{rules: DefaultRules()}
}

// NewAnalyzerWithRules creates an analyzer with custom rules.
func NewAnalyzerWithRules(rules []*Rule) *Analyzer {
	return &Analyzer{rules: rules}
}

// Analyze splits and lints a script.
func (a *Analyzer) Analyze(path string, content []byte) *AnalyzedFile {
	result := &AnalyzedFile{
		Path:        path,
		Content:     string(content),
		Diagnostics: []Diagnostic{},
	}

	stmts, err := cyphergrammar.SplitStatements(result.Content)
	if err != nil {
		result.ParseError = err
		result.Diagnostics = append(result.Diagnostics, parseErrorToDiagnostic(err))

		return result
	}

	result.Statements = stmts
	result.Tokens = make([][]lexer.Token, len(stmts))

	for i, st := range stmts {
		// The script lexed, so each statement does too.
		result.Tokens[i], _ = cyphergrammar.Tokenize(st.Text)
	}

	for _, rule := range a.rules {
		rule.Run(result)
	}

	return result
}

// parseErrorToDiagnostic converts a lexer error to a diagnostic.
func parseErrorToDiagnostic(err error) Diagnostic {
	span := Span{}
	msg := err.Error()

	// participle errors implement Error interface with Position().
	type participleError interface {
		Position() lexer.Position
		Message() string
	}

	if pe, ok := err.(participleError); ok {
		pos := pe.Position()
		span = Span{Start: pos, End: pos}
		msg = pe.Message()
	}

	return Diagnostic{
		Span:     span,
		Severity: SeverityError,
		Message:  msg,
		Code:     "parse-error",
		Source:   diagnosticSource,
	}
}

// PositionAt returns the position of a byte offset in content. Lines and
// columns are 1-based; columns count runes.
func PositionAt(content string, offset int) lexer.Position {
	offset = min(max(offset, 0), len(content))
	head := content[:offset]
	lineStart := strings.LastIndexByte(head, '\n') + 1

	return lexer.Position{
		Offset: offset,
		Line:   strings.Count(head, "\n") + 1,
		Column: utf8.RuneCountInString(head[lineStart:]) + 1,
	}
}

// span returns the span of [start, end) in f.
func (f *AnalyzedFile) span(start, end int) Span {
	return Span{Start: PositionAt(f.Content, start), End: PositionAt(f.Content, end)}
}

// statementSpan returns the span of statement i.
func (f *AnalyzedFile) statementSpan(i int) Span {
	st := f.Statements[i]

	return f.span(st.Offset, st.End())
}

// tokenSpan returns the span of a token of statement i.
func (f *AnalyzedFile) tokenSpan(i int, tok lexer.Token) Span {
	start := f.Statements[i].Offset + tok.Pos.Offset

	return f.span(start, start+len(tok.Value))
}
