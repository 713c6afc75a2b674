package analysis

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
	gqlgrammar "github.com/rlch/graphil/dialects/gql/grammar"
)

// Rule represents a lint check.
// Inspired by go/analysis.Analyzer pattern.
type Rule struct {
	// Name is a short identifier for the rule (used in diagnostic codes).
	Name string

	// Doc is a brief description of what the rule checks.
	Doc string

	// Severity is the default severity for diagnostics from this rule.
	Severity DiagnosticSeverity

	// Run executes the rule and appends any diagnostics to the file.
	Run func(f *AnalyzedFile)
}

// DefaultRules returns all built-in lint rules.
func DefaultRules() []*Rule {
	return []*Rule{
		// Warning-level checks.
		duplicateStatementRule,
		missingReturnRule,

		// Hint-level checks.
		reservedWordRule,
	}
}

// ----------------------------------------------------------------------------
// Rule: duplicate-statement
// ----------------------------------------------------------------------------

var duplicateStatementRule = &Rule{
	Name:     "duplicate-statement",
	Doc:      "Reports statements that repeat an earlier statement of the script.",
	Severity: SeverityWarning,
	Run:      checkDuplicateStatements,
}

func checkDuplicateStatements(f *AnalyzedFile) {
	seen := make(map[string]int)

	for i := range f.Statements {
		key := normalize(f.Tokens[i])

		first, ok := seen[key]
		if !ok {
			seen[key] = i

			continue
		}

		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Span:     f.statementSpan(i),
			Severity: SeverityWarning,
			Message:  "duplicate of statement #" + strconv.Itoa(first+1),
			Code:     "duplicate-statement",
			Source:   diagnosticSource,
		})
	}
}

// normalize joins the significant tokens of a statement, so statements that
// differ only in whitespace, comments or keyword case compare equal.
func normalize(tokens []lexer.Token) string {
	var b strings.Builder

	for _, tok := range tokens {
		if cyphergrammar.IsTrivia(tok.Type) {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		if tok.Type == ident && isKeyword(tok.Value) {
			b.WriteString(strings.ToUpper(tok.Value))
		} else {
			b.WriteString(tok.Value)
		}
	}

	return b.String()
}

// ----------------------------------------------------------------------------
// Rule: missing-return
// ----------------------------------------------------------------------------

var missingReturnRule = &Rule{
	Name:     "missing-return",
	Doc:      "Reports read-only statements that never RETURN, which GQL cannot express as a query.",
	Severity: SeverityWarning,
	Run:      checkMissingReturn,
}

func checkMissingReturn(f *AnalyzedFile) {
	for i, tokens := range f.Tokens {
		var reads, returns, writes bool

		for _, tok := range tokens {
			if tok.Type != ident {
				continue
			}

			switch strings.ToUpper(tok.Value) {
			case "MATCH", "UNWIND":
				reads = true
			case "RETURN":
				returns = true
			case "CREATE", "MERGE", "DELETE", "SET", "REMOVE", "FOREACH", "CALL":
				writes = true
			}
		}

		if reads && !returns && !writes {
			f.Diagnostics = append(f.Diagnostics, Diagnostic{
				Span:     f.statementSpan(i),
				Severity: SeverityWarning,
				Message:  "statement reads the graph but never RETURNs",
				Code:     "missing-return",
				Source:   diagnosticSource,
			})
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: reserved-word
// ----------------------------------------------------------------------------

var reservedWordRule = &Rule{
	Name:     "reserved-word",
	Doc:      "Reports labels, relationship types and property keys that are GQL reserved words.",
	Severity: SeverityHint,
	Run:      checkReservedWords,
}

func checkReservedWords(f *AnalyzedFile) {
	for i, tokens := range f.Tokens {
		for j, tok := range tokens {
			if tok.Type != ident || !gqlgrammar.IsReserved(tok.Value) {
				continue
			}

			prev, ok := significant(tokens, j, -1)
			if !ok || (prev.Type != colon && prev.Type != dot) {
				continue
			}

			// Dotted function names such as apoc.coll.sum(...)
			if next, ok := significant(tokens, j, 1); ok && next.Type == lparen {
				continue
			}

			f.Diagnostics = append(f.Diagnostics, Diagnostic{
				Span:     f.tokenSpan(i, tok),
				Severity: SeverityHint,
				Message:  tok.Value + " is a reserved word in GQL and will be back-quoted",
				Code:     "reserved-word",
				Source:   diagnosticSource,
			})
		}
	}
}

var (
	ident  = cyphergrammar.Symbol("Ident")
	colon  = cyphergrammar.Symbol("Colon")
	dot    = cyphergrammar.Symbol("Dot")
	lparen = cyphergrammar.Symbol("LParen")
)

// significant returns the nearest non-trivia token from tokens[i] in
// direction step.
func significant(tokens []lexer.Token, i, step int) (lexer.Token, bool) {
	for j := i + step; j >= 0 && j < len(tokens); j += step {
		if !cyphergrammar.IsTrivia(tokens[j].Type) {
			return tokens[j], true
		}
	}

	return lexer.Token{}, false
}

// keywords are the clause and operator keywords compared case-insensitively
// when detecting duplicates.
var keywords = map[string]bool{
	"MATCH": true, "OPTIONAL": true, "WHERE": true, "WITH": true, "RETURN": true,
	"ORDER": true, "BY": true, "SKIP": true, "LIMIT": true, "DISTINCT": true,
	"AS": true, "AND": true, "OR": true, "NOT": true, "XOR": true, "ASC": true,
	"DESC": true, "UNWIND": true, "CREATE": true, "MERGE": true, "DELETE": true,
	"DETACH": true, "SET": true, "REMOVE": true, "CALL": true, "YIELD": true,
	"UNION": true, "ALL": true, "IS": true, "NULL": true, "IN": true,
}

func isKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}
