package cyphergrammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Parser is the Cypher parser instance.
var Parser = participle.MustBuild[Script](
	participle.Lexer(CypherLexer),
	participle.Elide("Whitespace", "BlockComment", "LineComment"),
	participle.UseLookahead(64),         // Pattern predicates vs parenthesised expressions need deep lookahead
	participle.CaseInsensitive("Ident"), // Cypher keywords are case-insensitive
)

// Parse parses a Cypher query string into an AST.
func Parse(query string) (*Script, error) {
	return Parser.ParseString("", query)
}

// ParseBytes parses a Cypher query from bytes into an AST.
func ParseBytes(query []byte) (*Script, error) {
	return Parser.ParseBytes("", query)
}

// Symbol returns the token type for a lexer rule name, or lexer.EOF if unknown.
func Symbol(name string) lexer.TokenType {
	t, ok := CypherLexer.Symbols()[name]
	if !ok {
		return lexer.EOF
	}

	return t
}

// IsTrivia reports whether t is whitespace or a comment.
func IsTrivia(t lexer.TokenType) bool {
	switch t {
	case Symbol("Whitespace"), Symbol("BlockComment"), Symbol("LineComment"):
		return true
	default:
		return false
	}
}

// Tokenize lexes query into tokens, trivia included and EOF excluded.
// Concatenating the token values reproduces query.
func Tokenize(query string) ([]lexer.Token, error) {
	lex, err := CypherLexer.LexString("", query)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	if n := len(tokens); n > 0 && tokens[n-1].EOF() {
		tokens = tokens[:n-1]
	}

	return tokens, nil
}

// Statement is one `;`-separated query of a script.
type Statement struct {
	// Text of the statement without the separator and surrounding trivia.
	Text string
	// Offset of Text within the script.
	Offset int
	// Pos of the first token of the statement.
	Pos lexer.Position
}

// End returns the offset just past the statement text.
func (s Statement) End() int {
	return s.Offset + len(s.Text)
}

// SplitStatements splits a script on `;` tokens. Semicolons inside strings,
// comments and escaped identifiers do not split. Empty statements are dropped.
func SplitStatements(script string) ([]Statement, error) {
	tokens, err := Tokenize(script)
	if err != nil {
		return nil, err
	}

	semi := Symbol("Semicolon")

	var (
		stmts []Statement
		start = -1
		end   int
		pos   lexer.Position
	)

	flush := func() {
		if start < 0 {
			return
		}

		stmts = append(stmts, Statement{Text: script[start:end], Offset: start, Pos: pos})
		start = -1
	}

	for _, tok := range tokens {
		switch {
		case tok.Type == semi:
			flush()
		case IsTrivia(tok.Type):
		default:
			if start < 0 {
				start = tok.Pos.Offset
				pos = tok.Pos
			}

			end = tok.Pos.Offset + len(tok.Value)
		}
	}

	flush()

	return stmts, nil
}

// Unquote strips the backticks of an escaped identifier.
// Other identifiers are returned unchanged.
func Unquote(ident string) string {
	if len(ident) >= 2 && ident[0] == '`' && ident[len(ident)-1] == '`' {
		return strings.ReplaceAll(ident[1:len(ident)-1], "``", "`")
	}

	return ident
}

// String returns the full name of an InvocationName (e.g., "apoc.text.join").
func (n *InvocationName) String() string {
	if n == nil {
		return ""
	}

	return strings.Join(n.Parts, ".")
}

// GetText returns the text representation of a PropertyExpr.
func (p *PropertyExpr) GetText() string {
	if p == nil {
		return ""
	}

	parts := append([]string{p.Base}, p.Props...)

	return strings.Join(parts, ".")
}

// IsInt returns true if this literal is an integer.
func (l *Literal) IsInt() bool {
	return l != nil && (l.Int != nil || l.HexInt != nil || l.OctInt != nil)
}

// HasOR returns true if this expression uses OR.
func (e *Expression) HasOR() bool {
	return e != nil && len(e.Right) > 0
}

// HasXOR returns true if the XorExpr uses XOR.
func (x *XorExpr) HasXOR() bool {
	return x != nil && len(x.Right) > 0
}

// HasAND returns true if the AndExpr uses AND.
func (a *AndExpr) HasAND() bool {
	return a != nil && len(a.Right) > 0
}

// HasComparison returns true if this is a comparison expression.
func (c *ComparisonExpr) HasComparison() bool {
	return c != nil && len(c.Right) > 0
}
