package gqlgrammar

import (
	"github.com/alecthomas/participle/v2"
)

// Parser is the GQL parser instance.
var Parser = participle.MustBuild[Program](
	participle.Lexer(GQLLexer),
	participle.Elide("Whitespace", "BlockComment", "LineComment"),
	participle.UseLookahead(64), // Nodes vs parenthesized path patterns
	participle.CaseInsensitive("Keyword"),
	participle.CaseInsensitive("Function"),
	participle.CaseInsensitive("Ident"), // Non-reserved words such as WALK or FIRST
)

// Parse parses a GQL query string into an AST.
func Parse(query string) (*Program, error) {
	return Parser.ParseString("", query)
}

// Check parses query and validates the constraints the grammar alone
// cannot express.
func Check(query string) error {
	program, err := Parse(query)
	if err != nil {
		return err
	}

	return Validate(program)
}
