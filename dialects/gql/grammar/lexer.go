package gqlgrammar

import (
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// GQLLexer defines the lexer for GQL queries.
// Reserved words lex as Function or Keyword, so a reserved word can never be an Ident.
var GQLLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Whitespace and comments (elided from output)
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`, Action: nil},
		{Name: "LineComment", Pattern: `(?://|--)[^\r\n]*`, Action: nil},

		// Edge arrows (longest first)
		{Name: "LeftRightArrow", Pattern: `<->`},
		{Name: "LeftArrow", Pattern: `<-`},
		{Name: "RightArrow", Pattern: `->`},
		{Name: "LeftTilde", Pattern: `<~`},
		{Name: "RightTilde", Pattern: `~>`},
		{Name: "Tilde", Pattern: `~`},

		// Multi-character operators (must come before single-char)
		{Name: "NotEqual", Pattern: `<>`},
		{Name: "LessEqual", Pattern: `<=`},
		{Name: "GreaterEqual", Pattern: `>=`},
		{Name: "Concat", Pattern: `\|\|`},

		// Single-character operators
		{Name: "Eq", Pattern: `=`},
		{Name: "Less", Pattern: `<`},
		{Name: "Greater", Pattern: `>`},
		{Name: "Plus", Pattern: `\+`},
		{Name: "Minus", Pattern: `-`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Question", Pattern: `\?`},
		{Name: "Bang", Pattern: `!`},
		{Name: "Amp", Pattern: `&`},
		{Name: "Percent", Pattern: `%`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Dollar", Pattern: `\$`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},

		// String literals; a doubled quote escapes the quote
		{Name: "String", Pattern: `'(?:[^'\\]|\\.|'')*'|"(?:[^"\\]|\\.|"")*"`},

		// Accent-quoted delimited identifier
		{Name: "EscapedIdent", Pattern: "`(?:[^`]|``)+`"},

		// Numbers are unsigned
		{Name: "Float", Pattern: `\d+\.\d+(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
		{Name: "HexInt", Pattern: `0x[0-9a-fA-F]+`},
		{Name: "OctalInt", Pattern: `0o[0-7]+`},
		{Name: "BinaryInt", Pattern: `0b[01]+`},
		{Name: "Int", Pattern: `\d+`},

		// Built-in function names, then the remaining reserved words, in any case
		{Name: "Function", Pattern: wordPattern(Functions)},
		{Name: "Keyword", Pattern: wordPattern(Keywords())},

		// Regular identifiers
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	},
})

// wordPattern matches any of words, case-insensitively, as a whole word.
func wordPattern(words []string) string {
	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b string) int { return len(b) - len(a) })

	return `(?i:(?:` + strings.Join(sorted, "|") + `)\b)`
}
