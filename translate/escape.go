package translate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

// EscapeMode selects how reserved relationship types are back-quoted.
type EscapeMode string

// Escape modes.
const (
	// EscapeTokens rewrites `[:w]` token sequences, keeping the source spelling
	// of w. Trivia between the tokens is allowed and strings, comments and
	// quoted identifiers are never touched.
	EscapeTokens EscapeMode = "tokens"

	// EscapeRegex substitutes the text `[:w]` case-insensitively, inserting w
	// as it appears in the reserved word list.
	EscapeRegex EscapeMode = "regex"
)

// ParseEscapeMode parses a mode name. The empty string selects EscapeTokens.
func ParseEscapeMode(s string) (EscapeMode, error) {
	switch EscapeMode(strings.ToLower(s)) {
	case "", EscapeTokens:
		return EscapeTokens, nil
	case EscapeRegex:
		return EscapeRegex, nil
	default:
		return "", fmt.Errorf("unknown escape mode %q (want %q or %q)", s, EscapeTokens, EscapeRegex)
	}
}

// Escape back-quotes every reserved word used as a relationship type.
// EscapeTokens keeps the spelling of the query ([:next] becomes [:`next`]);
// EscapeRegex writes the reserved word as listed ([:next] becomes [:`NEXT`]).
func Escape(query string, reserved []string, mode EscapeMode) string {
	if mode == EscapeRegex {
		return escapeRegex(query, reserved)
	}

	escaped, err := escapeTokens(query, reserved)
	if err != nil {
		return escapeRegex(query, reserved)
	}

	return escaped
}

func escapeTokens(query string, reserved []string) (string, error) {
	tokens, err := cyphergrammar.Tokenize(query)
	if err != nil {
		return "", err
	}

	words := make(map[string]bool, len(reserved))
	for _, w := range reserved {
		words[strings.ToUpper(w)] = true
	}

	var (
		lbracket = cyphergrammar.Symbol("LBracket")
		colon    = cyphergrammar.Symbol("Colon")
		ident    = cyphergrammar.Symbol("Ident")
		rbracket = cyphergrammar.Symbol("RBracket")
	)

	// Indexes of the non-trivia tokens.
	var sig []int

	for i, tok := range tokens {
		if !cyphergrammar.IsTrivia(tok.Type) {
			sig = append(sig, i)
		}
	}

	is := func(j int, t lexer.TokenType) bool {
		return j < len(sig) && tokens[sig[j]].Type == t
	}

	for j := range sig {
		if !is(j, lbracket) || !is(j+1, colon) || !is(j+2, ident) || !is(j+3, rbracket) {
			continue
		}

		tok := &tokens[sig[j+2]]
		if words[strings.ToUpper(tok.Value)] {
			tok.Value = "`" + tok.Value + "`"
		}
	}

	var b strings.Builder

	b.Grow(len(query))

	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}

	return b.String(), nil
}

func escapeRegex(query string, reserved []string) string {
	seen := make(map[string]bool, len(reserved))

	for _, w := range reserved {
		if seen[strings.ToUpper(w)] {
			continue
		}

		seen[strings.ToUpper(w)] = true

		re := regexp.MustCompile(`(?i)\[:` + regexp.QuoteMeta(w) + `\]`)
		query = re.ReplaceAllLiteralString(query, "[:`"+w+"`]")
	}

	return query
}

// AdjustReserved returns words with extra added and exclude removed, compared
// case-insensitively. The result is upper-case and sorted.
func AdjustReserved(words, extra, exclude []string) []string {
	drop := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		drop[strings.ToUpper(w)] = true
	}

	var out []string

	for _, w := range slices.Concat(words, extra) {
		if w = strings.ToUpper(w); !drop[w] {
			out = append(out, w)
		}
	}

	slices.Sort(out)

	return slices.Compact(out)
}
