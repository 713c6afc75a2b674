// Package gqlgrammar provides a parser for ISO/IEC 39075 GQL queries built
// with participle.
//
// The grammar covers linear query statements (MATCH, FILTER, LET, FOR,
// ORDER BY, OFFSET, LIMIT, RETURN and FINISH) chained with NEXT, graph
// patterns with label expressions and quantifiers, and the value expressions
// those statements use.
//
// Reserved words lex as Keyword tokens and built-in function names as
// Function tokens, so neither can appear where an identifier is expected
// unless it is accent-quoted:
//
//	MATCH (a)-[:`ORDER`]->(b) RETURN b   // ok
//	MATCH (a)-[:ORDER]->(b) RETURN b     // syntax error
//
// `--` starts a comment, as the standard requires.
package gqlgrammar
