// Package cyphergrammar provides a parser for Cypher queries built with participle.
//
// This package contains the lexer, AST types, and parser for the openCypher query
// language, plus the token-level helpers the translator needs: splitting a script
// into statements and tokenizing a query without losing trivia.
//
// # Usage
//
//	script, err := cyphergrammar.Parse("MATCH (u:User) RETURN u.name")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Keywords are lexed as identifiers and matched case-insensitively, so a
// relationship type such as `:Match` is a plain identifier to the grammar.
//
// # Grammar Origin
//
// The grammar is based on the openCypher specification:
// https://github.com/opencypher/openCypher
package cyphergrammar
