// Package cypher provides the openCypher side of graphil: a grammar oracle,
// a Neo4j-backed oracle and the lifter from Cypher into graphil IR.
package cypher

import (
	"github.com/rlch/graphil"
	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

//nolint:gochecknoinits // Dialect self-registration pattern
func init() {
	graphil.RegisterOracle("cypher", New)
	graphil.RegisterOracle("neo4j", NewNeo4j)
	graphil.RegisterLifter("cypher", func() graphil.Lifter {
		return NewLifter()
	})
}

// Oracle checks queries against the openCypher grammar.
type Oracle struct{}

// New creates the grammar oracle. The configuration is unused.
func New(_ graphil.DialectConfig) (graphil.Oracle, error) { //nolint:ireturn // Factory returns interface per Oracle pattern
	return &Oracle{}, nil
}

// Dialect returns the dialect identifier.
func (o *Oracle) Dialect() string {
	return "cypher"
}

// Conforms reports whether query parses as a single Cypher statement.
func (o *Oracle) Conforms(query string) bool {
	_, err := cyphergrammar.Parse(query)

	return err == nil
}

// Check parses query and returns the syntax error, if any.
func (o *Oracle) Check(query string) error {
	_, err := cyphergrammar.Parse(query)

	return err
}

// Ensure Oracle and Lifter implement the graphil interfaces.
var (
	_ graphil.Oracle = (*Oracle)(nil)
	_ graphil.Lifter = (*Lifter)(nil)
)
