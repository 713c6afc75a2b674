// Package gql provides the ISO-GQL side of graphil: the grammar oracle with
// its reserved word list and the lowerer from graphil IR into GQL text.
package gql

import (
	"slices"

	"github.com/rlch/graphil"
	gqlgrammar "github.com/rlch/graphil/dialects/gql/grammar"
)

//nolint:gochecknoinits // Dialect self-registration pattern
func init() {
	graphil.RegisterOracle("gql", New)
	graphil.RegisterLowerer("gql", func() graphil.Lowerer {
		return NewLowerer()
	})
}

// Oracle checks queries against the GQL grammar.
type Oracle struct{}

// New creates the GQL oracle. The configuration is unused.
func New(_ graphil.DialectConfig) (graphil.Oracle, error) { //nolint:ireturn // Factory returns interface per Oracle pattern
	return &Oracle{}, nil
}

// Dialect returns the dialect identifier.
func (o *Oracle) Dialect() string {
	return "gql"
}

// Conforms reports whether query parses as GQL and passes validation.
func (o *Oracle) Conforms(query string) bool {
	return gqlgrammar.Check(query) == nil
}

// Check returns the syntax or validation error for query, if any.
func (o *Oracle) Check(query string) error {
	return gqlgrammar.Check(query)
}

// ReservedWords returns the reserved and pre-reserved words, upper-case and
// sorted.
func (o *Oracle) ReservedWords() []string {
	words := slices.Concat(gqlgrammar.ReservedWords, gqlgrammar.PreReservedWords)
	slices.Sort(words)

	return slices.Compact(words)
}

// Ensure Oracle and Lowerer implement the graphil interfaces.
var (
	_ graphil.Oracle         = (*Oracle)(nil)
	_ graphil.ReservedWorder = (*Oracle)(nil)
	_ graphil.Lowerer        = (*Lowerer)(nil)
)
