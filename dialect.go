package graphil

import (
	"fmt"
	"slices"
)

// Oracle decides whether query text conforms to a dialect's grammar.
type Oracle interface {
	// Dialect returns the dialect the oracle checks (e.g., "cypher", "gql").
	Dialect() string

	// Conforms reports whether query is syntactically valid in the dialect.
	Conforms(query string) bool
}

// ReservedWorder is implemented by target-dialect oracles whose keywords
// must be back-quoted when they appear as relationship types.
type ReservedWorder interface {
	ReservedWords() []string
}

// Lifter turns source-dialect query text into IR.
// Lift is all-or-nothing: on error the returned slice is nil.
type Lifter interface {
	Lift(query string) ([]Clause, error)
}

// Lowerer renders IR as target-dialect query text.
type Lowerer interface {
	Lower(clauses []Clause) (string, error)
}

// DialectConfig holds settings for oracles that need a live backend.
type DialectConfig struct {
	// Connection URI (e.g., "bolt://localhost:7687")
	URI string `yaml:"uri,omitempty"`

	// Optional credentials (if not in URI)
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Oracle-specific options
	Options map[string]any `yaml:"options,omitempty"`
}

// OracleFactory creates an Oracle from connection configuration.
type OracleFactory func(cfg DialectConfig) (Oracle, error)

var oracles = make(map[string]OracleFactory)

// RegisterOracle registers an oracle factory by name.
// Dialect packages call this in their init() function.
func RegisterOracle(name string, factory OracleFactory) {
	oracles[name] = factory
}

// NewOracle creates an oracle instance by name.
func NewOracle(name string, cfg DialectConfig) (Oracle, error) { //nolint:ireturn
	factory, ok := oracles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOracle, name)
	}

	return factory(cfg)
}

// RegisteredOracles returns the names of all registered oracles, sorted.
func RegisteredOracles() []string {
	return sortedKeys(oracles)
}

// LifterFactory creates a Lifter for a source dialect.
type LifterFactory func() Lifter

var lifters = make(map[string]LifterFactory)

// RegisterLifter registers a lifter factory by dialect name.
func RegisterLifter(dialectName string, factory LifterFactory) {
	lifters[dialectName] = factory
}

// NewLifter returns a Lifter for the given source dialect.
func NewLifter(dialectName string) (Lifter, error) { //nolint:ireturn
	factory, ok := lifters[dialectName]
	if !ok {
		return nil, fmt.Errorf("%w: no lifter for %s", ErrUnknownDialect, dialectName)
	}

	return factory(), nil
}

// LowererFactory creates a Lowerer for a target dialect.
type LowererFactory func() Lowerer

var lowerers = make(map[string]LowererFactory)

// RegisterLowerer registers a lowerer factory by dialect name.
func RegisterLowerer(dialectName string, factory LowererFactory) {
	lowerers[dialectName] = factory
}

// NewLowerer returns a Lowerer for the given target dialect.
func NewLowerer(dialectName string) (Lowerer, error) { //nolint:ireturn
	factory, ok := lowerers[dialectName]
	if !ok {
		return nil, fmt.Errorf("%w: no lowerer for %s", ErrUnknownDialect, dialectName)
	}

	return factory(), nil
}

// MarkdownLanguage returns the markdown fence language for a dialect.
// Used for syntax highlighting in hover documentation.
func MarkdownLanguage(dialectName string) string {
	switch dialectName {
	case "cypher", "neo4j":
		return "cypher"
	case "gql":
		return "gql"
	default:
		return dialectName
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
