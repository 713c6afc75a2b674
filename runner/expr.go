package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrExprNotBool is returned when a filter does not evaluate to a boolean.
var ErrExprNotBool = errors.New("runner: filter did not return bool")

// QueryEnv is the environment filters are evaluated against.
type QueryEnv struct {
	Query  string `expr:"query"`
	Index  int    `expr:"index"`
	Source string `expr:"source"`
	Length int    `expr:"length"`
}

// NewQueryEnv builds the environment of the query at index.
func NewQueryEnv(source string, index int, query string) QueryEnv {
	return QueryEnv{Query: query, Index: index, Source: source, Length: len(query)}
}

// Filter selects queries with a boolean expr-lang expression, e.g.
// `query contains "MATCH" && index < 100`.
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles a filter. An empty expression keeps every query.
func CompileFilter(source string) (*Filter, error) {
	f := &Filter{source: source}

	if strings.TrimSpace(source) == "" {
		return f, nil
	}

	program, err := expr.Compile(source, expr.Env(QueryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", source, err)
	}

	f.program = program

	return f, nil
}

// String returns the filter expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.source
}

// Match reports whether env satisfies the filter.
func (f *Filter) Match(env QueryEnv) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.source, err)
	}

	keep, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T", ErrExprNotBool, f.source, output)
	}

	return keep, nil
}
