package graphil

import (
	"fmt"
	"strconv"
)

// Clause is one step of a lifted query. The set of variants is closed:
// *MatchClause, *WhereClause, *WithClause and *ReturnClause.
// A []Clause is the IR of a whole query and its order is significant,
// later clauses consume bindings introduced by earlier ones.
type Clause interface {
	// Kind returns the clause keyword in lower case ("match", "where", "with", "return").
	Kind() string

	clause()
}

// MatchClause matches a single path pattern.
type MatchClause struct {
	Pattern  PathPattern `json:"pattern" yaml:"pattern"`
	Optional bool        `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// WhereClause filters the preceding match with exactly one comparison.
type WhereClause struct {
	Expr CompareExpression `json:"expr" yaml:"expr"`
}

// WithClause projects bindings for the clauses that follow it.
type WithClause struct {
	Body ReturnBody `json:"body" yaml:"body"`

	// Filter is the WITH ... WHERE comparison, nil when absent.
	Filter *CompareExpression `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// ReturnClause is the final projection of a query.
type ReturnClause struct {
	Body ReturnBody `json:"body" yaml:"body"`
}

func (*MatchClause) Kind() string  { return "match" }
func (*WhereClause) Kind() string  { return "where" }
func (*WithClause) Kind() string   { return "with" }
func (*ReturnClause) Kind() string { return "return" }

func (*MatchClause) clause()  {}
func (*WhereClause) clause()  {}
func (*WithClause) clause()   {}
func (*ReturnClause) clause() {}

// PathPattern is an alternating chain of nodes and edges.
// Edges[i] connects Nodes[i] and Nodes[i+1].
type PathPattern struct {
	Nodes []NodePattern `json:"nodes" yaml:"nodes"`
	Edges []EdgePattern `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// Validate reports whether the node/edge counts form a chain.
func (p PathPattern) Validate() error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("%w: path pattern has no nodes", ErrInvalidPattern)
	}

	if len(p.Nodes) != len(p.Edges)+1 {
		return fmt.Errorf("%w: %d nodes and %d edges", ErrInvalidPattern, len(p.Nodes), len(p.Edges))
	}

	return nil
}

// Property is a key with the raw source text of its value.
// Values are carried verbatim and never evaluated.
type Property struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// NodePattern is a single node in a path. Empty strings mean absent.
type NodePattern struct {
	Binding    string     `json:"binding,omitempty" yaml:"binding,omitempty"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// EdgePattern is a relationship between two nodes of a path.
type EdgePattern struct {
	Binding    string     `json:"binding,omitempty" yaml:"binding,omitempty"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	Direction  Direction  `json:"direction" yaml:"direction"`
	Hops       HopRange   `json:"hops" yaml:"hops"`
}

// Direction of an edge relative to the order the path is written in.
type Direction string

// Edge directions. An edge with no arrowhead and an edge with both
// arrowheads are both Bidirection.
const (
	Left        Direction = "left"
	Right       Direction = "right"
	Bidirection Direction = "bidirection"
)

// HopRange bounds a variable-length traversal. -1 marks an open bound;
// (-1, -1) means no range was written and the edge is a single hop.
type HopRange struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// SingleHop is the range of an edge written without a `*` range.
var SingleHop = HopRange{Low: -1, High: -1}

// Variable reports whether the range was written explicitly.
func (h HopRange) Variable() bool {
	return h.Low != -1 || h.High != -1
}

// Exact reports whether the range is a fixed number of hops, as in `*3`.
func (h HopRange) Exact() bool {
	return h.Variable() && h.Low == h.High
}

func (h HopRange) String() string {
	if !h.Variable() {
		return ""
	}

	high := ""
	if h.High >= 0 {
		high = strconv.Itoa(h.High)
	}

	return fmt.Sprintf("(%d,%s)", h.Low, high)
}

// Comparator is a binary comparison operator.
type Comparator string

// Comparators.
const (
	Equal   Comparator = "equal"
	Neq     Comparator = "neq"
	Less    Comparator = "less"
	Greater Comparator = "greater"
	Leq     Comparator = "leq"
	Geq     Comparator = "geq"
)

var comparatorSymbols = map[string]Comparator{
	"=":  Equal,
	"<>": Neq,
	"<":  Less,
	">":  Greater,
	"<=": Leq,
	">=": Geq,
}

// ParseComparator maps an operator token to its Comparator.
func ParseComparator(op string) (Comparator, bool) {
	c, ok := comparatorSymbols[op]

	return c, ok
}

// Symbol returns the operator token for c, or "" for an unknown comparator.
func (c Comparator) Symbol() string {
	for sym, cmp := range comparatorSymbols {
		if cmp == c {
			return sym
		}
	}

	return ""
}

// CompareExpression compares a binding (or one of its properties, optionally
// wrapped in a single-argument function) against a literal operand.
type CompareExpression struct {
	Binding    string     `json:"binding" yaml:"binding"`
	Property   string     `json:"property,omitempty" yaml:"property,omitempty"`
	Function   string     `json:"function,omitempty" yaml:"function,omitempty"`
	Comparator Comparator `json:"comparator" yaml:"comparator"`

	// Operand is the raw text of the right-hand literal or parameter.
	Operand string `json:"operand" yaml:"operand"`
}

// ReturnBody is the projection shared by WITH and RETURN.
type ReturnBody struct {
	Items    []ReturnItem `json:"items,omitempty" yaml:"items,omitempty"`
	Order    []SortItem   `json:"order,omitempty" yaml:"order,omitempty"`
	Skip     int          `json:"skip" yaml:"skip"`
	Limit    int          `json:"limit" yaml:"limit"`
	Distinct bool         `json:"distinct,omitempty" yaml:"distinct,omitempty"`

	// Star is set for `RETURN *` / `WITH *`.
	Star bool `json:"star,omitempty" yaml:"star,omitempty"`
}

// NoBound is the Skip/Limit value of an absent SKIP or LIMIT.
const NoBound = -1

// ReturnItem is one projected expression.
type ReturnItem struct {
	Binding  string `json:"binding" yaml:"binding"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Alias    string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
}

// SortItem is one ORDER BY key. Order is "ASC", "DESC" or empty.
type SortItem struct {
	Binding  string `json:"binding" yaml:"binding"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Order    string `json:"order,omitempty" yaml:"order,omitempty"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
}
