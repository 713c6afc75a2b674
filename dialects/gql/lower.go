package gql

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rlch/graphil"
	gqlgrammar "github.com/rlch/graphil/dialects/gql/grammar"
)

// Lowerer renders graphil IR as GQL text.
type Lowerer struct{}

// NewLowerer creates a GQL lowerer.
func NewLowerer() *Lowerer {
	return &Lowerer{}
}

// Lower renders clauses as a single GQL linear query. The clauses must end in
// a RETURN; every WITH becomes a RETURN followed by NEXT. Errors wrap
// graphil.ErrLowering.
func (l *Lowerer) Lower(clauses []graphil.Clause) (string, error) {
	if len(clauses) == 0 {
		return "", fmt.Errorf("%w: no clauses", graphil.ErrLowering)
	}

	if _, ok := clauses[len(clauses)-1].(*graphil.ReturnClause); !ok {
		return "", fmt.Errorf("%w: query must end with RETURN, got %s", graphil.ErrLowering, clauses[len(clauses)-1].Kind())
	}

	w := &writer{}

	var prev graphil.Clause

	for _, c := range clauses {
		var err error

		switch c := c.(type) {
		case *graphil.MatchClause:
			err = w.match(c)
		case *graphil.WhereClause:
			_, afterMatch := prev.(*graphil.MatchClause)
			err = w.where(c.Expr, afterMatch)
		case *graphil.WithClause:
			err = w.with(c)
		case *graphil.ReturnClause:
			err = w.body(c.Body)
		default:
			err = fmt.Errorf("unknown clause %T", c)
		}

		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", graphil.ErrLowering, c.Kind(), err)
		}

		prev = c
	}

	return w.String(), nil
}

// writer accumulates space-separated GQL statements.
type writer struct {
	strings.Builder
}

func (w *writer) word(s string) {
	if w.Len() > 0 {
		w.WriteByte(' ')
	}

	w.WriteString(s)
}

func (w *writer) match(c *graphil.MatchClause) error {
	path, err := Path(c.Pattern)
	if err != nil {
		return err
	}

	if c.Optional {
		w.word("OPTIONAL")
	}

	w.word("MATCH " + path)

	return nil
}

// where renders a comparison as the WHERE of the preceding MATCH, or as a
// FILTER statement anywhere else.
func (w *writer) where(expr graphil.CompareExpression, afterMatch bool) error {
	cond, err := Condition(expr)
	if err != nil {
		return err
	}

	if afterMatch {
		w.word("WHERE " + cond)
	} else {
		w.word("FILTER " + cond)
	}

	return nil
}

func (w *writer) with(c *graphil.WithClause) error {
	if err := w.body(c.Body); err != nil {
		return err
	}

	w.word("NEXT")

	if c.Filter != nil {
		return w.where(*c.Filter, false)
	}

	return nil
}

func (w *writer) body(b graphil.ReturnBody) error {
	ret, err := Projection(b)
	if err != nil {
		return err
	}

	w.word(ret)

	return nil
}

// Path renders a path pattern.
func Path(p graphil.PathPattern) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(node(p.Nodes[0]))

	for i, e := range p.Edges {
		edge, err := Edge(e)
		if err != nil {
			return "", err
		}

		b.WriteString(edge)
		b.WriteString(node(p.Nodes[i+1]))
	}

	return b.String(), nil
}

func node(n graphil.NodePattern) string {
	return "(" + filler(n.Binding, n.Label, n.Properties) + ")"
}

// Edge renders an edge with its quantifier. An edge with nothing inside the
// brackets is written in abbreviated form.
func Edge(e graphil.EdgePattern) (string, error) {
	quant, err := Quantifier(e.Hops)
	if err != nil {
		return "", err
	}

	inner := filler(e.Binding, e.Type, e.Properties)

	var left, right string

	switch e.Direction {
	case graphil.Right:
		left, right = "-", "->"
	case graphil.Left:
		left, right = "<-", "-"
	case graphil.Bidirection:
		left, right = "-", "-"
	default:
		return "", fmt.Errorf("unknown direction %q", e.Direction)
	}

	if inner == "" {
		switch e.Direction {
		case graphil.Right:
			return "->" + quant, nil
		case graphil.Left:
			return "<-" + quant, nil
		default:
			return "-" + quant, nil
		}
	}

	return left + "[" + inner + "]" + right + quant, nil
}

// Quantifier renders a hop range as a GQL quantifier, or "" for a single hop.
func Quantifier(h graphil.HopRange) (string, error) {
	if !h.Variable() {
		return "", nil
	}

	low := max(h.Low, 0)

	switch {
	case h.High < 0:
		return "{" + strconv.Itoa(low) + ",}", nil
	case h.High < low:
		return "", fmt.Errorf("hop range %s has lower bound above upper bound", h)
	case h.Exact():
		return "{" + strconv.Itoa(low) + "}", nil
	default:
		return "{" + strconv.Itoa(low) + "," + strconv.Itoa(h.High) + "}", nil
	}
}

func filler(binding, label string, props []graphil.Property) string {
	var b strings.Builder

	if binding != "" {
		b.WriteString(Ident(binding))
	}

	if label != "" {
		b.WriteString(":" + Ident(label))
	}

	if len(props) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteByte('{')

		for i, p := range props {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(Ident(p.Key) + ": " + p.Value)
		}

		b.WriteByte('}')
	}

	return b.String()
}

// Condition renders a comparison.
func Condition(e graphil.CompareExpression) (string, error) {
	sym := e.Comparator.Symbol()
	if sym == "" {
		return "", fmt.Errorf("unknown comparator %q", e.Comparator)
	}

	if e.Operand == "" {
		return "", fmt.Errorf("comparison on %s has no operand", e.Binding)
	}

	return reference(e.Binding, e.Property, e.Function) + " " + sym + " " + e.Operand, nil
}

// Projection renders a RETURN statement with its ordering and paging.
func Projection(b graphil.ReturnBody) (string, error) {
	if !b.Star && len(b.Items) == 0 {
		return "", errors.New("projection has no items")
	}

	var s strings.Builder

	s.WriteString("RETURN ")

	if b.Distinct {
		s.WriteString("DISTINCT ")
	}

	if b.Star {
		s.WriteString("*")

		if len(b.Items) > 0 {
			s.WriteString(", ")
		}
	}

	for i, item := range b.Items {
		if i > 0 {
			s.WriteString(", ")
		}

		s.WriteString(reference(item.Binding, item.Property, item.Function))

		if item.Alias != "" {
			s.WriteString(" AS " + Ident(item.Alias))
		}
	}

	if len(b.Order) > 0 {
		s.WriteString(" ORDER BY ")

		for i, item := range b.Order {
			if i > 0 {
				s.WriteString(", ")
			}

			s.WriteString(reference(item.Binding, item.Property, item.Function))

			switch item.Order {
			case "":
			case "ASC", "DESC":
				s.WriteString(" " + item.Order)
			default:
				return "", fmt.Errorf("unknown sort order %q", item.Order)
			}
		}
	}

	if b.Skip >= 0 {
		s.WriteString(" OFFSET " + strconv.Itoa(b.Skip))
	}

	if b.Limit >= 0 {
		s.WriteString(" LIMIT " + strconv.Itoa(b.Limit))
	}

	return s.String(), nil
}

// reference renders binding[.property], wrapped in function when set.
// A "*" binding only appears as count(*).
func reference(binding, property, function string) string {
	var ref string

	switch {
	case binding == "*":
		ref = "*"
	case property != "":
		ref = Ident(binding) + "." + Ident(property)
	default:
		ref = Ident(binding)
	}

	if function == "" {
		return ref
	}

	return Function(function) + "(" + ref + ")"
}

var regularIdent = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

// Ident returns name as a GQL identifier, accent-quoted when it is a reserved
// word or not a regular identifier.
func Ident(name string) string {
	if regularIdent.MatchString(name) && !gqlgrammar.IsReserved(name) {
		return name
	}

	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
