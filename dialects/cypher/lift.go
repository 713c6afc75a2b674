package cypher

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rlch/graphil"
	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

// Lifter lifts Cypher query text into graphil IR.
type Lifter struct{}

// NewLifter creates a new Cypher lifter.
func NewLifter() *Lifter {
	return &Lifter{}
}

// Lifted is the result of a successful lift.
type Lifted struct {
	Clauses []graphil.Clause

	// Restrictions that dropped information from the query, in the order
	// they were first applied.
	Restrictions []Restriction
}

// Lift parses query and lifts it into IR. It returns either the whole
// clause list or nil and an error wrapping graphil.ErrSyntax or
// graphil.ErrUnsupported.
func (l *Lifter) Lift(query string) ([]graphil.Clause, error) {
	lifted, err := l.LiftDetailed(query)
	if err != nil {
		return nil, err
	}

	return lifted.Clauses, nil
}

// LiftDetailed is Lift that also reports the restrictions applied.
func (l *Lifter) LiftDetailed(query string) (lifted *Lifted, err error) {
	script, err := cyphergrammar.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", graphil.ErrSyntax, err)
	}

	defer func() {
		if r := recover(); r != nil {
			lifted = nil
			err = fmt.Errorf("%w: %v", graphil.ErrUnsupported, r)
		}
	}()

	st := &liftState{src: query}

	clauses, err := st.query(script.Query)
	if err != nil {
		return nil, err
	}

	return &Lifted{Clauses: clauses, Restrictions: st.applied}, nil
}

// liftState carries the source text, for slicing out raw literal text,
// and the restrictions applied so far.
type liftState struct {
	src     string
	applied []Restriction
}

func (st *liftState) apply(r Restriction) {
	if !slices.Contains(st.applied, r) {
		st.applied = append(st.applied, r)
	}
}

func unsupported(what string) error {
	return fmt.Errorf("%w: %s", graphil.ErrUnsupported, what)
}

func unsupportedBy(r Restriction, what string) error {
	return fmt.Errorf("%w: %s (%s)", graphil.ErrUnsupported, what, r)
}

func (st *liftState) query(q *cyphergrammar.RegularQuery) ([]graphil.Clause, error) {
	if len(q.Unions) > 0 {
		return nil, unsupported("UNION")
	}

	var (
		clauses  []graphil.Clause
		seenWith bool
	)

	last := len(q.SingleQuery.Clauses) - 1

	for i, c := range q.SingleQuery.Clauses {
		switch {
		case c.Reading != nil:
			lifted, err := st.reading(c.Reading)
			if err != nil {
				return nil, err
			}

			clauses = append(clauses, lifted...)

		case c.Updating != nil:
			return nil, unsupported("updating clause")

		case c.With != nil:
			if seenWith {
				st.apply(RestrictFirstWith)

				continue
			}

			seenWith = true

			with, err := st.with(c.With)
			if err != nil {
				return nil, err
			}

			clauses = append(clauses, with)

		case c.Return != nil:
			if i != last {
				return nil, unsupported("RETURN before the end of the query")
			}

			body, err := st.body(c.Return.Body)
			if err != nil {
				return nil, err
			}

			clauses = append(clauses, &graphil.ReturnClause{Body: body})
		}
	}

	if len(clauses) == 0 || clauses[len(clauses)-1].Kind() != "return" {
		return nil, unsupported("query without RETURN")
	}

	return clauses, nil
}

func (st *liftState) reading(rc *cyphergrammar.ReadingClause) ([]graphil.Clause, error) {
	switch {
	case rc.Match != nil:
		return st.match(rc.Match)
	case rc.Unwind != nil:
		return nil, nil
	default:
		return nil, unsupported("CALL")
	}
}

func (st *liftState) match(m *cyphergrammar.MatchClause) ([]graphil.Clause, error) {
	if len(m.Pattern.Parts) > 1 {
		st.apply(RestrictFirstPattern)
	}

	path, err := st.patternPart(m.Pattern.Parts[0])
	if err != nil {
		return nil, err
	}

	clauses := []graphil.Clause{&graphil.MatchClause{Pattern: path, Optional: m.Optional}}

	if m.Where != nil {
		cmp, err := st.comparison(m.Where.Expr)
		if err != nil {
			return nil, err
		}

		clauses = append(clauses, &graphil.WhereClause{Expr: cmp})
	}

	return clauses, nil
}

func (st *liftState) patternPart(part *cyphergrammar.PatternPart) (graphil.PathPattern, error) {
	switch {
	case part.Var != "":
		return graphil.PathPattern{}, unsupported("path variable")
	case part.Shortest != nil:
		return graphil.PathPattern{}, unsupported(part.Shortest.Func)
	}

	elem := part.Element
	if elem.Paren != nil {
		return graphil.PathPattern{}, unsupported("parenthesised pattern")
	}

	var path graphil.PathPattern

	node, err := st.node(elem.Node)
	if err != nil {
		return graphil.PathPattern{}, err
	}

	path.Nodes = append(path.Nodes, node)

	for _, link := range elem.Chain {
		edge, err := st.edge(link.Rel)
		if err != nil {
			return graphil.PathPattern{}, err
		}

		node, err := st.node(link.Node)
		if err != nil {
			return graphil.PathPattern{}, err
		}

		path.Edges = append(path.Edges, edge)
		path.Nodes = append(path.Nodes, node)
	}

	return path, path.Validate()
}

func (st *liftState) node(np *cyphergrammar.NodePattern) (graphil.NodePattern, error) {
	node := graphil.NodePattern{Binding: cyphergrammar.Unquote(np.Variable)}

	if np.Labels != nil {
		if len(np.Labels.Labels) > 1 {
			st.apply(RestrictFirstLabel)
		}

		node.Label = cyphergrammar.Unquote(np.Labels.Labels[0])
	}

	if np.Properties != nil {
		props, err := st.properties(np.Properties)
		if err != nil {
			return graphil.NodePattern{}, err
		}

		node.Properties = props
	}

	return node, nil
}

func (st *liftState) edge(rel *cyphergrammar.RelationshipPattern) (graphil.EdgePattern, error) {
	edge := graphil.EdgePattern{
		Direction: direction(rel),
		Hops:      graphil.SingleHop,
	}

	if rel.LeftArrow && rel.RightArrow {
		st.apply(RestrictDirectionCollapse)
	}

	d := rel.Detail
	if d == nil {
		return edge, nil
	}

	edge.Binding = cyphergrammar.Unquote(d.Variable)

	if d.Types != nil {
		if len(d.Types.Types) > 1 {
			st.apply(RestrictFirstLabel)
		}

		edge.Type = cyphergrammar.Unquote(d.Types.Types[0])
	}

	if d.Range != nil {
		hops, err := hopRange(d.Range)
		if err != nil {
			return graphil.EdgePattern{}, err
		}

		edge.Hops = hops
	}

	if d.Properties != nil {
		props, err := st.properties(d.Properties)
		if err != nil {
			return graphil.EdgePattern{}, err
		}

		edge.Properties = props
	}

	return edge, nil
}

// direction reads the arrowheads of rel. No arrowhead and both arrowheads
// are the same direction.
func direction(rel *cyphergrammar.RelationshipPattern) graphil.Direction {
	switch {
	case rel.LeftArrow && !rel.RightArrow:
		return graphil.Left
	case rel.RightArrow && !rel.LeftArrow:
		return graphil.Right
	default:
		return graphil.Bidirection
	}
}

// hopRange decodes the five shapes of a range literal:
// `*`, `*n..m`, `*n..`, `*..m` and `*n`.
func hopRange(r *cyphergrammar.RangeLiteral) (graphil.HopRange, error) {
	atoi := func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, unsupported("hop bound " + s)
		}

		return n, nil
	}

	switch {
	case r.Min == "" && r.Max == "":
		return graphil.HopRange{Low: 1, High: -1}, nil

	case r.Min != "" && r.Max != "":
		low, err := atoi(r.Min)
		if err != nil {
			return graphil.HopRange{}, err
		}

		high, err := atoi(r.Max)
		if err != nil {
			return graphil.HopRange{}, err
		}

		return graphil.HopRange{Low: low, High: high}, nil

	case r.Min != "":
		low, err := atoi(r.Min)
		if err != nil {
			return graphil.HopRange{}, err
		}

		if !r.Range {
			return graphil.HopRange{Low: low, High: low}, nil
		}

		return graphil.HopRange{Low: low, High: -1}, nil

	default:
		high, err := atoi(r.Max)
		if err != nil {
			return graphil.HopRange{}, err
		}

		return graphil.HopRange{Low: 1, High: high}, nil
	}
}

func (st *liftState) properties(p *cyphergrammar.Properties) ([]graphil.Property, error) {
	if p.Map == nil {
		return nil, unsupported("parameter as property map")
	}

	props := make([]graphil.Property, 0, len(p.Map.Pairs))
	for _, pair := range p.Map.Pairs {
		props = append(props, graphil.Property{
			Key:   cyphergrammar.Unquote(pair.Key),
			Value: st.text(pair.Value.Pos, pair.Value.EndPos),
		})
	}

	return props, nil
}

// text returns the raw source between two positions, trimmed.
func (st *liftState) text(start, end lexer.Position) string {
	return strings.TrimSpace(st.src[start.Offset:end.Offset])
}

func (st *liftState) with(wc *cyphergrammar.WithClause) (*graphil.WithClause, error) {
	body, err := st.body(wc.Body)
	if err != nil {
		return nil, err
	}

	with := &graphil.WithClause{Body: body}

	if wc.Where != nil {
		cmp, err := st.comparison(wc.Where.Expr)
		if err != nil {
			return nil, err
		}

		with.Filter = &cmp
	}

	return with, nil
}

func (st *liftState) body(pb *cyphergrammar.ProjectionBody) (graphil.ReturnBody, error) {
	body := graphil.ReturnBody{
		Skip:     graphil.NoBound,
		Limit:    graphil.NoBound,
		Distinct: pb.Distinct,
		Star:     pb.Items.Star,
	}

	items := pb.Items.Items
	if pb.Items.Star {
		items = pb.Items.More
	}

	for _, item := range items {
		r, err := st.ref(item.Expr)
		if err != nil {
			return graphil.ReturnBody{}, err
		}

		body.Items = append(body.Items, graphil.ReturnItem{
			Binding:  r.Binding,
			Property: r.Property,
			Alias:    cyphergrammar.Unquote(item.Alias),
			Function: r.Function,
		})
	}

	if pb.Order != nil {
		for _, item := range pb.Order.Items {
			r, err := st.ref(item.Expr)
			if err != nil {
				return graphil.ReturnBody{}, err
			}

			body.Order = append(body.Order, graphil.SortItem{
				Binding:  r.Binding,
				Property: r.Property,
				Order:    sortOrder(item.Order),
				Function: r.Function,
			})
		}
	}

	if pb.Skip != nil {
		n, err := bound(pb.Skip.Expr, "SKIP")
		if err != nil {
			return graphil.ReturnBody{}, err
		}

		body.Skip = n
	}

	if pb.Limit != nil {
		n, err := bound(pb.Limit.Expr, "LIMIT")
		if err != nil {
			return graphil.ReturnBody{}, err
		}

		body.Limit = n
	}

	return body, nil
}

func sortOrder(order string) string {
	switch strings.ToUpper(order) {
	case "ASC", "ASCENDING":
		return "ASC"
	case "DESC", "DESCENDING":
		return "DESC"
	default:
		return ""
	}
}

// bound reads a SKIP or LIMIT count, which must be a decimal integer literal.
func bound(e *cyphergrammar.Expression, clause string) (int, error) {
	lit := literal(e)
	if lit == nil || lit.Int == nil {
		return 0, unsupported(clause + " without an integer literal")
	}

	n, err := strconv.Atoi(*lit.Int)
	if err != nil {
		return 0, unsupported(clause + " " + *lit.Int)
	}

	return n, nil
}

// literal returns the literal e consists of, or nil.
func literal(e *cyphergrammar.Expression) *cyphergrammar.Literal {
	add, ok := single(e)
	if !ok {
		return nil
	}

	pf, ok := term(add)
	if !ok || pf.Op != "" || len(pf.Expr.Suffixes) > 0 {
		return nil
	}

	return pf.Expr.Atom.Literal
}

// comparison lifts a WHERE expression that is exactly one comparison.
func (st *liftState) comparison(e *cyphergrammar.Expression) (graphil.CompareExpression, error) {
	switch {
	case e.HasOR():
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "OR")
	case e.Left.HasXOR():
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "XOR")
	case e.Left.Left.HasAND():
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "AND")
	case e.Left.Left.Left.Not:
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "NOT")
	}

	c := e.Left.Left.Left.Expr

	switch {
	case !c.HasComparison():
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "predicate without comparison")
	case len(c.Right) > 1:
		return graphil.CompareExpression{}, unsupportedBy(RestrictSingleComparison, "chained comparison")
	}

	subject, err := st.operand(c.Left)
	if err != nil {
		return graphil.CompareExpression{}, err
	}

	cmp, ok := graphil.ParseComparator(c.Right[0].Op)
	if !ok {
		return graphil.CompareExpression{}, unsupported("operator " + c.Right[0].Op)
	}

	value, err := st.value(c.Right[0].Expr)
	if err != nil {
		return graphil.CompareExpression{}, err
	}

	return graphil.CompareExpression{
		Binding:    subject.Binding,
		Property:   subject.Property,
		Function:   subject.Function,
		Comparator: cmp,
		Operand:    value,
	}, nil
}

// value returns the raw text of the right-hand side of a comparison, which
// must be a literal or a parameter, optionally signed.
func (st *liftState) value(add *cyphergrammar.AddSubExpr) (string, error) {
	pf, ok := term(add)
	if !ok {
		return "", unsupported("arithmetic in comparison")
	}

	if len(pf.Expr.Suffixes) > 0 {
		return "", unsupported("postfix operator in comparison")
	}

	atom := pf.Expr.Atom
	if atom.Literal == nil && atom.Parameter == nil {
		return "", unsupported("non-literal comparison operand")
	}

	return st.text(add.Pos, add.EndPos), nil
}

// reference is a binding, an optional property lookup and an optional
// enclosing one-argument function.
type reference struct {
	Binding  string
	Property string
	Function string
}

// ref lifts a whole expression that must reduce to a single reference.
func (st *liftState) ref(e *cyphergrammar.Expression) (reference, error) {
	add, ok := single(e)
	if !ok {
		return reference{}, unsupported("compound expression")
	}

	return st.operand(add)
}

func (st *liftState) operand(add *cyphergrammar.AddSubExpr) (reference, error) {
	pf, ok := term(add)
	if !ok || pf.Op != "" {
		return reference{}, unsupported("arithmetic")
	}

	return st.atom(pf.Expr)
}

func (st *liftState) atom(pf *cyphergrammar.PostfixExpr) (reference, error) {
	atom := pf.Atom

	switch {
	case atom.Variable != "":
		r := reference{Binding: cyphergrammar.Unquote(atom.Variable)}

		for i, s := range pf.Suffixes {
			if s.Property == "" {
				return reference{}, unsupported("postfix operator")
			}

			if i > 0 {
				return reference{}, unsupported("nested property lookup")
			}

			r.Property = cyphergrammar.Unquote(s.Property)
		}

		return r, nil

	case atom.CountAll:
		if len(pf.Suffixes) > 0 {
			return reference{}, unsupported("postfix operator")
		}

		return reference{Binding: "*", Function: "count"}, nil

	case atom.FunctionCall != nil:
		fc := atom.FunctionCall

		switch {
		case len(pf.Suffixes) > 0:
			return reference{}, unsupported("postfix operator")
		case fc.Distinct:
			return reference{}, unsupported("DISTINCT in function call")
		case len(fc.Args) != 1:
			return reference{}, unsupported(fmt.Sprintf("%s with %d arguments", fc.Name, len(fc.Args)))
		}

		inner, err := st.ref(fc.Args[0])
		if err != nil {
			return reference{}, err
		}

		if inner.Function != "" {
			return reference{}, unsupported("nested function call")
		}

		inner.Function = fc.Name.String()

		return inner, nil

	default:
		return reference{}, unsupported("expression")
	}
}

// single unwraps an expression with no boolean operators or comparisons.
func single(e *cyphergrammar.Expression) (*cyphergrammar.AddSubExpr, bool) {
	if e.HasOR() || e.Left.HasXOR() || e.Left.Left.HasAND() {
		return nil, false
	}

	not := e.Left.Left.Left
	if not.Not || not.Expr.HasComparison() {
		return nil, false
	}

	return not.Expr.Left, true
}

// term unwraps an additive expression with no arithmetic.
func term(add *cyphergrammar.AddSubExpr) (*cyphergrammar.UnaryExpr, bool) {
	if len(add.Right) > 0 || len(add.Left.Right) > 0 || len(add.Left.Left.Right) > 0 {
		return nil, false
	}

	return add.Left.Left.Left, true
}
