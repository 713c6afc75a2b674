package cyphergrammar_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RangeLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel       string
		wantMin   string
		wantRange bool
		wantMax   string
	}{
		{"*", "", false, ""},
		{"*3", "3", false, ""},
		{"*1..3", "1", true, "3"},
		{"*..5", "", true, "5"},
		{"*2..", "2", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()

			script, err := cyphergrammar.Parse("MATCH (a)-[" + tt.rel + "]->(b) RETURN b")
			require.NoError(t, err)

			part := script.Query.SingleQuery.Clauses[0].Reading.Match.Pattern.Parts[0]
			rng := part.Element.Chain[0].Rel.Detail.Range
			require.NotNil(t, rng)

			assert.Equal(t, tt.wantMin, rng.Min)
			assert.Equal(t, tt.wantRange, rng.Range)
			assert.Equal(t, tt.wantMax, rng.Max)
		})
	}
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	t.Parallel()

	script, err := cyphergrammar.Parse("optional match (n:Person) where n.age >= 18 return distinct n.name as Name order by Name desc skip 1 limit 2")
	require.NoError(t, err)

	clauses := script.Query.SingleQuery.Clauses
	require.Len(t, clauses, 2)

	match := clauses[0].Reading.Match
	assert.True(t, match.Optional)
	assert.Equal(t, []string{"Person"}, match.Pattern.Parts[0].Element.Node.Labels.Labels)

	body := clauses[1].Return.Body
	assert.True(t, body.Distinct)
	assert.Equal(t, "Name", body.Items.Items[0].Alias)
	assert.Equal(t, "desc", body.Order.Items[0].Order)
}

func TestParse_ExpressionPositions(t *testing.T) {
	t.Parallel()

	query := "MATCH (n {name: 'Ada'  , born: 1815 }) RETURN n"

	script, err := cyphergrammar.Parse(query)
	require.NoError(t, err)

	pairs := script.Query.SingleQuery.Clauses[0].Reading.Match.Pattern.Parts[0].Element.Node.Properties.Map.Pairs
	require.Len(t, pairs, 2)

	for i, want := range []string{"'Ada'", "1815"} {
		v := pairs[i].Value
		got := strings.TrimSpace(query[v.Pos.Offset:v.EndPos.Offset])
		assert.Equal(t, want, got)
	}
}

func TestParse_PatternPredicateVsParenthesis(t *testing.T) {
	t.Parallel()

	script, err := cyphergrammar.Parse("MATCH (n) WHERE (n.age > 3) RETURN n")
	require.NoError(t, err)

	where := script.Query.SingleQuery.Clauses[0].Reading.Match.Where
	atom := where.Expr.Left.Left.Left.Expr.Left.Left.Left.Left.Expr.Atom
	assert.NotNil(t, atom.Parenthesized)
	assert.Nil(t, atom.PatternPredicate)

	script, err = cyphergrammar.Parse("MATCH (n) WHERE (n)-[:KNOWS]->() RETURN n")
	require.NoError(t, err)

	where = script.Query.SingleQuery.Clauses[0].Reading.Match.Where
	atom = where.Expr.Left.Left.Left.Expr.Left.Left.Left.Left.Expr.Atom
	assert.NotNil(t, atom.PatternPredicate)
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	script := `MATCH (n) RETURN n;
// a comment; with a semicolon
MATCH (m {name: 'a;b'}) RETURN m ;

;  MATCH (` + "`x;y`" + `) RETURN 1`

	stmts, err := cyphergrammar.SplitStatements(script)
	require.NoError(t, err)

	got := make([]string, len(stmts))
	for i, s := range stmts {
		got[i] = s.Text
		assert.Equal(t, s.Text, script[s.Offset:s.End()])
	}

	want := []string{
		"MATCH (n) RETURN n",
		"MATCH (m {name: 'a;b'}) RETURN m",
		"MATCH (`x;y`) RETURN 1",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitStatements() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 3, stmts[1].Pos.Line)
}

func TestSplitStatements_Empty(t *testing.T) {
	t.Parallel()

	stmts, err := cyphergrammar.SplitStatements("  ;\n// nothing\n ; ")
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	query := "MATCH (a)-[:KNOWS*1..2]->(b) /* c */ WHERE a.x <> 1.5 RETURN b"

	tokens, err := cyphergrammar.Tokenize(query)
	require.NoError(t, err)

	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}

	assert.Equal(t, query, b.String())
}

func TestTokenize_Numbers(t *testing.T) {
	t.Parallel()

	tokens, err := cyphergrammar.Tokenize("1..3 1.5 2e3 0x1F")
	require.NoError(t, err)

	var got []string

	for _, tok := range tokens {
		if cyphergrammar.IsTrivia(tok.Type) {
			continue
		}

		got = append(got, tok.Value)
	}

	assert.Equal(t, []string{"1", "..", "3", "1.5", "2e3", "0x1F"}, got)
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"name":         "name",
		"`full name`":  "full name",
		"`a``b`":       "a`b",
		"`":            "`",
		"`MATCH`":      "MATCH",
		"``":           "",
		"not`quoted`x": "not`quoted`x",
	}

	for in, want := range tests {
		assert.Equal(t, want, cyphergrammar.Unquote(in), "Unquote(%q)", in)
	}
}
