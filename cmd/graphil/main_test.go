package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/analysis"
	"github.com/rlch/graphil/dialects/cypher"
	"github.com/rlch/graphil/dialects/gql"
	"github.com/rlch/graphil/translate"
)

func TestReadQuery(t *testing.T) {
	t.Parallel()

	q, err := readQuery([]string{"MATCH (n)", "RETURN n"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", q)

	q, err = readQuery(nil, strings.NewReader("  MATCH (n) RETURN n\n"))
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", q)

	_, err = readQuery(nil, strings.NewReader(" \n"))
	require.ErrorIs(t, err, errNoQuery)
}

func TestPrintTranslation(t *testing.T) {
	t.Parallel()

	tr := translate.New()

	var out, errOut bytes.Buffer

	require.NoError(t, printTranslation(&out, &errOut, tr.Translate("MATCH (a)-->(b) RETURN b"), graphil.Unable, false))
	assert.Equal(t, "MATCH (a)->(b) RETURN b\n", out.String())
	assert.Equal(t, string(graphil.CategoryTranslatable)+"\n", errOut.String())

	out.Reset()
	errOut.Reset()

	require.NoError(t, printTranslation(&out, &errOut, tr.Translate("CREATE (n)"), graphil.Unable, false))
	assert.Equal(t, graphil.Unable+"\n", out.String())
	assert.True(t, strings.HasPrefix(errOut.String(), string(graphil.CategoryNotSupported)+" (unsupported construct): "))

	out.Reset()

	require.NoError(t, printTranslation(&out, &errOut, tr.Translate("MATCH (a)-->(b) RETURN b"), graphil.Unable, true))
	assert.JSONEq(t, `{
		"cypher": "MATCH (a)-->(b) RETURN b",
		"category": "Graph-IL Translatable",
		"gql": "MATCH (a)->(b) RETURN b"
	}`, out.String())
}

func TestWriteLifted(t *testing.T) {
	t.Parallel()

	lifted, err := cypher.NewLifter().LiftDetailed("MATCH (n:Person) RETURN n.name LIMIT 3")
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, writeLifted(&buf, lifted, "yaml"))
	assert.Contains(t, buf.String(), "kind: match")
	assert.Contains(t, buf.String(), "label: Person")
	assert.Contains(t, buf.String(), "limit: 3")

	buf.Reset()

	require.NoError(t, writeLifted(&buf, lifted, "json"))
	assert.Contains(t, buf.String(), `"kind": "return"`)

	require.Error(t, writeLifted(&buf, lifted, "toml"))
}

func TestWriteVerdict(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, writeVerdict(&buf, "gql", &gql.Oracle{}, "MATCH (n) RETURN n"))
	assert.Equal(t, "gql: ok\n", buf.String())

	buf.Reset()

	require.NoError(t, writeVerdict(&buf, "gql", &gql.Oracle{}, "MATCH (a)-[:ORDER]->(b) RETURN b"))
	assert.True(t, strings.HasPrefix(buf.String(), "gql: "))
	assert.NotEqual(t, "gql: ok\n", buf.String())
}

func TestWriteDiagnostics(t *testing.T) {
	t.Parallel()

	result := analysis.NewAnalyzer().Analyze("q.cypher", []byte("RETURN 1;\nMATCH (a)-[:ORDER]->(b) RETURN b"))

	var buf bytes.Buffer
	require.NoError(t, writeDiagnostics(&buf, result))
	assert.Equal(t,
		"q.cypher:2:13: hint: ORDER is a reserved word in GQL and will be back-quoted (reserved-word)\n",
		buf.String())
}
