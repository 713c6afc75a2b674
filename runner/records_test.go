package runner //nolint:testpackage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphil"
)

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := WriteRecords(&buf, []Record{{
		Cypher:   "MATCH (a)-->(b) RETURN b",
		Category: string(graphil.CategoryTranslatable),
		GQL:      "MATCH (a)->(b) RETURN b",
	}})
	require.NoError(t, err)

	want := `[
    {
        "cypher": "MATCH (a)-->(b) RETURN b",
        "category": "Graph-IL Translatable",
        "gql": "MATCH (a)->(b) RETURN b"
    }
]
`
	assert.Equal(t, want, buf.String())
}

func TestWriteRecords_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseQueriesJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"strings", `["MATCH (n) RETURN n", "RETURN 1"]`, []string{"MATCH (n) RETURN n", "RETURN 1"}},
		{"records", `[{"cypher": "MATCH (n) RETURN n", "category": "x", "gql": "y"}]`, []string{"MATCH (n) RETURN n"}},
		{"mixed", `["RETURN 1", {"cypher": "RETURN 2"}]`, []string{"RETURN 1", "RETURN 2"}},
		{"empty", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQueriesJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueriesJSON_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`{"cypher": "x"}`, `[1]`, `not json`} {
		_, err := ParseQueriesJSON([]byte(input))
		require.ErrorIs(t, err, ErrUnknownInput, input)
	}
}

func TestParseQueriesScript(t *testing.T) {
	t.Parallel()

	script := `MATCH (n) RETURN n;
// a comment; with a semicolon
MATCH (n) WHERE n.name = 'a;b' RETURN n;

;`

	got, err := ParseQueriesScript(script)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"MATCH (n) RETURN n",
		"MATCH (n) WHERE n.name = 'a;b' RETURN n",
	}, got)
}

func TestLoadQueries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "queries.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["RETURN 1"]`), 0o600))

	scriptPath := filepath.Join(dir, "queries.cypher")
	require.NoError(t, os.WriteFile(scriptPath, []byte("RETURN 1;\nRETURN 2;"), 0o600))

	got, err := LoadQueries(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"RETURN 1"}, got)

	got, err = LoadQueries(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"RETURN 1", "RETURN 2"}, got)

	_, err = LoadQueries(filepath.Join(dir, "queries.csv"))
	require.Error(t, err)

	csvPath := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x"), 0o600))

	_, err = LoadQueries(csvPath)
	require.ErrorIs(t, err, ErrUnknownInput)
}

func TestWriteRecordsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteRecordsFile(path, []Record{{Cypher: "x", Category: "c", GQL: graphil.Unable}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := ParseQueriesJSON(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}
