package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphil/analysis"
)

func TestRule_DuplicateStatement(t *testing.T) {
	t.Parallel()

	result := analyze(t, "MATCH (n) RETURN n;\nmatch (n)\n  // again\n  return n;")

	d := requireDiagnostic(t, result, "duplicate-statement")
	assert.Equal(t, "duplicate of statement #1", d.Message)
	assert.Equal(t, analysis.SeverityWarning, d.Severity)
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.Equal(t, 4, d.Span.End.Line)
}

func TestRule_DistinctStatements(t *testing.T) {
	t.Parallel()

	result := analyze(t, "MATCH (n) RETURN n; MATCH (m) RETURN m;")

	assertNoDiagnostic(t, result, "duplicate-statement")
}

func TestRule_MissingReturn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"read without return", "MATCH (n) WHERE n.age > 3", true},
		{"unwind without return", "UNWIND [1, 2] AS x", true},
		{"read with return", "MATCH (n) RETURN n", false},
		{"write", "MATCH (n) DETACH DELETE n", false},
		{"set", "MATCH (n) SET n.seen = true", false},
		{"no read", "CREATE (n:Person)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := analyze(t, tt.input)
			if tt.want {
				assertHasDiagnostic(t, result, "missing-return")
			} else {
				assertNoDiagnostic(t, result, "missing-return")
			}
		})
	}
}

func TestRule_ReservedWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		words []string
	}{
		{"relationship type", "MATCH (a)-[:ORDER]->(b) RETURN b", []string{"ORDER"}},
		{"label", "MATCH (n:Path) RETURN n", []string{"Path"}},
		{"property", "MATCH (n) RETURN n.value", []string{"value"}},
		{"several", "MATCH (n:Node)-[:Order]->(m) WHERE m.size > 1 RETURN m", []string{"Order", "size"}},
		{"keywords are not flagged", "MATCH (n) RETURN n ORDER BY n.name LIMIT 1", nil},
		{"dotted function", "RETURN apoc.coll.sum([1])", nil},
		{"plain names", "MATCH (n:Person)-[:KNOWS]->(m) RETURN m.name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := analyze(t, tt.input)

			var words []string

			for _, d := range result.Diagnostics {
				if d.Code == "reserved-word" {
					words = append(words, result.Content[d.Span.Start.Offset:d.Span.End.Offset])
					assert.Equal(t, analysis.SeverityHint, d.Severity)
				}
			}

			assert.Equal(t, tt.words, words)
		})
	}
}

func TestRule_ReservedWord_Span(t *testing.T) {
	t.Parallel()

	result := analyze(t, "RETURN 1;\nMATCH (a)-[:ORDER]->(b) RETURN b")

	d := requireDiagnostic(t, result, "reserved-word")
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.Equal(t, 13, d.Span.Start.Column)
	assert.Equal(t, 18, d.Span.End.Column)
	assert.Contains(t, d.Message, "ORDER")
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)

	for _, rule := range analysis.DefaultRules() {
		assert.NotEmpty(t, rule.Doc, rule.Name)
		assert.NotNil(t, rule.Run, rule.Name)
		assert.False(t, names[rule.Name], "duplicate rule %s", rule.Name)
		names[rule.Name] = true
	}
}

func analyze(t *testing.T, input string) *analysis.AnalyzedFile {
	t.Helper()

	analyzer := analysis.NewAnalyzer()

	return analyzer.Analyze("test.cypher", []byte(input))
}

func requireDiagnostic(t *testing.T, result *analysis.AnalyzedFile, code string) analysis.Diagnostic {
	t.Helper()

	for _, d := range result.Diagnostics {
		if d.Code == code {
			return d
		}
	}

	require.Failf(t, "missing diagnostic", "expected diagnostic %q, got %v", code, result.Diagnostics)

	return analysis.Diagnostic{}
}

func assertHasDiagnostic(t *testing.T, result *analysis.AnalyzedFile, code string) {
	t.Helper()

	for _, d := range result.Diagnostics {
		if d.Code == code {
			return
		}
	}

	t.Errorf("expected diagnostic %q, got:", code)

	for _, d := range result.Diagnostics {
		t.Logf("  %s: %s", d.Code, d.Message)
	}
}

func assertNoDiagnostic(t *testing.T, result *analysis.AnalyzedFile, code string) {
	t.Helper()

	for _, d := range result.Diagnostics {
		if d.Code == code {
			t.Errorf("unexpected diagnostic %q: %s", code, d.Message)
		}
	}
}
