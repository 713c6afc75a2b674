package runner //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Match(t *testing.T) {
	t.Parallel()

	env := NewQueryEnv("queries.json", 4, "MATCH (n:Person) RETURN n")

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty", "", true},
		{"blank", "   ", true},
		{"contains", `query contains "Person"`, true},
		{"not contains", `query contains "KNOWS"`, false},
		{"index", "index >= 4 && index < 10", true},
		{"index out of range", "index < 4", false},
		{"source", `source endsWith ".json"`, true},
		{"length", "length == 25", true},
		{"regex", `query matches "^MATCH"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := CompileFilter(tt.expr)
			require.NoError(t, err)

			got, err := f.Match(env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Nil(t *testing.T) {
	t.Parallel()

	var f *Filter

	keep, err := f.Match(QueryEnv{})
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Empty(t, f.String())
}

func TestCompileFilter_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"index +",      // syntax
		"index + 1",    // not bool
		"unknown == 1", // undefined variable
	} {
		_, err := CompileFilter(src)
		assert.Error(t, err, src)
	}
}

func TestFilter_String(t *testing.T) {
	t.Parallel()

	f, err := CompileFilter("index < 3")
	require.NoError(t, err)
	assert.Equal(t, "index < 3", f.String())
}
