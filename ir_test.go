package graphil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rlch/graphil"
)

func TestPathPattern_Validate(t *testing.T) {
	t.Parallel()

	node := graphil.NodePattern{Binding: "n"}
	edge := graphil.EdgePattern{Direction: graphil.Right, Hops: graphil.SingleHop}

	tests := []struct {
		name    string
		pattern graphil.PathPattern
		wantErr bool
	}{
		{"single node", graphil.PathPattern{Nodes: []graphil.NodePattern{node}}, false},
		{"chain", graphil.PathPattern{Nodes: []graphil.NodePattern{node, node}, Edges: []graphil.EdgePattern{edge}}, false},
		{"no nodes", graphil.PathPattern{}, true},
		{"dangling edge", graphil.PathPattern{Nodes: []graphil.NodePattern{node}, Edges: []graphil.EdgePattern{edge}}, true},
		{"missing edge", graphil.PathPattern{Nodes: []graphil.NodePattern{node, node}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.pattern.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, graphil.ErrInvalidPattern)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHopRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hops     graphil.HopRange
		variable bool
		exact    bool
		str      string
	}{
		{"single hop", graphil.SingleHop, false, false, ""},
		{"unbounded", graphil.HopRange{Low: -1, High: -1}, false, false, ""},
		{"open upper", graphil.HopRange{Low: 2, High: -1}, true, false, "(2,)"},
		{"open lower", graphil.HopRange{Low: -1, High: 3}, true, false, "(-1,3)"},
		{"range", graphil.HopRange{Low: 1, High: 3}, true, false, "(1,3)"},
		{"exact", graphil.HopRange{Low: 2, High: 2}, true, true, "(2,2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.variable, tt.hops.Variable())
			assert.Equal(t, tt.exact, tt.hops.Exact())
			assert.Equal(t, tt.str, tt.hops.String())
		})
	}
}

func TestComparator_Symbol(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		op := rapid.SampledFrom([]string{"=", "<>", "<", ">", "<=", ">="}).Draw(t, "op")

		c, ok := graphil.ParseComparator(op)
		if !ok {
			t.Fatalf("ParseComparator(%q) not ok", op)
		}

		if got := c.Symbol(); got != op {
			t.Fatalf("Symbol() = %q, want %q", got, op)
		}
	})

	_, ok := graphil.ParseComparator("=~")
	assert.False(t, ok)
	assert.Empty(t, graphil.Comparator("like").Symbol())
}

func TestClause_Kind(t *testing.T) {
	t.Parallel()

	clauses := []graphil.Clause{
		&graphil.MatchClause{},
		&graphil.WhereClause{},
		&graphil.WithClause{},
		&graphil.ReturnClause{},
	}

	kinds := make([]string, len(clauses))
	for i, c := range clauses {
		kinds[i] = c.Kind()
	}

	assert.Equal(t, []string{"match", "where", "with", "return"}, kinds)
}
