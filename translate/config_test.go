package translate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/translate"
)

func TestFromConfig(t *testing.T) {
	t.Parallel()

	tr, err := translate.FromConfig(graphil.DefaultConfig(), nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = tr.Close() })

	got := tr.Translate("MATCH (a)-[:ORDER]->(b) RETURN b")
	assert.Equal(t, graphil.CategoryMusked, got.Category)
	assert.Equal(t, "MATCH (a)-[:`ORDER`]->(b) RETURN b", got.GQL)
}

func TestFromConfig_ReservedWords(t *testing.T) {
	t.Parallel()

	cfg := graphil.DefaultConfig()
	cfg.ReservedWords.Exclude = []string{"order"}
	cfg.ReservedWords.Extra = []string{"knows"}

	tr, err := translate.FromConfig(cfg, nil)
	require.NoError(t, err)

	assert.Contains(t, tr.ReservedWords(), "KNOWS")
	assert.NotContains(t, tr.ReservedWords(), "ORDER")

	// No longer escaped, so the query goes through the lift tier.
	got := tr.Translate("MATCH (a)-[:ORDER]->(b) RETURN b")
	assert.Equal(t, graphil.CategoryTranslatable, got.Category)
	assert.Equal(t, "MATCH (a)-[:`ORDER`]->(b) RETURN b", got.GQL)
}

func TestFromConfig_Cache(t *testing.T) {
	t.Parallel()

	cfg := graphil.DefaultConfig()
	cfg.Cache.TTL = time.Minute

	tr, err := translate.FromConfig(cfg, nil)
	require.NoError(t, err)

	first := tr.Translate("MATCH (a)-->(b) RETURN b")
	second := tr.Translate("MATCH (a)-->(b) RETURN b")
	assert.Equal(t, first.GQL, second.GQL)
	assert.Equal(t, graphil.CategoryTranslatable, second.Category)
}

func TestFromConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*graphil.Config)
		err    error
	}{
		{
			name:   "unknown source",
			modify: func(c *graphil.Config) { c.Source.Oracle = "sql" },
			err:    graphil.ErrUnknownOracle,
		},
		{
			name:   "unknown target",
			modify: func(c *graphil.Config) { c.Target.Oracle = "sql" },
			err:    graphil.ErrUnknownOracle,
		},
		{
			name:   "target without lowerer",
			modify: func(c *graphil.Config) { c.Target.Oracle = "cypher" },
			err:    graphil.ErrUnknownDialect,
		},
		{
			name:   "escape mode",
			modify: func(c *graphil.Config) { c.Escape = "sed" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := graphil.DefaultConfig()
			tt.modify(cfg)

			_, err := translate.FromConfig(cfg, nil)
			require.Error(t, err)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			}
		})
	}
}
