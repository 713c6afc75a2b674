package graphil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphil"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".graphil.yaml")

	err := os.WriteFile(path, []byte(`
source:
  oracle: neo4j
  connection:
    uri: bolt://localhost:7687
    username: neo4j
escape: regex
reserved_words:
  extra: [knows]
  exclude: [order]
cache:
  ttl: 5m
`), 0o600)
	require.NoError(t, err)

	cfg, err := graphil.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j", cfg.Source.Oracle)
	assert.Equal(t, "bolt://localhost:7687", cfg.Source.Connection.URI)
	assert.Equal(t, "regex", cfg.Escape)
	assert.Equal(t, []string{"knows"}, cfg.ReservedWords.Extra)
	assert.Equal(t, []string{"order"}, cfg.ReservedWords.Exclude)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)

	// Unset fields keep their defaults.
	assert.Equal(t, "gql", cfg.Target.Oracle)
	assert.Equal(t, 4, cfg.Batch.Jobs)
	assert.Equal(t, graphil.Unable, cfg.Batch.Sentinel)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := graphil.LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("source: [unclosed"), 0o600))

	_, err = graphil.LoadConfigFile(bad)
	require.Error(t, err)
}

func TestFindConfig_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	want := filepath.Join(root, "graphil.yml")
	require.NoError(t, os.WriteFile(want, []byte("escape: tokens\n"), 0o600))

	got, err := graphil.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cfg, err := graphil.LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "tokens", cfg.Escape)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := graphil.DefaultConfig()
	assert.Equal(t, "cypher", cfg.Source.Oracle)
	assert.Equal(t, "gql", cfg.Target.Oracle)
	assert.Equal(t, "tokens", cfg.Escape)
	assert.Zero(t, cfg.Cache.TTL)
}
