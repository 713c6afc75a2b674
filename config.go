package graphil

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the .graphil.yaml configuration file.
type Config struct {
	// Source dialect oracle and its connection
	Source OracleConfig `yaml:"source"`

	// Target dialect oracle
	Target OracleConfig `yaml:"target"`

	// Escape selects how reserved words are back-quoted: "tokens" (default) or "regex".
	Escape string `yaml:"escape,omitempty"`

	// ReservedWords adjusts the target oracle's reserved word list.
	ReservedWords ReservedWordsConfig `yaml:"reserved_words,omitempty"`

	// Cache configures translation memoisation.
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Batch holds defaults for the batch command.
	Batch BatchConfig `yaml:"batch,omitempty"`
}

// OracleConfig names an oracle and how to reach it.
type OracleConfig struct {
	// Oracle name (e.g., "cypher", "neo4j", "gql")
	Oracle string `yaml:"oracle,omitempty"`

	// Connection for oracles backed by a live server
	Connection DialectConfig `yaml:"connection,omitempty"`
}

// ReservedWordsConfig adds to or removes from the reserved word list.
type ReservedWordsConfig struct {
	Extra   []string `yaml:"extra,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// CacheConfig holds memoisation settings.
type CacheConfig struct {
	// TTL of a cached translation. Zero disables the cache.
	TTL time.Duration `yaml:"ttl,omitempty"`
}

// BatchConfig holds settings for the batch command.
type BatchConfig struct {
	// Concurrent translations
	Jobs int `yaml:"jobs,omitempty"`

	// GQL text recorded for untranslatable queries
	Sentinel string `yaml:"sentinel,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".graphil.yaml", ".graphil.yml", "graphil.yaml", "graphil.yml"}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Source: OracleConfig{Oracle: "cypher"},
		Target: OracleConfig{Oracle: "gql"},
		Escape: "tokens",
		Batch: BatchConfig{
			Jobs:     4,
			Sentinel: Unable,
		},
	}
}

// LoadConfig finds and loads the nearest .graphil.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
// Unset fields keep their DefaultConfig values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
