package cypher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rlch/graphil"
	"go.uber.org/zap"
)

// SyntaxErrorCode is the Neo4j status code of a query that does not parse.
const SyntaxErrorCode = "Neo.ClientError.Statement.SyntaxError"

const defaultExplainTimeout = 5 * time.Second

// Neo4j checks queries by asking a live Neo4j server to EXPLAIN them.
// When the server cannot be reached it falls back to the grammar oracle.
type Neo4j struct {
	driver   neo4j.DriverWithContext
	db       string
	timeout  time.Duration
	fallback *Oracle
	logger   *zap.Logger
}

// NewNeo4j creates a Neo4j oracle from the given configuration,
// logging through the global zap logger.
func NewNeo4j(cfg graphil.DialectConfig) (graphil.Oracle, error) { //nolint:ireturn // Factory returns interface per Oracle pattern
	return NewNeo4jOracle(cfg, zap.L())
}

// NewNeo4jOracle creates a Neo4j oracle and verifies connectivity.
func NewNeo4jOracle(cfg graphil.DialectConfig, logger *zap.Logger) (*Neo4j, error) {
	if cfg.URI == "" {
		return nil, errors.New("neo4j: connection uri is required")
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	o := &Neo4j{
		driver:   driver,
		timeout:  defaultExplainTimeout,
		fallback: &Oracle{},
		logger:   logger,
	}

	// Apply options from config
	if db, ok := cfg.Options["database"].(string); ok {
		o.db = db
	}

	if raw, ok := cfg.Options["timeout"].(string); ok {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			_ = driver.Close(context.Background())

			return nil, fmt.Errorf("neo4j: invalid timeout %q: %w", raw, err)
		}

		o.timeout = timeout
	}

	// Verify connectivity
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	return o, nil
}

// Dialect returns the dialect identifier.
func (o *Neo4j) Dialect() string {
	return "cypher"
}

// Conforms reports whether the server accepts query. Only a syntax error
// from the server counts as non-conformant.
func (o *Neo4j) Conforms(query string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	err := o.Explain(ctx, query)

	switch {
	case err == nil:
		return true
	case IsSyntaxError(err):
		return false
	case neo4j.IsNeo4jError(err):
		o.logger.Debug("neo4j rejected query for a non-syntax reason", zap.Error(err))

		return true
	default:
		o.logger.Warn("neo4j unavailable, falling back to grammar", zap.Error(err))

		return o.fallback.Conforms(query)
	}
}

// Explain runs EXPLAIN on query in a read session. Nothing is executed.
func (o *Neo4j) Explain(ctx context.Context, query string) error {
	sessionCfg := neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeRead,
	}
	if o.db != "" {
		sessionCfg.DatabaseName = o.db
	}

	session := o.driver.NewSession(ctx, sessionCfg)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, "EXPLAIN "+query, nil)
	if err != nil {
		return err
	}

	_, err = result.Consume(ctx)

	return err
}

// IsSyntaxError reports whether err is a Neo4j syntax error.
func IsSyntaxError(err error) bool {
	var nerr *neo4j.Neo4jError
	if errors.As(err, &nerr) {
		return nerr.Code == SyntaxErrorCode
	}

	return false
}

// Close releases the database connection.
func (o *Neo4j) Close() error {
	if o.driver == nil {
		return nil
	}

	err := o.driver.Close(context.Background())
	if err != nil {
		return fmt.Errorf("neo4j: failed to close driver: %w", err)
	}

	return nil
}

var _ graphil.Oracle = (*Neo4j)(nil)
