// Command graphil-lsp is a Language Server Protocol server that shows how
// Cypher queries translate into ISO GQL.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/lsp"
	"github.com/rlch/graphil/translate"

	// Register dialects.
	_ "github.com/rlch/graphil/dialects/cypher"
	_ "github.com/rlch/graphil/dialects/gql"
)

func main() {
	// Set up logging to stderr (stdout is for LSP communication)
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// GRAPHIL_LOG_LEVEL=debug for debugging
	if level, err := zapcore.ParseLevel(os.Getenv("GRAPHIL_LOG_LEVEL")); err == nil {
		config.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	defer func() {
		_ = logger.Sync()
	}()

	zap.ReplaceGlobals(logger)

	logger.Info("Starting graphil-lsp server")

	translator, err := loadTranslator(logger)
	if err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	defer func() {
		_ = translator.Close()
	}()

	err = run(context.Background(), logger, translator, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

// loadTranslator builds the translator from the nearest config file, or the
// defaults when there is none.
func loadTranslator(logger *zap.Logger) (*translate.Translator, error) {
	cfg, err := graphil.LoadConfig(".")
	if errors.Is(err, graphil.ErrConfigNotFound) {
		cfg, err = graphil.DefaultConfig(), nil
	}

	if err != nil {
		return nil, err
	}

	return translate.FromConfig(cfg, logger)
}

func run(ctx context.Context, logger *zap.Logger, translator lsp.Translator, in io.Reader, out io.Writer) error {
	// Create a JSON-RPC stream connection over stdio
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	// Create a client to send notifications to the editor
	client := protocol.ClientDispatcher(conn, logger)

	server := lsp.NewServer(client, logger, translator)

	conn.Go(ctx, protocol.ServerHandler(server, nil))

	// Wait for the connection to close
	<-conn.Done()

	return conn.Err()
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
