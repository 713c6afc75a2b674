package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/translate"

	// Register dialects.
	_ "github.com/rlch/graphil/dialects/cypher"
	_ "github.com/rlch/graphil/dialects/gql"
)

var errNoQuery = errors.New("no query given (pass it as an argument or on stdin)")

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (default: nearest .graphil.yaml)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, warn, error",
			Value: "warn",
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "source oracle: cypher or neo4j (overrides config)",
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "target oracle (overrides config)",
		},
		&cli.StringFlag{
			Name:  "escape",
			Usage: "reserved word escaping: tokens or regex (overrides config)",
		},
		&cli.StringFlag{
			Name:    "uri",
			Usage:   "neo4j connection URI",
			Sources: cli.EnvVars("GRAPHIL_URI"),
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "neo4j username",
			Sources: cli.EnvVars("GRAPHIL_USER"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "neo4j password",
			Sources: cli.EnvVars("GRAPHIL_PASS"),
		},
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cli.Command) (*graphil.Config, error) {
	var (
		cfg *graphil.Config
		err error
	)

	if path := cmd.String("config"); path != "" {
		cfg, err = graphil.LoadConfigFile(path)
	} else {
		cfg, err = graphil.LoadConfig(".")
		if errors.Is(err, graphil.ErrConfigNotFound) {
			cfg, err = graphil.DefaultConfig(), nil
		}
	}

	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if s := cmd.String("source"); s != "" {
		cfg.Source.Oracle = s
	}

	if s := cmd.String("target"); s != "" {
		cfg.Target.Oracle = s
	}

	if s := cmd.String("escape"); s != "" {
		cfg.Escape = s
	}

	conn := &cfg.Source.Connection

	if s := cmd.String("uri"); s != "" {
		conn.URI = s
	}

	if s := cmd.String("username"); s != "" {
		conn.Username = s
	}

	if s := cmd.String("password"); s != "" {
		conn.Password = s
	}

	return cfg, nil
}

// newLogger builds a development logger writing to stderr and installs it
// as the global logger.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)

	return logger, nil
}

// newTranslator loads the config and builds a translator from it.
func newTranslator(cmd *cli.Command) (*translate.Translator, *graphil.Config, *zap.Logger, error) {
	logger, err := newLogger(cmd.String("log-level"))
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	tr, err := translate.FromConfig(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return tr, cfg, logger, nil
}

// readQuery joins args, or reads stdin when there are none.
func readQuery(args []string, stdin io.Reader) (string, error) {
	query := strings.Join(args, " ")

	if query == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}

		query = string(data)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", errNoQuery
	}

	return query, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
