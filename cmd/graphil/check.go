package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rlch/graphil"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report whether a query conforms to each oracle",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "oracle",
				Usage: "oracles to ask (default: the configured source and target)",
			},
		},
		Action: runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	query, err := readQuery(cmd.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.String("log-level"))
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := cmd.StringSlice("oracle")
	if len(names) == 0 {
		names = []string{cfg.Source.Oracle, cfg.Target.Oracle}
	}

	for _, name := range names {
		conn := graphil.DialectConfig{}

		switch name {
		case cfg.Source.Oracle:
			conn = cfg.Source.Connection
		case cfg.Target.Oracle:
			conn = cfg.Target.Connection
		}

		oracle, err := graphil.NewOracle(name, conn)
		if err != nil {
			return err
		}

		err = writeVerdict(os.Stdout, name, oracle, query)

		if c, ok := oracle.(io.Closer); ok {
			_ = c.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// checker is implemented by oracles that can explain a rejection.
type checker interface {
	Check(query string) error
}

func writeVerdict(w io.Writer, name string, oracle graphil.Oracle, query string) error {
	if oracle.Conforms(query) {
		_, err := fmt.Fprintf(w, "%s: ok\n", name)

		return err
	}

	if c, ok := oracle.(checker); ok {
		if err := c.Check(query); err != nil {
			_, werr := fmt.Fprintf(w, "%s: %v\n", name, err)

			return werr
		}
	}

	_, err := fmt.Fprintf(w, "%s: rejected\n", name)

	return err
}
