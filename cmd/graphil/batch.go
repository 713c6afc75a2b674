package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/graphil/runner"
)

var errNoInput = errors.New("no input file given")

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Translate every query of a JSON or Cypher file",
		ArgsUsage: "<queries.json|queries.cypher>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "file the records are written to (default: stdout)",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "queries translated at once (overrides config)",
			},
			&cli.IntFlag{
				Name:  "max-failures",
				Usage: "stop after this many untranslated queries (0: never)",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: `only translate queries matching an expression, e.g. 'query contains "MATCH"'`,
			},
			&cli.StringFlag{
				Name:  "sentinel",
				Usage: "GQL text recorded for untranslated queries (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "report progress as JSON lines",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "report every query",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit 1 unless every query was translated",
			},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errNoInput
	}

	input := cmd.Args().First()

	queries, err := runner.LoadQueries(input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}

	filter, err := runner.CompileFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	tr, cfg, logger, err := newTranslator(cmd)
	if err != nil {
		return err
	}

	defer func() {
		_ = tr.Close()
		_ = logger.Sync()
	}()

	jobs := cfg.Batch.Jobs
	if n := cmd.Int("jobs"); n > 0 {
		jobs = n
	}

	sentinel := cfg.Batch.Sentinel
	if s := cmd.String("sentinel"); s != "" {
		sentinel = s
	}

	output := cmd.String("output")

	// Progress shares stdout only when the records go to a file.
	progress := io.Writer(os.Stderr)
	if output != "" {
		progress = os.Stdout
	}

	var handler runner.Handler

	switch {
	case cmd.Bool("json"):
		handler = runner.NewFormatHandler(runner.NewJSONFormatter(progress), os.Stderr)
	case cmd.Bool("verbose"):
		handler = runner.NewFormatHandler(runner.NewVerboseFormatter(progress), os.Stderr)
	case output != "" && isTerminal(os.Stdout):
		tui := runner.NewTUIHandler(os.Stdout, os.Stderr)
		tui.SetQueries(input, queries)

		if err := tui.Start(); err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}

		handler = tui
	default:
		// Summary only.
		handler = runner.NewFormatHandler(summaryOnly{runner.NewVerboseFormatter(os.Stderr)}, os.Stderr)
	}

	r := runner.New(
		runner.WithTranslator(tr),
		runner.WithHandler(handler),
		runner.WithJobs(jobs),
		runner.WithMaxFailures(cmd.Int("max-failures")),
		runner.WithFilter(filter),
		runner.WithLogger(logger),
	)

	result, err := r.Run(ctx, input, queries)
	if err != nil {
		return fmt.Errorf("running %s: %w", input, err)
	}

	if summarizer, ok := handler.(interface{ Summary(*runner.Result) error }); ok {
		_ = summarizer.Summary(result)
	}

	records := result.Records(sentinel)

	if output == "" {
		err = runner.WriteRecords(os.Stdout, records)
	} else {
		err = runner.WriteRecordsFile(output, records)
	}

	if err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	logger.Info("Batch",
		zap.String("input", input),
		zap.Int("records", len(records)),
		zap.Int("translated", result.Translated),
	)

	if cmd.Bool("strict") && !result.Ok() {
		return cli.Exit("", 1)
	}

	return nil
}

// summaryOnly drops per-query events and keeps the closing summary.
type summaryOnly struct {
	runner.Summarizer
}

func (summaryOnly) Format(runner.Event, *runner.Result) error {
	return nil
}
