package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rlch/graphil/runner"
	"github.com/rlch/graphil/translate"
)

func translateCommand() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Aliases:   []string{"t"},
		Usage:     "Translate one Cypher query",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the {cypher, category, gql} record",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit 1 when the query cannot be translated",
			},
			&cli.StringFlag{
				Name:  "sentinel",
				Usage: "text printed when no translation is produced (overrides config)",
			},
		},
		Action: runTranslate,
	}
}

func runTranslate(_ context.Context, cmd *cli.Command) error {
	query, err := readQuery(cmd.Args().Slice(), os.Stdin)
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

	sentinel := cfg.Batch.Sentinel
	if s := cmd.String("sentinel"); s != "" {
		sentinel = s
	}

	t := tr.Translate(query)

	err = printTranslation(os.Stdout, os.Stderr, t, sentinel, cmd.Bool("json"))
	if err != nil {
		return err
	}

	if cmd.Bool("strict") && !t.Translated() {
		return cli.Exit("", 1)
	}

	return nil
}

// printTranslation writes the GQL text to out and the category to errOut, or
// the whole record to out as JSON.
func printTranslation(out, errOut io.Writer, t translate.Translation, sentinel string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")

		return enc.Encode(runner.Record{
			Cypher:   t.Cypher,
			Category: string(t.Category),
			GQL:      t.Text(sentinel),
		})
	}

	if _, err := fmt.Fprintln(out, t.Text(sentinel)); err != nil {
		return err
	}

	if t.Err != nil {
		_, err := fmt.Fprintf(errOut, "%s (%s): %v\n", t.Category, translate.Reason(t.Err), t.Err)

		return err
	}

	_, err := fmt.Fprintln(errOut, t.Category)

	return err
}
