package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rlch/graphil"
	"github.com/rlch/graphil/dialects/cypher"
)

func liftCommand() *cli.Command {
	return &cli.Command{
		Name:      "lift",
		Usage:     "Print the IR a Cypher query lifts to",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: yaml or json",
				Value:   "yaml",
			},
		},
		Action: runLift,
	}
}

// liftedClause tags a clause with its kind.
type liftedClause struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Clause graphil.Clause `json:"clause" yaml:"clause"`
}

type liftOutput struct {
	Clauses      []liftedClause `json:"clauses" yaml:"clauses"`
	Restrictions []string       `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`
}

func runLift(_ context.Context, cmd *cli.Command) error {
	query, err := readQuery(cmd.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	lifted, err := cypher.NewLifter().LiftDetailed(query)
	if err != nil {
		return err
	}

	return writeLifted(os.Stdout, lifted, cmd.String("format"))
}

func writeLifted(w io.Writer, lifted *cypher.Lifted, format string) error {
	out := liftOutput{Clauses: make([]liftedClause, len(lifted.Clauses))}

	for i, c := range lifted.Clauses {
		out.Clauses[i] = liftedClause{Kind: c.Kind(), Clause: c}
	}

	for _, r := range lifted.Restrictions {
		out.Restrictions = append(out.Restrictions, r.Description())
	}

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(out); err != nil {
			return err
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
