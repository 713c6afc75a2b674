package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rlch/graphil/analysis"
)

var errNoFiles = errors.New("no files given")

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Report problems in Cypher scripts that affect their translation",
		ArgsUsage: "<file>...",
		Action:    runLint,
	}
}

func runLint(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errNoFiles
	}

	analyzer := analysis.NewAnalyzer()

	var problems int

	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided CLI argument
		if err != nil {
			return err
		}

		result := analyzer.Analyze(path, content)

		err = writeDiagnostics(os.Stdout, result)
		if err != nil {
			return err
		}

		for _, d := range result.Diagnostics {
			if d.Severity <= analysis.SeverityWarning {
				problems++
			}
		}
	}

	if problems > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

// writeDiagnostics prints diagnostics as path:line:col: severity: message (code).
func writeDiagnostics(w io.Writer, result *analysis.AnalyzedFile) error {
	for _, d := range result.Diagnostics {
		_, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n",
			result.Path, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message, d.Code)
		if err != nil {
			return err
		}
	}

	return nil
}
