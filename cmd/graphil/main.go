// Package main provides the graphil CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "graphil",
		Version: version,
		Usage:   "Translate openCypher queries into ISO GQL",
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			translateCommand(),
			batchCommand(),
			liftCommand(),
			checkCommand(),
			lintCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
