package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Build information, set via -ldflags.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func main() {
	app := &cli.App{
		Name:  "teivert",
		Usage: "build TEI documents from corpus data and flatten them to vertical format",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML configuration `FILE`",
			},
		},
		Commands: []*cli.Command{
			teiCommand,
			informantsCommand,
			tagsCommand,
			verticalCommand,
			importCommand,
			shellCommand,
			versionCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "teivert: %v\n", err)
		os.Exit(1)
	}
}
