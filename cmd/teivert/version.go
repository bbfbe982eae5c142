package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "print build information",
	Action: func(cctx *cli.Context) error {
		_, err := fmt.Fprintf(cctx.App.Writer, "teivert version %s (commit: %s)\n", BuildTag, BuildCommit)
		return err
	},
}
