package main

import (
	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/shell"
	"github.com/lapis-corpus/teivert/tagset"
)

var shellCommand = &cli.Command{
	Name:  "shell",
	Usage: "interactive inspection of a relational source",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "source", Usage: "dump directory, SQLite file or Postgres DSN"},
		&cli.StringFlag{Name: "tagset", Usage: "tag declaration `FILE` used as whitelist"},
	},
	Action: shellAction,
}

func shellAction(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if v := cctx.String("tagset"); v != "" {
		cfg.TagsetFile = v
	}

	repo, closeRepo, err := newRepository(sourceSpec(cctx, cfg))
	if err != nil {
		return err
	}
	defer closeRepo()

	whitelist := tagset.Load(cfg.TagsetFile, cctx.App.ErrWriter)

	return shell.NewHandler(repo, whitelist).Run()
}
