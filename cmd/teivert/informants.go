package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/tei"
)

var informantsCommand = &cli.Command{
	Name:  "informants",
	Usage: "generate the standoff informant personography",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "source", Usage: "dump directory, SQLite file or Postgres DSN"},
		&cli.StringFlag{Name: "out", Usage: "output `DIR`"},
	},
	Action: informantsAction,
}

func informantsAction(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if v := cctx.String("out"); v != "" {
		cfg.OutDir = v
	}

	repo, closeRepo, err := newRepository(sourceSpec(cctx, cfg))
	if err != nil {
		return err
	}
	defer closeRepo()

	informants, err := repo.Informants()
	if err != nil {
		return err
	}

	doc := tei.BuildInformantStandoff(informants)

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutDir, cfg.StandoffFile)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := doc.Encode(f); err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "Generated standoff file: %s (%d informants)\n", path, len(informants))
	return nil
}
