package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/tagtree"
)

var tagsCommand = &cli.Command{
	Name:  "tags",
	Usage: "generate the annotation-tag feature-structure declaration",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "source", Usage: "dump directory, SQLite file or Postgres DSN"},
		&cli.StringFlag{Name: "out", Usage: "output `DIR`"},
	},
	Action: tagsAction,
}

func tagsAction(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if v := cctx.String("out"); v != "" {
		cfg.OutDir = v
	}

	source := sourceSpec(cctx, cfg)
	repo, closeRepo, err := newRepository(source)
	if err != nil {
		return err
	}
	defer closeRepo()

	tags, err := repo.Tags()
	if err != nil {
		return err
	}

	doc := tagtree.BuildStandoff(tags, source, cctx.App.ErrWriter)

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutDir, filepath.Base(cfg.TagsetFile))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := doc.Encode(f); err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "Generated tag declaration: %s (%d rows)\n", path, len(tags))
	return nil
}
