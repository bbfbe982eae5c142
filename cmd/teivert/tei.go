package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/tagset"
	"github.com/lapis-corpus/teivert/tei"
)

var teiCommand = &cli.Command{
	Name:  "tei",
	Usage: "generate TEI transcript documents",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "source", Usage: "dump directory, SQLite file or Postgres DSN"},
		&cli.StringFlag{Name: "transcript", Usage: "single transcript `NAME` (default: all)"},
		&cli.StringFlag{Name: "out", Usage: "output `DIR`"},
		&cli.StringFlag{Name: "standoff", Usage: "informant standoff `FILENAME` referenced from the header"},
		&cli.StringFlag{Name: "tagset", Usage: "tag declaration `FILE` used as whitelist"},
	},
	Action: teiAction,
}

func teiAction(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if v := cctx.String("out"); v != "" {
		cfg.OutDir = v
	}
	if v := cctx.String("standoff"); v != "" {
		cfg.StandoffFile = v
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

	names := []string{cctx.String("transcript")}
	if names[0] == "" {
		names, err = repo.Transcripts()
		if err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("source has no transcripts")
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(names))
	bar.AppendCompleted()
	bar.PrependElapsed()

	generated := 0
	for _, name := range names {
		err := generateTranscript(repo, name, whitelist, cfg.StandoffFile, cfg.OutDir, cctx)
		if err != nil {
			// Fatal for this transcript only; the batch continues.
			fmt.Fprintf(cctx.App.ErrWriter, "teivert: %v\n", err)
		} else {
			generated++
		}
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(cctx.App.Writer, "Generated %d of %d transcript(s) into %s\n", generated, len(names), cfg.OutDir)
	return nil
}

func generateTranscript(repo storage.CorpusRepository, name string, whitelist tagset.Set, standoffFile, outDir string, cctx *cli.Context) error {
	tokens, err := repo.Tokens(name)
	if err != nil {
		return fmt.Errorf("transcript %s: %w", name, err)
	}

	tokensets, err := repo.Tokensets(storage.TokensetIds(tokens))
	if err != nil {
		return fmt.Errorf("transcript %s: tokensets: %w", name, err)
	}

	doc, err := tei.Assemble(name, tokens, tokensets, tei.AssembleOptions{
		StandoffFile: standoffFile,
		Whitelist:    whitelist,
		Diag:         cctx.App.ErrWriter,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, fmt.Sprintf("transcript_%s.xml", name))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("transcript %s: %w", name, err)
	}
	defer f.Close()

	return doc.Encode(f)
}
