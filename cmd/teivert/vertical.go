package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/vertical"
)

var verticalCommand = &cli.Command{
	Name:      "vertical",
	Usage:     "flatten a directory of TEI documents into vertical format",
	ArgsUsage: "<tei_dir> <standoff_file.xml> <output.vert>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "doc-id", Usage: "corpus `ID` for the <doc> envelope"},
	},
	Action: verticalAction,
}

func verticalAction(cctx *cli.Context) error {
	if cctx.NArg() != 3 {
		return fmt.Errorf("vertical needs exactly three arguments: <tei_dir> <standoff_file.xml> <output.vert>")
	}
	teiDir := cctx.Args().Get(0)
	standoffPath := cctx.Args().Get(1)
	outPath := cctx.Args().Get(2)

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	if v := cctx.String("doc-id"); v != "" {
		cfg.DocId = v
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	speakers := vertical.LoadSpeakers(standoffPath, cctx.App.ErrWriter)

	files, err := filepath.Glob(filepath.Join(teiDir, "*.xml"))
	if err != nil {
		return err
	}
	absStandoff, _ := filepath.Abs(standoffPath)
	total := 0
	for _, path := range files {
		if abs, err := filepath.Abs(path); err == nil && abs == absStandoff {
			continue
		}
		total++
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()

	f := vertical.New(out, speakers, cctx.App.ErrWriter)
	f.DocId = cfg.DocId
	err = f.Flatten(teiDir, standoffPath, func(name string) {
		bar.Incr()
	})
	uiprogress.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(cctx.App.Writer, "Wrote %s\n", outPath)
	return nil
}
