package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/storage/filesystem"
	"github.com/lapis-corpus/teivert/storage/sqlite/zombiezen"
)

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "import a query-dump directory into a SQLite snapshot",
	ArgsUsage: "<dump_dir> <snapshot.db>",
	Action:    importAction,
}

func importAction(cctx *cli.Context) error {
	if cctx.NArg() != 2 {
		return fmt.Errorf("import needs exactly two arguments: <dump_dir> <snapshot.db>")
	}

	src, err := filesystem.NewStore(cctx.Args().Get(0))
	if err != nil {
		return err
	}

	pool, err := zombiezen.NewPool(cctx.Args().Get(1))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreateSchema(pool, zombiezen.SchemaFile); err != nil {
		return fmt.Errorf("failed to setup snapshot tables: %w", err)
	}
	dst := zombiezen.NewStore(pool)

	names, err := src.Transcripts()
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(names))
	bar.AppendCompleted()
	bar.PrependElapsed()

	var tokensetIds []int
	imported := 0
	for _, name := range names {
		tokens, err := src.Tokens(name)
		if err != nil {
			fmt.Fprintf(cctx.App.ErrWriter, "teivert: transcript %s: %v\n", name, err)
			bar.Incr()
			continue
		}
		if err := dst.WriteTokens(name, tokens); err != nil {
			return fmt.Errorf("transcript %s: %w", name, err)
		}
		tokensetIds = append(tokensetIds, storage.TokensetIds(tokens)...)
		imported++
		bar.Incr()
	}
	uiprogress.Stop()

	sets, err := src.Tokensets(tokensetIds)
	if err != nil {
		return err
	}
	if err := dst.WriteTokensets(sets); err != nil {
		return err
	}

	informants, err := src.Informants()
	if err != nil {
		return err
	}
	if err := dst.WriteInformants(informants); err != nil {
		return err
	}

	// A dump without the tag hierarchy is still importable.
	if tags, err := src.Tags(); err == nil {
		if err := dst.WriteTags(tags); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cctx.App.ErrWriter, "teivert: skipping tag hierarchy: %v\n", err)
	}

	fmt.Fprintf(cctx.App.Writer, "Imported %d of %d transcript(s) into %s\n", imported, len(names), cctx.Args().Get(1))
	return nil
}
