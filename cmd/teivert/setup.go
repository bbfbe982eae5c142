package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lapis-corpus/teivert/config"
	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/storage/filesystem"
	"github.com/lapis-corpus/teivert/storage/postgres"
	"github.com/lapis-corpus/teivert/storage/sqlite/zombiezen"
)

func loadConfig(cctx *cli.Context) (*config.Root, error) {
	return config.Load(cctx.String("config"))
}

// newRepository picks the backend for a source string: a Postgres DSN, a
// directory of query dumps, or a SQLite snapshot file. The returned closer
// releases whatever the backend holds open.
func newRepository(source string) (storage.CorpusRepository, func() error, error) {
	if source == "" {
		return nil, nil, fmt.Errorf("no source configured (use --source or a config file)")
	}

	if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") || strings.Contains(source, "=") {
		store, err := postgres.Open(source)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, nil, fmt.Errorf("source not found: %s", source)
	}

	if info.IsDir() {
		store, err := filesystem.NewStore(source)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}

	pool, err := zombiezen.NewPool(source)
	if err != nil {
		return nil, nil, err
	}
	return zombiezen.NewStore(pool), pool.Close, nil
}

// sourceSpec resolves the source from the flag, falling back to the config.
func sourceSpec(cctx *cli.Context, cfg *config.Root) string {
	if s := cctx.String("source"); s != "" {
		return s
	}
	switch {
	case cfg.Source.Postgres != "":
		return cfg.Source.Postgres
	case cfg.Source.SQLite != "":
		return cfg.Source.SQLite
	}
	return cfg.Source.Dir
}
