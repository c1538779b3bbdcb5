package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/store"
)

// runLoad implements the `load` subcommand: load a demo manifest through
// store.LocalLoader (exercising its snappy/zstd decompression) and report
// what it resolved, without running any query against it.
func runLoad(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("load: usage: bitfunnel load <manifest-path>")
	}
	path := fs.Arg(0)

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	loader := store.NewLocalLoader(dir)
	rc, err := loader.Load(context.Background(), name)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	defer rc.Close()

	table, err := parseManifest(rc)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	fmt.Printf("loaded %s: %d explicit terms, match-all row %s, adhoc row count %d\n",
		path, len(table.byHash), table.matchAll, table.adhocRowCount)
	return nil
}
