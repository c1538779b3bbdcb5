package main

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/store"
	"github.com/bitfunnel/bitfunnel/term"
)

// defaultAdhocRowCount bounds the synthetic index's adhoc-row space when no
// manifest is given.
const defaultAdhocRowCount = 64

// loadIndexConfig builds a demoIndexConfiguration from manifestPath (via
// store.LocalLoader, so the same snappy/zstd decompression `load` exercises
// applies here too). An empty manifestPath yields a synthetic index whose
// every term resolves through adhoc-row synthesis, so plan/analyze/query
// are runnable with no manifest at all.
func loadIndexConfig(manifestPath string, shards int) (*demoIndexConfiguration, error) {
	if manifestPath == "" {
		return &demoIndexConfiguration{
			table: &demoTermTable{
				byHash:        make(map[term.Hash][]rows.RowId),
				matchAll:      rows.RowId{Rank: 0, Index: 0},
				adhocRowCount: defaultAdhocRowCount,
			},
			numShards: shards,
		}, nil
	}

	dir, name := filepath.Split(manifestPath)
	if dir == "" {
		dir = "."
	}
	loader := store.NewLocalLoader(dir)
	rc, err := loader.Load(context.Background(), name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading manifest %s", manifestPath)
	}
	defer rc.Close()

	table, err := parseManifest(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", manifestPath)
	}
	return &demoIndexConfiguration{table: table, numShards: shards}, nil
}
