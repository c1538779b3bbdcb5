package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/matcher"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/shard"
)

// runQuery implements the `query` subcommand: run a term-match tree all the
// way through planning, compilation, and interpretation against a demo
// slice, printing every match record in (slice_index, offset) order.
func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	treeFile := fs.String("tree", "-", "path to a term-match tree text file, or \"-\" for stdin")
	manifest := fs.String("manifest", "", "path to a demo term-table manifest (default: synthetic adhoc-only index)")
	sliceFile := fs.String("slice", "", "path to a demo slice data file (default: every row all-ones, capacity 64)")
	resultsCapacity := fs.Int("results-capacity", 4096, "results buffer capacity")
	cfg := DefaultConfig()
	cfg.registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := readTreeText(*treeFile)
	if err != nil {
		return errors.Wrap(err, "reading term tree")
	}

	idxConfig, err := loadIndexConfig(*manifest, 1)
	if err != nil {
		return err
	}

	c, err := compilePipeline(text, cfg, idxConfig)
	if err != nil {
		return err
	}
	defer c.Close()

	sl, err := loadDemoSlice(*sliceFile)
	if err != nil {
		return err
	}

	results := matcher.NewResultsBuffer(*resultsCapacity)
	interp := matcher.New(&c.program, c.planRows, c.allocator)
	if err := interp.Run(rows.ShardID(0), []shard.Slice{sl}, results); err != nil {
		return errors.Wrap(err, "running query")
	}

	for _, rec := range results.Records() {
		fmt.Printf("slice %d offset %d bits %016x\n", rec.SliceIndex, rec.Offset, rec.Bits)
	}
	fmt.Printf("%d match record(s)\n", results.Len())
	return nil
}

func loadDemoSlice(path string) (*demoSlice, error) {
	if path == "" {
		return newDemoSlice(64), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening slice file %s", path)
	}
	defer f.Close()
	return parseSliceFile(f)
}
