package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/format"
)

// runPlan implements the `plan` subcommand: parse a term-match tree, run it
// through the full planning pipeline, and print the rewritten row tree,
// compile tree, PlanRows table, and emitted bytecode.
func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	treeFile := fs.String("tree", "-", "path to a term-match tree text file, or \"-\" for stdin")
	manifest := fs.String("manifest", "", "path to a demo term-table manifest (default: synthetic adhoc-only index)")
	shards := fs.Int("shards", 1, "number of shards in the demo index")
	cfg := DefaultConfig()
	cfg.registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := readTreeText(*treeFile)
	if err != nil {
		return errors.Wrap(err, "reading term tree")
	}

	idxConfig, err := loadIndexConfig(*manifest, *shards)
	if err != nil {
		return err
	}

	c, err := compilePipeline(text, cfg, idxConfig)
	if err != nil {
		return err
	}
	defer c.Close()

	fmt.Println("Rewritten row tree:")
	fmt.Println(format.RowTree(c.rowTree, c.rewrittenRoot))
	fmt.Println("Compile tree:")
	fmt.Println(format.CompileTree(c.compileTree, c.compiledRoot))
	fmt.Println("PlanRows:")
	fmt.Print(format.PlanRows(c.planRows))
	fmt.Println("Program:")
	fmt.Print(format.Bytecode(&c.program))
	return nil
}
