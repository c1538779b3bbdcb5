package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/format"
)

// runAnalyze implements the `analyze` subcommand: everything `plan` prints,
// plus register-allocation and checksum diagnostics.
func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
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
	fmt.Printf("Program checksum: %016x\n", c.program.Checksum())
	fmt.Printf("Start rank: %d\n", c.program.StartRank)

	fmt.Println("Register allocation:")
	for id := 0; id < c.planRows.RowCount(); id++ {
		if c.allocator.IsRegister(uint32(id)) {
			fmt.Printf("  row %d -> register %d\n", id, c.allocator.Register(uint32(id)))
		} else {
			fmt.Printf("  row %d -> (not register-resident)\n", id)
		}
	}
	fmt.Printf("Registers allocated: %d\n", c.allocator.RegistersAllocated())
	return nil
}
