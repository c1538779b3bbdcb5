package main

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/bytecode"
	"github.com/bitfunnel/bitfunnel/compiler"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/format"
	"github.com/bitfunnel/bitfunnel/planner"
	"github.com/bitfunnel/bitfunnel/registers"
	"github.com/bitfunnel/bitfunnel/rewrite"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
	"github.com/bitfunnel/bitfunnel/termtable"
	"github.com/bitfunnel/bitfunnel/termtree"
)

// compiled holds every intermediate artifact of one plan/analyze/query
// invocation, so each command can print as much or as little as it needs.
type compiled struct {
	a             *arena.Arena
	termTree      *termtree.Tree
	rowTree       *rowtree.Tree
	rewrittenRoot arena.NodeID
	compileTree   *compiletree.Tree
	compiledRoot  arena.NodeID
	program       bytecode.Program
	planRows      *rows.PlanRows
	allocator     *registers.Allocator
}

// compilePipeline runs the full planning pipeline over treeText against
// idxConfig, using cfg's tunables. It is the one place cmd/bitfunnel wires
// termtree -> planner -> rewrite -> compiler -> registers -> bytecode
// together, shared by plan/analyze/query.
func compilePipeline(treeText string, cfg Config, idxConfig termtable.IndexConfiguration) (*compiled, error) {
	a := arena.New(cfg.ArenaSize)

	tt := termtree.New(a)
	root, err := format.ParseTermTree(tt, treeText)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "parsing term tree")
	}

	conv := planner.NewConverter(idxConfig, a)
	rowRoot, planRows, err := conv.Convert(tt, root)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "converting to row plan")
	}

	rewrittenRoot, err := rewrite.New(conv.RowTree(), cfg.TargetRowCount, cfg.TargetCrossProductTermCount).Rewrite(rowRoot)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "rewriting row tree")
	}

	out := compiletree.New(a)
	compiledRoot, err := compiler.New(conv.RowTree(), out).Compile(rewrittenRoot)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "compiling row tree")
	}

	alloc := registers.New(out, compiledRoot, planRows.RowCount(), uint32(cfg.RegisterBase), uint32(cfg.RegisterCount))
	program := bytecode.Emit(out, compiledRoot, compiler.StartRank(conv.RowTree(), rewrittenRoot))

	return &compiled{
		a:             a,
		termTree:      tt,
		rowTree:       conv.RowTree(),
		rewrittenRoot: rewrittenRoot,
		compileTree:   out,
		compiledRoot:  compiledRoot,
		program:       program,
		planRows:      planRows,
		allocator:     alloc,
	}, nil
}

func (c *compiled) Close() { c.a.Close() }

// readTreeText reads the term-match tree text either from path, or from
// stdin when path is "-".
func readTreeText(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
