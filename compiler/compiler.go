package compiler

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
)

// Compiler lowers a rewritten rowtree.Tree into a compiletree.Tree.
type Compiler struct {
	in  *rowtree.Tree
	out *compiletree.Tree
}

// New creates a Compiler reading from in and emitting into out.
func New(in *rowtree.Tree, out *compiletree.Tree) *Compiler {
	return &Compiler{in: in, out: out}
}

// Compile lowers the tree rooted at root, which must already have been
// produced by package rewrite. The root always starts with first=true: no
// row has been loaded yet, so the initial rank is immaterial (it is only
// ever consulted once a row has been loaded) and is passed as 0.
func (c *Compiler) Compile(root arena.NodeID) (arena.NodeID, error) {
	return c.compileSeq(rowtree.FlattenAnd(c.in, root), 0, true, nil)
}

// compileSeq compiles items — a flat AND sequence — left to right.
//
// rank and first are two independent facts about the path so far: first is
// whether a row has been loaded anywhere on this path yet (it alone
// decides LoadRowJz vs. AndRowJz), and rank is the offset granularity the
// vm is known to be at once first becomes false (it decides whether a
// RankDown must bridge to the next row actually read). Splitting them
// matters at an OR fork: every branch executes under the *same* physical
// vm offset, so a branch whose own rows are all lower-rank than a sibling
// branch's still needs a
// RankDown bridging it down from the fork's shared starting rank, even
// though — considered alone — it would look like "the first row on this
// path" and need no bridge at all. See compileOr.
//
// residue accumulates NOT subtrees encountered along the way: they are
// not part of the rank-down chain itself, and are instead ANDed together
// and attached as the optional child of the terminal Report.
func (c *Compiler) compileSeq(items []arena.NodeID, rank rows.Rank, first bool, residue []arena.NodeID) (arena.NodeID, error) {
	if len(items) == 0 {
		return c.endOfPath(rank, first, residue)
	}
	return c.compileItem(items[0], items[1:], rank, first, residue)
}

// endOfPath wraps the end of a root-to-leaf path in Report, bridging down
// to rank 0 first if the path is still above rank 0, and folding any
// accumulated NOT residue into Report's optional child.
func (c *Compiler) endOfPath(rank rows.Rank, first bool, residue []arena.NodeID) (arena.NodeID, error) {
	reportChild := arena.InvalidNodeID
	if len(residue) > 0 {
		var err error
		reportChild, err = c.foldRankZero(residue, compiletree.NewAndTree)
		if err != nil {
			return arena.InvalidNodeID, err
		}
	}
	report, err := compiletree.NewReport(c.out, reportChild)
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if !first && rank > 0 {
		return c.bridge(rank, report)
	}
	return report, nil
}

func (c *Compiler) compileItem(item arena.NodeID, rest []arena.NodeID, rank rows.Rank, first bool, residue []arena.NodeID) (arena.NodeID, error) {
	n := c.in.Node(item)
	switch n.Kind {
	case rowtree.Row:
		return c.compileRow(n, rest, rank, first, residue)

	case rowtree.Or:
		return c.compileOr(n, rest, rank, first, residue)

	case rowtree.Not:
		// NOT subtrees are evaluated at rank 0: package rewrite marks their
		// non-rank-0 rows so the interpreter ranks them up at read time, and
		// the whole subtree is deferred to the terminal Report rather than
		// spliced into the rank-down chain.
		return c.compileSeq(rest, rank, first, append(residue, item))

	case rowtree.And:
		panic("compiler: unflattened And reached compileItem")

	default:
		panic("compiler: unreachable row node kind")
	}
}

// compileRow handles one Row item: first row, same rank, lower rank
// (bridge with RankDown), or out of order.
func (c *Compiler) compileRow(n *rowtree.Node, rest []arena.NodeID, rank rows.Rank, first bool, residue []arena.NodeID) (arena.NodeID, error) {
	row := n.Row
	r := row.Rank

	if n.OutOfOrder || (!first && r > rank) {
		// Out of order: emit AndRowJz (or LoadRowJz if this is the very
		// first row on the path) without further rank change.
		child, err := c.compileSeq(rest, rank, false, residue)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if first {
			return compiletree.NewLoadRowJz(c.out, row, child)
		}
		return compiletree.NewAndRowJz(c.out, row, child)
	}

	if first {
		child, err := c.compileSeq(rest, r, false, residue)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		return compiletree.NewLoadRowJz(c.out, row, child)
	}

	if r == rank {
		child, err := c.compileSeq(rest, r, false, residue)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		return compiletree.NewAndRowJz(c.out, row, child)
	}

	// r < rank: bridge the rank gap with RankDowns before this row.
	child, err := c.compileSeq(rest, r, false, residue)
	if err != nil {
		return arena.InvalidNodeID, err
	}
	andRowJz, err := compiletree.NewAndRowJz(c.out, row, child)
	if err != nil {
		return arena.InvalidNodeID, err
	}
	return c.bridge(rank-r, andRowJz)
}

// bridge wraps child in delta nested single-rank RankDown nodes. One
// RankDown's body runs exactly twice (the second half via
// IncrementOffset), so a single node descending several ranks at once
// would visit only 2 of the 2^delta finer offsets a coarser block spans;
// nesting one level per rank visits all of them.
func (c *Compiler) bridge(delta rows.Rank, child arena.NodeID) (arena.NodeID, error) {
	var err error
	for i := rows.Rank(0); i < delta; i++ {
		child, err = compiletree.NewRankDown(c.out, 1, child)
		if err != nil {
			return arena.InvalidNodeID, err
		}
	}
	return child, nil
}

// compileOr distributes rest and residue into every branch of an OR node:
// each branch must independently run to completion, since each ends in its
// own Report.
//
// When first is true, the branches fork before any row has been loaded, so
// there is no established rank yet to inherit — but they all still share
// the one physical vm offset the program was started with, which is set
// by the program's start rank (bytecode.Program.StartRank, computed by
// StartRank below). If that rank lives in one branch only, every other
// branch must be prefixed with explicit RankDowns bridging it down from
// that shared rank before its own rows are read, or it would read its
// rank-0 (or otherwise lower-rank) rows at the coarser offset the other
// branch established, silently skipping most documents. When first is
// false, a rank has already been established by a row above the OR, and
// every branch simply inherits it, exactly as before.
func (c *Compiler) compileOr(n *rowtree.Node, rest []arena.NodeID, rank rows.Rank, first bool, residue []arena.NodeID) (arena.NodeID, error) {
	branches := n.Children()

	target := rank
	branchRanks := make([]rows.Rank, len(branches))
	if first {
		for i, b := range branches {
			branchRanks[i] = StartRank(c.in, b)
			if branchRanks[i] > target {
				target = branchRanks[i]
			}
		}
	}

	compiled := make([]arena.NodeID, 0, len(branches))
	for i, b := range branches {
		sub := append(rowtree.FlattenAnd(c.in, b), rest...)
		branchRank := rank
		if first {
			branchRank = branchRanks[i]
		}
		id, err := c.compileSeq(sub, branchRank, first, residue)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if first && branchRank < target {
			id, err = c.bridge(target-branchRank, id)
			if err != nil {
				return arena.InvalidNodeID, err
			}
		}
		compiled = append(compiled, id)
	}
	acc := compiled[0]
	for _, id := range compiled[1:] {
		var err error
		acc, err = compiletree.NewOr(c.out, acc, id)
		if err != nil {
			return arena.InvalidNodeID, err
		}
	}
	return acc, nil
}

// StartRank returns the offset granularity the compiled program for the
// subtree rooted at id expects to start at: the highest rank among its
// in-order rows. Rows inside a Not subtree and rows marked out-of-order
// are both excluded — the interpreter reads those through its rank-up path
// at whatever granularity is current (see matcher's loadRow), so they
// never drive how coarse the outer offset loop starts or how far an OR
// branch needs to be bridged.
func StartRank(tree *rowtree.Tree, id arena.NodeID) rows.Rank {
	if id == arena.InvalidNodeID {
		return 0
	}
	n := tree.Node(id)
	switch n.Kind {
	case rowtree.Row:
		if n.OutOfOrder {
			return 0
		}
		return n.Row.Rank

	case rowtree.Not:
		return 0

	case rowtree.And, rowtree.Or:
		var max rows.Rank
		for _, c := range n.Children() {
			if m := StartRank(tree, c); m > max {
				max = m
			}
		}
		return max

	default:
		return 0
	}
}

// compileRankZero lowers a subtree that must be evaluated entirely at rank
// 0 (the contents of a rewritten NOT node) into the rank-zero CompileNode
// layer: AndTree, LoadRow, Not, OrTree.
func (c *Compiler) compileRankZero(id arena.NodeID) (arena.NodeID, error) {
	n := c.in.Node(id)
	switch n.Kind {
	case rowtree.Row:
		return compiletree.NewLoadRow(c.out, n.Row)

	case rowtree.Not:
		child, err := c.compileRankZero(n.Child())
		if err != nil {
			return arena.InvalidNodeID, err
		}
		return compiletree.NewNot(c.out, child)

	case rowtree.And:
		return c.foldRankZero(rowtree.FlattenAnd(c.in, id), compiletree.NewAndTree)

	case rowtree.Or:
		ids := make([]arena.NodeID, len(n.Children()))
		copy(ids, n.Children())
		return c.foldRankZero(ids, compiletree.NewOrTree)

	default:
		panic("compiler: unreachable row node kind")
	}
}

// foldRankZero compiles every id to a rank-zero CompileNode and folds the
// results together with combine (AndTree or OrTree).
func (c *Compiler) foldRankZero(ids []arena.NodeID, combine func(*compiletree.Tree, arena.NodeID, arena.NodeID) (arena.NodeID, error)) (arena.NodeID, error) {
	compiled := make([]arena.NodeID, 0, len(ids))
	for _, id := range ids {
		child, err := c.compileRankZero(id)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		compiled = append(compiled, child)
	}
	acc := compiled[0]
	for _, id := range compiled[1:] {
		var err error
		acc, err = combine(c.out, acc, id)
		if err != nil {
			return arena.InvalidNodeID, err
		}
	}
	return acc, nil
}
