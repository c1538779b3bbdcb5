package rewrite

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
)

// Rewriter rewrites a rowtree.Tree into the shape package compiler
// expects.
type Rewriter struct {
	tree *rowtree.Tree

	targetRowCount              int
	targetCrossProductTermCount int
}

// New creates a Rewriter over tree. targetRowCount caps how many rows any
// root-to-leaf path references before rewriting stops;
// targetCrossProductTermCount soft-caps OR cross-product expansion.
func New(tree *rowtree.Tree, targetRowCount, targetCrossProductTermCount int) *Rewriter {
	return &Rewriter{
		tree:                        tree,
		targetRowCount:              targetRowCount,
		targetCrossProductTermCount: targetCrossProductTermCount,
	}
}

// Rewrite rewrites the tree rooted at root.
func (rw *Rewriter) Rewrite(root arena.NodeID) (arena.NodeID, error) {
	return rw.buildCompileTree(root, rows.MaxRank, 0)
}

// buildCompileTree rewrites the subtree rooted at id. parentRank bounds
// which rows are "in order" at this point; rowsSoFar is the number of
// distinct rows already accounted for on this root-to-leaf path, and once
// it reaches targetRowCount the remainder of the tree is left verbatim.
func (rw *Rewriter) buildCompileTree(id arena.NodeID, parentRank rows.Rank, rowsSoFar int) (arena.NodeID, error) {
	if rowsSoFar >= rw.targetRowCount {
		return id, nil
	}

	n := rw.tree.Node(id)
	switch n.Kind {
	case rowtree.Row:
		return id, nil

	case rowtree.Not:
		rankedUp, err := rw.rankUpToRankZero(n.Child())
		if err != nil {
			return arena.InvalidNodeID, err
		}
		b := rowtree.NewBuilder(rw.tree, rowtree.Not)
		if err := b.AddChild(rankedUp); err != nil {
			return arena.InvalidNodeID, err
		}
		out, _, err := b.Complete()
		return out, err

	case rowtree.Or:
		p := newPartition(rw.tree, rw, parentRank)
		if err := p.addOr(id); err != nil {
			return arena.InvalidNodeID, err
		}
		return p.finish(rowsSoFar)

	case rowtree.And:
		p := newPartition(rw.tree, rw, parentRank)
		for _, child := range rowtree.FlattenAnd(rw.tree, id) {
			if err := p.add(child); err != nil {
				return arena.InvalidNodeID, err
			}
		}
		return p.finish(rowsSoFar)

	default:
		panic("rewrite: unreachable row node kind")
	}
}

// rankUpToRankZero walks the subtree rooted at id, marking every Row of
// non-zero rank OutOfOrder. The mark keeps the row out of the
// rank-descending chain and out of the program's start rank; the physical
// promotion to rank 0 happens in the interpreter, which reads a marked
// row through its rank-up path (see the package doc).
func (rw *Rewriter) rankUpToRankZero(id arena.NodeID) (arena.NodeID, error) {
	n := rw.tree.Node(id)
	switch n.Kind {
	case rowtree.Row:
		if n.Row.Rank == 0 {
			return id, nil
		}
		return rowtree.NewOutOfOrderRow(rw.tree, n.Row)

	case rowtree.Not:
		child, err := rw.rankUpToRankZero(n.Child())
		if err != nil {
			return arena.InvalidNodeID, err
		}
		b := rowtree.NewBuilder(rw.tree, rowtree.Not)
		if err := b.AddChild(child); err != nil {
			return arena.InvalidNodeID, err
		}
		out, _, err := b.Complete()
		return out, err

	case rowtree.And, rowtree.Or:
		b := rowtree.NewBuilder(rw.tree, n.Kind)
		for _, c := range n.Children() {
			rankedUp, err := rw.rankUpToRankZero(c)
			if err != nil {
				return arena.InvalidNodeID, err
			}
			if err := b.AddChild(rankedUp); err != nil {
				return arena.InvalidNodeID, err
			}
		}
		out, _, err := b.Complete()
		return out, err

	default:
		panic("rewrite: unreachable row node kind")
	}
}
