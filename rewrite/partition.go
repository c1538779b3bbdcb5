package rewrite

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
)

// partition divides the children of an AND-subtree into four buckets:
// per-rank row lists, rank-0 rows, at most one OR subtree, and everything
// else (NOT subtrees, out-of-order rows, and OR subtrees that do not fit
// the cross-product budget).
type partition struct {
	tree *rowtree.Tree
	rw   *Rewriter

	parentRank rows.Rank // ceiling inherited from the enclosing partition.
	minRank    rows.Rank // lowest non-zero rank seen; becomes the child parentRank.

	rankRows  [rows.MaxRank + 1][]arena.NodeID // index 1..MaxRank.
	rank0Rows []arena.NodeID

	orSet            bool
	orNode           arena.NodeID
	crossProductSize int

	otherChildren []arena.NodeID
}

func newPartition(tree *rowtree.Tree, rw *Rewriter, parentRank rows.Rank) *partition {
	return &partition{
		tree:       tree,
		rw:         rw,
		parentRank: parentRank,
		minRank:    rows.MaxRank,
	}
}

// add dispatches one AND child into the appropriate bucket.
func (p *partition) add(child arena.NodeID) error {
	n := p.tree.Node(child)
	switch n.Kind {
	case rowtree.Row:
		return p.addRow(child, n.Row)

	case rowtree.Or:
		return p.addOr(child)

	case rowtree.Not:
		rankedUp, err := p.rw.rankUpToRankZero(n.Child())
		if err != nil {
			return err
		}
		b := rowtree.NewBuilder(p.tree, rowtree.Not)
		if err := b.AddChild(rankedUp); err != nil {
			return err
		}
		id, _, err := b.Complete()
		if err != nil {
			return err
		}
		p.otherChildren = append(p.otherChildren, id)
		return nil

	case rowtree.And:
		// flattenAnd already expands nested Ands before add is called;
		// reaching this case means the caller didn't flatten, which is a
		// bug in this package, not a malformed input tree.
		panic("rewrite: unflattened And reached partition.add")

	default:
		panic("rewrite: unreachable row node kind")
	}
}

func (p *partition) addRow(child arena.NodeID, row rows.AbstractRow) error {
	if row.Rank > p.parentRank {
		outOfOrder, err := rowtree.NewOutOfOrderRow(p.tree, row)
		if err != nil {
			return err
		}
		p.otherChildren = append(p.otherChildren, outOfOrder)
		return nil
	}
	if row.Rank == 0 {
		p.rank0Rows = append(p.rank0Rows, child)
		return nil
	}
	p.rankRows[row.Rank] = append(p.rankRows[row.Rank], child)
	if row.Rank < p.minRank {
		p.minRank = row.Rank
	}
	return nil
}

// addOr merges an OR child into the partition's single or_tree, forming a
// cross product with any OR already accumulated, subject to the soft
// target_cross_product_term_count cap.
func (p *partition) addOr(child arena.NodeID) error {
	if !p.orSet {
		p.orNode = child
		p.orSet = true
		p.crossProductSize = len(p.tree.Node(child).Children())
		return nil
	}

	if p.crossProductSize > p.rw.targetCrossProductTermCount {
		p.otherChildren = append(p.otherChildren, child)
		return nil
	}

	left := p.tree.Node(p.orNode).Children()
	right := p.tree.Node(child).Children()
	expanded := make([]arena.NodeID, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			b := rowtree.NewBuilder(p.tree, rowtree.And)
			if err := b.AddChild(l); err != nil {
				return err
			}
			if err := b.AddChild(r); err != nil {
				return err
			}
			id, _, err := b.Complete()
			if err != nil {
				return err
			}
			expanded = append(expanded, id)
		}
	}

	ob := rowtree.NewBuilder(p.tree, rowtree.Or)
	for _, e := range expanded {
		if err := ob.AddChild(e); err != nil {
			return err
		}
	}
	newOr, _, err := ob.Complete()
	if err != nil {
		return err
	}
	p.orNode = newOr
	p.crossProductSize = len(expanded)
	return nil
}

// finish assembles the rank buckets (high to low), the recursively
// rewritten OR subtree, the rank-0 rows, and the leftover children into
// one AND, in that order.
func (p *partition) finish(rowsSoFar int) (arena.NodeID, error) {
	var pieces []arena.NodeID
	rowCount := rowsSoFar

	for r := int(rows.MaxRank); r >= 1; r-- {
		bucket := p.rankRows[rows.Rank(r)]
		if len(bucket) == 0 {
			continue
		}
		id, err := andAll(p.tree, bucket)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		pieces = append(pieces, id)
		rowCount += len(bucket)
	}

	if p.orSet {
		children := p.tree.Node(p.orNode).Children()
		rewritten := make([]arena.NodeID, 0, len(children))
		for _, c := range children {
			id, err := p.rw.buildCompileTree(c, p.minRank, rowCount)
			if err != nil {
				return arena.InvalidNodeID, err
			}
			rewritten = append(rewritten, id)
		}
		ob := rowtree.NewBuilder(p.tree, rowtree.Or)
		for _, c := range rewritten {
			if err := ob.AddChild(c); err != nil {
				return arena.InvalidNodeID, err
			}
		}
		id, _, err := ob.Complete()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		pieces = append(pieces, id)
	}

	if len(p.rank0Rows) > 0 {
		id, err := andAll(p.tree, p.rank0Rows)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		pieces = append(pieces, id)
	}

	pieces = append(pieces, p.otherChildren...)

	return andAll(p.tree, pieces)
}

// andAll ANDs together every node in ids, in order, returning
// arena.InvalidNodeID (the neutral "true") for an empty slice.
func andAll(tree *rowtree.Tree, ids []arena.NodeID) (arena.NodeID, error) {
	b := rowtree.NewBuilder(tree, rowtree.And)
	for _, id := range ids {
		if err := b.AddChild(id); err != nil {
			return arena.InvalidNodeID, err
		}
	}
	id, _, err := b.Complete()
	return id, err
}
