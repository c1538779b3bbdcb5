package planner

import (
	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
	"github.com/bitfunnel/bitfunnel/term"
	"github.com/bitfunnel/bitfunnel/termtable"
	"github.com/bitfunnel/bitfunnel/termtree"
)

// matchAllKey is reserved for the match-all row so it can never collide
// with a dedup key built from a real term.Hash (package rows.Key is a pair
// of uint64s; no HashText/HashFact output pairs with ^uint64(0) twice,
// since HashFact never produces the maximum uint64 by construction of the
// handle space used in tests and TermTable.AddRow call sites in this repo).
var matchAllKey = rows.Key{^uint64(0), ^uint64(0)}

// Converter resolves a termtree.Tree into a rowtree.Tree plus the
// rows.PlanRows it indexes into.
type Converter struct {
	config   termtable.IndexConfiguration
	arena    *arena.Arena
	rowTree  *rowtree.Tree
	planRows *rows.Builder
}

// NewConverter creates a Converter. The same arena backs both the resulting
// rowtree.Tree and the term-tree the caller already built, since both are
// scoped to one query.
func NewConverter(config termtable.IndexConfiguration, a *arena.Arena) *Converter {
	return &Converter{
		config:   config,
		arena:    a,
		rowTree:  rowtree.New(a),
		planRows: rows.NewBuilder(config.NumShards()),
	}
}

// RowTree returns the Tree the converted nodes live in.
func (c *Converter) RowTree() *rowtree.Tree { return c.rowTree }

// Convert resolves root (a node of tt) into a rowtree node, with the
// match-all row ANDed in as the final child of the root And, and returns
// the rows.PlanRows built along the way.
func (c *Converter) Convert(tt *termtree.Tree, root arena.NodeID) (arena.NodeID, *rows.PlanRows, error) {
	body, err := c.convertNode(tt, root)
	if err != nil {
		return arena.InvalidNodeID, nil, err
	}

	matchAllAbstract, err := c.resolveMatchAll()
	if err != nil {
		return arena.InvalidNodeID, nil, err
	}
	matchAllLeaf, err := rowtree.NewRow(c.rowTree, matchAllAbstract)
	if err != nil {
		return arena.InvalidNodeID, nil, err
	}

	b := rowtree.NewBuilder(c.rowTree, rowtree.And)
	if body != arena.InvalidNodeID {
		for _, child := range rowtree.FlattenAnd(c.rowTree, body) {
			if err := b.AddChild(child); err != nil {
				return arena.InvalidNodeID, nil, err
			}
		}
	}
	if err := b.AddChild(matchAllLeaf); err != nil {
		return arena.InvalidNodeID, nil, err
	}
	id, _, err := b.Complete()
	if err != nil {
		return arena.InvalidNodeID, nil, err
	}
	return id, c.planRows.Build(), nil
}

func (c *Converter) convertNode(tt *termtree.Tree, id arena.NodeID) (arena.NodeID, error) {
	n := tt.Node(id)
	switch n.Kind {
	case termtree.And, termtree.Or:
		kind := rowtree.And
		if n.Kind == termtree.Or {
			kind = rowtree.Or
		}
		b := rowtree.NewBuilder(c.rowTree, kind)
		for _, child := range n.Children() {
			converted, err := c.convertNode(tt, child)
			if err != nil {
				return arena.InvalidNodeID, err
			}
			if converted == arena.InvalidNodeID {
				continue
			}
			if err := b.AddChild(converted); err != nil {
				return arena.InvalidNodeID, err
			}
		}
		resultID, _, err := b.Complete()
		return resultID, err

	case termtree.Not:
		child, err := c.convertNode(tt, n.Child())
		if err != nil {
			return arena.InvalidNodeID, err
		}
		b := rowtree.NewBuilder(c.rowTree, rowtree.Not)
		if err := b.AddChild(child); err != nil {
			return arena.InvalidNodeID, err
		}
		resultID, _, err := b.Complete()
		return resultID, err

	case termtree.Unigram:
		abstract, err := c.resolveHash(term.HashText(n.Text))
		if err != nil {
			return arena.InvalidNodeID, errors.Wrapf(err, "unigram %q", n.Text)
		}
		return c.andOfRows(abstract)

	case termtree.Phrase:
		var abstract []rows.AbstractRow
		for _, h := range term.SubphrasePrefixes(n.Grams) {
			r, err := c.resolveHash(h)
			if err != nil {
				return arena.InvalidNodeID, errors.Wrap(err, "phrase")
			}
			abstract = append(abstract, r...)
		}
		return c.andOfRows(abstract)

	case termtree.Fact:
		abstract, err := c.resolveHash(term.HashFact(n.Handle))
		if err != nil {
			return arena.InvalidNodeID, errors.Wrapf(err, "fact %d", n.Handle)
		}
		return c.andOfRows(abstract)

	default:
		panic("planner: unreachable term node kind")
	}
}

func (c *Converter) andOfRows(abstract []rows.AbstractRow) (arena.NodeID, error) {
	b := rowtree.NewBuilder(c.rowTree, rowtree.And)
	for _, a := range abstract {
		leaf, err := rowtree.NewRow(c.rowTree, a)
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if err := b.AddChild(leaf); err != nil {
			return arena.InvalidNodeID, err
		}
	}
	id, _, err := b.Complete()
	return id, err
}

// resolveHash looks hash up in every shard's TermTable, registers one
// AbstractRow per returned position in rows.PlanRows, and returns them.
func (c *Converter) resolveHash(hash term.Hash) ([]rows.AbstractRow, error) {
	numShards := c.config.NumShards()
	perShard := make([][]rows.RowId, numShards)
	count := -1
	for s := 0; s < numShards; s++ {
		rs, err := c.config.TermTable(rows.ShardID(s)).Lookup(hash)
		if err != nil {
			return nil, errors.Wrapf(err, "shard %d", s)
		}
		if count == -1 {
			count = len(rs)
		} else if count != len(rs) {
			return nil, ErrShardMismatch
		}
		perShard[s] = rs
	}
	return c.registerRows(uint64(hash), perShard, count, numShards)
}

func (c *Converter) resolveMatchAll() (rows.AbstractRow, error) {
	numShards := c.config.NumShards()
	perShard := make([][]rows.RowId, numShards)
	for s := 0; s < numShards; s++ {
		perShard[s] = []rows.RowId{c.config.TermTable(rows.ShardID(s)).MatchAllRow()}
	}
	got, err := c.registerRowsWithKey(matchAllKey, perShard, 1, numShards)
	if err != nil {
		return rows.AbstractRow{}, err
	}
	return got[0], nil
}

func (c *Converter) registerRows(hash uint64, perShard [][]rows.RowId, count, numShards int) ([]rows.AbstractRow, error) {
	out := make([]rows.AbstractRow, count)
	for i := 0; i < count; i++ {
		byShard := make([]rows.RowId, numShards)
		rank := perShard[0][i].Rank
		for s := 0; s < numShards; s++ {
			if perShard[s][i].Rank != rank {
				return nil, ErrShardMismatch
			}
			byShard[s] = perShard[s][i]
		}
		key := rows.Key{hash, uint64(rank)<<32 | uint64(i)}
		id, _ := c.planRows.AddRow(key, byShard)
		out[i] = rows.AbstractRow{ID: id, Rank: rank}
	}
	return out, nil
}

func (c *Converter) registerRowsWithKey(key rows.Key, perShard [][]rows.RowId, count, numShards int) ([]rows.AbstractRow, error) {
	out := make([]rows.AbstractRow, count)
	for i := 0; i < count; i++ {
		byShard := make([]rows.RowId, numShards)
		rank := perShard[0][i].Rank
		for s := 0; s < numShards; s++ {
			if perShard[s][i].Rank != rank {
				return nil, ErrShardMismatch
			}
			byShard[s] = perShard[s][i]
		}
		k := key
		k[1] ^= uint64(i)
		id, _ := c.planRows.AddRow(k, byShard)
		out[i] = rows.AbstractRow{ID: id, Rank: rank}
	}
	return out, nil
}
