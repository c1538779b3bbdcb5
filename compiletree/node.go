package compiletree

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
)

// Kind discriminates the nine CompileNode variants.
type Kind uint8

const (
	// Rank-down layer.
	AndRowJz Kind = iota
	LoadRowJz
	Or
	RankDown
	Report

	// Rank-zero layer.
	AndTree
	LoadRow
	Not
	OrTree
)

func (k Kind) String() string {
	switch k {
	case AndRowJz:
		return "AndRowJz"
	case LoadRowJz:
		return "LoadRowJz"
	case Or:
		return "Or"
	case RankDown:
		return "RankDown"
	case Report:
		return "Report"
	case AndTree:
		return "AndTree"
	case LoadRow:
		return "LoadRow"
	case Not:
		return "Not"
	case OrTree:
		return "OrTree"
	default:
		return "Invalid"
	}
}

// Node is a single CompileNode. Only the fields relevant to Kind are
// meaningful.
type Node struct {
	Kind Kind

	Row rows.AbstractRow // AndRowJz, LoadRowJz, LoadRow.

	Child arena.NodeID // AndRowJz, LoadRowJz, RankDown, Not.
	// Report's Child is arena.InvalidNodeID for the childless form
	// ("end of a path" with nothing left to intersect against).

	Left, Right arena.NodeID // Or, AndTree, OrTree.

	Delta rows.Rank // RankDown.
}

// Tree owns the CompileNodes built for one query plan.
type Tree struct {
	a     *arena.Arena
	nodes []Node
}

// New creates an empty Tree backed by a.
func New(a *arena.Arena) *Tree {
	return &Tree{a: a}
}

// Node returns the node at id.
func (t *Tree) Node(id arena.NodeID) *Node {
	return &t.nodes[id]
}

// NodeCount returns how many nodes have been allocated in this tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

const nodeFootprint = 56

func (t *Tree) alloc(n Node) (arena.NodeID, error) {
	if err := t.a.Charge(nodeFootprint); err != nil {
		return arena.InvalidNodeID, err
	}
	id := arena.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id, nil
}

// NewAndRowJz constructs an AndRowJz node.
func NewAndRowJz(t *Tree, row rows.AbstractRow, child arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: AndRowJz, Row: row, Child: child})
}

// NewLoadRowJz constructs a LoadRowJz node.
func NewLoadRowJz(t *Tree, row rows.AbstractRow, child arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: LoadRowJz, Row: row, Child: child})
}

// NewOr constructs an Or node.
func NewOr(t *Tree, left, right arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: Or, Left: left, Right: right})
}

// NewRankDown constructs a RankDown node descending delta ranks. Its body
// is invoked exactly twice, covering the two halves of a single descent,
// so package compiler bridges a gap of several ranks with nested
// single-rank nodes rather than one wide delta.
func NewRankDown(t *Tree, delta rows.Rank, child arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: RankDown, Delta: delta, Child: child})
}

// NewReport constructs a Report node. child may be arena.InvalidNodeID for
// the childless form.
func NewReport(t *Tree, child arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: Report, Child: child})
}

// NewAndTree constructs a rank-zero AndTree node.
func NewAndTree(t *Tree, left, right arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: AndTree, Left: left, Right: right})
}

// NewLoadRow constructs a rank-zero LoadRow node.
func NewLoadRow(t *Tree, row rows.AbstractRow) (arena.NodeID, error) {
	return t.alloc(Node{Kind: LoadRow, Row: row})
}

// NewNot constructs a rank-zero Not node.
func NewNot(t *Tree, child arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: Not, Child: child})
}

// NewOrTree constructs a rank-zero OrTree node.
func NewOrTree(t *Tree, left, right arena.NodeID) (arena.NodeID, error) {
	return t.alloc(Node{Kind: OrTree, Left: left, Right: right})
}
