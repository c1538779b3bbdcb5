package rowtree

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
)

// Kind discriminates the four RowMatchNode variants.
type Kind uint8

const (
	And Kind = iota
	Or
	Not
	Row
)

func (k Kind) String() string {
	switch k {
	case And:
		return "And"
	case Or:
		return "Or"
	case Not:
		return "Not"
	case Row:
		return "Row"
	default:
		return "Invalid"
	}
}

// Node is a single RowMatchNode.
type Node struct {
	Kind Kind

	children []arena.NodeID // And / Or.
	child    arena.NodeID   // Not.

	// OutOfOrder marks a Row placed into a partition's "other" bucket by
	// the rewriter because its rank exceeded the enclosing partition's
	// parent rank, or a non-rank-0 Row inside a rank-upped NOT subtree.
	// It is never set by the builder;
	// package rewrite sets it when copying a row into a rewritten tree.
	OutOfOrder bool

	Row rows.AbstractRow
}

func (n *Node) Children() []arena.NodeID { return n.children }
func (n *Node) Child() arena.NodeID      { return n.child }

// Tree owns the Nodes built for one row match tree.
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

const nodeFootprint = 48

func (t *Tree) alloc(n Node) (arena.NodeID, error) {
	if err := t.a.Charge(nodeFootprint); err != nil {
		return arena.InvalidNodeID, err
	}
	id := arena.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id, nil
}

// NewRow constructs a Row leaf directly.
func NewRow(tree *Tree, row rows.AbstractRow) (arena.NodeID, error) {
	return tree.alloc(Node{Kind: Row, Row: row})
}

// FlattenAnd collects the children of an And node, recursively inlining any
// child that is itself an And, preserving insertion order. A non-And node
// flattens to the single-element slice containing itself. Packages rewrite
// and compiler both need to treat a chain of nested Ands as one flat
// sequence of AND operands.
func FlattenAnd(tree *Tree, id arena.NodeID) []arena.NodeID {
	n := tree.Node(id)
	if n.Kind != And {
		return []arena.NodeID{id}
	}
	var out []arena.NodeID
	for _, c := range n.Children() {
		if tree.Node(c).Kind == And {
			out = append(out, FlattenAnd(tree, c)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// NewOutOfOrderRow constructs a Row leaf with OutOfOrder set. Package
// rewrite is the only caller: it raises a row into a different partition
// bucket than its rank would normally place it, either because the row's
// rank exceeds the enclosing partition's parent rank or because the row
// lives inside a NOT subtree that the compiler must handle at rank 0.
func NewOutOfOrderRow(tree *Tree, row rows.AbstractRow) (arena.NodeID, error) {
	return tree.alloc(Node{Kind: Row, Row: row, OutOfOrder: true})
}
