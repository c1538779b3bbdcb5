package rowtree

import (
	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/arena"
)

// ErrInvalidTree mirrors termtree.ErrInvalidTree for row-tree builder
// misuse (setting a Not node's child twice).
var ErrInvalidTree = errors.New("rowtree: invalid tree")

// Builder assembles one And, Or, or Not node, with the same flattening and
// double-negation rules as termtree.Builder.
type Builder struct {
	tree *Tree
	kind Kind

	children []arena.NodeID

	notSet   bool
	notChild arena.NodeID
}

// NewBuilder starts building an And, Or, or Not node.
func NewBuilder(tree *Tree, kind Kind) *Builder {
	if kind != And && kind != Or && kind != Not {
		panic("rowtree: NewBuilder requires And, Or, or Not")
	}
	return &Builder{tree: tree, kind: kind}
}

// AddChild adds a child to an And/Or builder, or sets the single child of a
// Not builder.
func (b *Builder) AddChild(child arena.NodeID) error {
	if b.kind == Not {
		if b.notSet {
			return ErrInvalidTree
		}
		b.notChild = child
		b.notSet = true
		return nil
	}
	b.children = append(b.children, child)
	return nil
}

// Complete finishes the builder; see termtree.Builder.Complete for the
// exact flattening/elimination rules, which are identical here.
func (b *Builder) Complete() (arena.NodeID, bool, error) {
	switch b.kind {
	case And, Or:
		switch len(b.children) {
		case 0:
			return arena.InvalidNodeID, false, nil
		case 1:
			return b.children[0], true, nil
		default:
			id, err := b.tree.alloc(Node{Kind: b.kind, children: b.children})
			return id, true, err
		}
	case Not:
		if !b.notSet {
			return arena.InvalidNodeID, false, nil
		}
		child := b.tree.Node(b.notChild)
		if child.Kind == Not {
			return child.child, true, nil
		}
		id, err := b.tree.alloc(Node{Kind: Not, child: b.notChild})
		return id, true, err
	default:
		panic("rowtree: unreachable builder kind")
	}
}
