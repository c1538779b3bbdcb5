package termtree

import (
	"github.com/bitfunnel/bitfunnel/arena"
)

// Builder assembles one And, Or, or Not node. Leaf nodes (Unigram, Phrase,
// Fact) have no builder: they never take children, so they are constructed
// directly by NewUnigram, NewPhrase, and NewFact.
type Builder struct {
	tree *Tree
	kind Kind

	children []arena.NodeID // And / Or.

	notSet   bool // Not.
	notChild arena.NodeID
}

// NewBuilder starts building an And, Or, or Not node. kind must be one of
// And, Or, or Not; any other kind panics, since leaves are not built through
// Builder.
func NewBuilder(tree *Tree, kind Kind) *Builder {
	if kind != And && kind != Or && kind != Not {
		panic("termtree: NewBuilder requires And, Or, or Not")
	}
	return &Builder{tree: tree, kind: kind}
}

// AddChild adds a child to an And/Or builder, or sets the single child of a
// Not builder. Calling AddChild on a Not builder a second time returns
// ErrInvalidTree.
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

// Complete finishes the builder and returns:
//
//   - (InvalidNodeID, false) if no child was ever added — the caller treats
//     this as the neutral element for its context (e.g. an empty And is
//     "true", an empty Or is "false");
//   - the sole child's id, unmodified, for an And/Or of exactly one child
//     (flattening);
//   - the grandchild's id for Not(Not(x)) (double-negation elimination);
//   - otherwise a freshly allocated node's id.
//
// The returned error is non-nil only if the underlying Arena is exhausted.
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
		panic("termtree: unreachable builder kind")
	}
}

// NewUnigram constructs a Unigram leaf directly.
func NewUnigram(tree *Tree, text string, stream uint32) (arena.NodeID, error) {
	return tree.alloc(Node{Kind: Unigram, Text: text, Stream: stream})
}

// NewPhrase constructs a Phrase leaf. A single-gram phrase is lowered to a
// Unigram; zero grams is ErrInvalidTree.
func NewPhrase(tree *Tree, grams []string, stream uint32) (arena.NodeID, error) {
	switch len(grams) {
	case 0:
		return arena.InvalidNodeID, ErrInvalidTree
	case 1:
		return NewUnigram(tree, grams[0], stream)
	default:
		cp := make([]string, len(grams))
		copy(cp, grams)
		return tree.alloc(Node{Kind: Phrase, Grams: cp, Stream: stream})
	}
}

// NewFact constructs a Fact leaf. Handle 0 is reserved for "match-all"
//; constructing one explicitly is ErrInvalidTree.
func NewFact(tree *Tree, handle uint64) (arena.NodeID, error) {
	if handle == 0 {
		return arena.InvalidNodeID, ErrInvalidTree
	}
	return tree.alloc(Node{Kind: Fact, Handle: handle})
}
