package planner

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/term"
	"github.com/bitfunnel/bitfunnel/termtree"
)

// FPKind discriminates the variants of FPNode: a shadow of the term match
// tree whose leaves carry enough identity (a term's hash and stream) to
// re-check a row-match candidate against the document's actual terms once
// it has been pulled off disk, eliminating signature false positives
// before a result is reported.
type FPKind uint8

const (
	FPAnd FPKind = iota
	FPOr
	FPNot
	FPTerm
)

// FPNode is one node of a false-positive evaluation plan. Unlike termtree and
// rowtree it is not arena-backed: it is built once per query, is small (one
// node per original term leaf), and outlives the per-query arena long enough
// to be consulted during result verification, after the arena the rest of
// the plan lives in may already have been reset for the next query.
type FPNode struct {
	Kind FPKind

	Children []*FPNode // And / Or.
	Child    *FPNode   // Not.

	Hash   term.Hash // Term.
	Stream uint32    // Term.
}

// BuildFalsePositiveEvaluationPlan walks tt from root and produces the
// FPNode shadow tree. A Phrase leaf collapses to the hash of the full
// phrase (not its subphrase prefixes): false-positive elimination re-checks
// the literal term, not the planner's row-sharing optimization.
func BuildFalsePositiveEvaluationPlan(tt *termtree.Tree, root arena.NodeID) *FPNode {
	return buildFP(tt, root)
}

// Evaluate reports whether a candidate document satisfies the plan. has is
// the document's term membership: it is asked once per Term leaf whether
// the document actually contains a term with that hash on that stream. A
// candidate for which Evaluate returns false is a signature false positive
// and must be dropped before results are surfaced.
func (n *FPNode) Evaluate(has func(hash term.Hash, stream uint32) bool) bool {
	switch n.Kind {
	case FPAnd:
		for _, c := range n.Children {
			if !c.Evaluate(has) {
				return false
			}
		}
		return true

	case FPOr:
		for _, c := range n.Children {
			if c.Evaluate(has) {
				return true
			}
		}
		return false

	case FPNot:
		return !n.Child.Evaluate(has)

	case FPTerm:
		return has(n.Hash, n.Stream)

	default:
		panic("planner: unreachable false-positive node kind")
	}
}

func buildFP(tt *termtree.Tree, id arena.NodeID) *FPNode {
	n := tt.Node(id)
	switch n.Kind {
	case termtree.And, termtree.Or:
		kind := FPAnd
		if n.Kind == termtree.Or {
			kind = FPOr
		}
		children := make([]*FPNode, 0, len(n.Children()))
		for _, c := range n.Children() {
			children = append(children, buildFP(tt, c))
		}
		return &FPNode{Kind: kind, Children: children}

	case termtree.Not:
		return &FPNode{Kind: FPNot, Child: buildFP(tt, n.Child())}

	case termtree.Unigram:
		return &FPNode{Kind: FPTerm, Hash: term.HashText(n.Text), Stream: n.Stream}

	case termtree.Phrase:
		return &FPNode{Kind: FPTerm, Hash: term.HashPhrase(n.Grams), Stream: n.Stream}

	case termtree.Fact:
		return &FPNode{Kind: FPTerm, Hash: term.HashFact(n.Handle), Stream: n.Stream}

	default:
		panic("planner: unreachable term node kind")
	}
}
