package format

import (
	"fmt"
	"strings"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/compiletree"
)

// CompileTree renders the subtree of tree rooted at id in its textual
// form, e.g.
// "LoadRowJz { Row: Row(1, 2, 0, false), Child: Report { Child: } }". It is
// Format-only: a compile tree is never authored by hand, only produced by
// package compiler, so no parser is provided (mirrors the rowtree scoping
// decision in doc.go).
func CompileTree(tree *compiletree.Tree, id arena.NodeID) string {
	var b strings.Builder
	writeCompileNode(&b, tree, id)
	return b.String()
}

func writeCompileNode(b *strings.Builder, tree *compiletree.Tree, id arena.NodeID) {
	n := tree.Node(id)
	switch n.Kind {
	case compiletree.AndRowJz, compiletree.LoadRowJz:
		b.WriteString(n.Kind.String())
		b.WriteString(" { Row: Row")
		fmt.Fprint(b, n.Row)
		b.WriteString(", Child:")
		writeOptionalChild(b, tree, n.Child)
		b.WriteString(" }")

	case compiletree.Or, compiletree.AndTree, compiletree.OrTree:
		b.WriteString(n.Kind.String())
		b.WriteString(" { Children: [ ")
		writeCompileNode(b, tree, n.Left)
		b.WriteString(", ")
		writeCompileNode(b, tree, n.Right)
		b.WriteString(" ] }")

	case compiletree.RankDown:
		fmt.Fprintf(b, "RankDown { Delta: %d, Child: ", n.Delta)
		writeCompileNode(b, tree, n.Child)
		b.WriteString(" }")

	case compiletree.Report:
		b.WriteString("Report { Child:")
		writeOptionalChild(b, tree, n.Child)
		b.WriteString(" }")

	case compiletree.LoadRow:
		b.WriteString("LoadRow")
		fmt.Fprint(b, n.Row)

	case compiletree.Not:
		b.WriteString("Not { Child: ")
		writeCompileNode(b, tree, n.Child)
		b.WriteString(" }")

	default:
		panic("format: unreachable compile node kind")
	}
}

// writeOptionalChild renders a space followed by child, or nothing at all
// when child is arena.InvalidNodeID — the childless Report form renders as
// "Report { Child: }".
func writeOptionalChild(b *strings.Builder, tree *compiletree.Tree, child arena.NodeID) {
	if child == arena.InvalidNodeID {
		return
	}
	b.WriteByte(' ')
	writeCompileNode(b, tree, child)
}
