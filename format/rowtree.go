package format

import (
	"fmt"
	"strings"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rowtree"
)

// RowTree renders the subtree of tree rooted at id in its textual form.
// It is Format-only (see doc.go): no parser is provided.
func RowTree(tree *rowtree.Tree, id arena.NodeID) string {
	var b strings.Builder
	writeRowNode(&b, tree, id)
	return b.String()
}

func writeRowNode(b *strings.Builder, tree *rowtree.Tree, id arena.NodeID) {
	n := tree.Node(id)
	switch n.Kind {
	case rowtree.Row:
		b.WriteString("Row")
		fmt.Fprint(b, n.Row)
		if n.OutOfOrder {
			b.WriteString(" /* out-of-order */")
		}

	case rowtree.Not:
		b.WriteString("Not { Child: ")
		writeRowNode(b, tree, n.Child())
		b.WriteString(" }")

	case rowtree.And, rowtree.Or:
		b.WriteString(n.Kind.String())
		b.WriteString(" { Children: [ ")
		for i, c := range n.Children() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRowNode(b, tree, c)
		}
		b.WriteString(" ] }")

	default:
		panic("format: unreachable row node kind")
	}
}
