package compiletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
)

func TestConstructorsSetKindAndFields(t *testing.T) {
	a := arena.New(1 << 16)
	defer a.Close()
	tree := New(a)

	leaf, err := NewLoadRow(tree, rows.AbstractRow{ID: 1, Rank: 0})
	require.NoError(t, err)

	rd, err := NewRankDown(tree, 3, leaf)
	require.NoError(t, err)
	rdNode := tree.Node(rd)
	assert.Equal(t, RankDown, rdNode.Kind)
	assert.Equal(t, rows.Rank(3), rdNode.Delta)
	assert.Equal(t, leaf, rdNode.Child)

	report, err := NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	assert.Equal(t, Report, tree.Node(report).Kind)
	assert.Equal(t, arena.InvalidNodeID, tree.Node(report).Child)

	lj, err := NewLoadRowJz(tree, rows.AbstractRow{ID: 2, Rank: 4}, report)
	require.NoError(t, err)
	ljNode := tree.Node(lj)
	assert.Equal(t, LoadRowJz, ljNode.Kind)
	assert.Equal(t, uint32(2), ljNode.Row.ID)
	assert.Equal(t, report, ljNode.Child)

	or, err := NewOr(tree, lj, rd)
	require.NoError(t, err)
	orNode := tree.Node(or)
	assert.Equal(t, Or, orNode.Kind)
	assert.Equal(t, lj, orNode.Left)
	assert.Equal(t, rd, orNode.Right)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "LoadRowJz", LoadRowJz.String())
	assert.Equal(t, "OrTree", OrTree.String())
	assert.Equal(t, "Invalid", Kind(255).String())
}
