package rowtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/rows"
)

func newTestTree(t *testing.T) *Tree {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	return New(a)
}

func TestRowTreeAndFlattensSingleChild(t *testing.T) {
	tree := newTestTree(t)
	r, err := NewRow(tree, rows.AbstractRow{ID: 1, Rank: 2})
	require.NoError(t, err)

	b := NewBuilder(tree, And)
	require.NoError(t, b.AddChild(r))
	id, ok, err := b.Complete()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r, id)
}

func TestRowTreeNotInvolution(t *testing.T) {
	tree := newTestTree(t)
	r, _ := NewRow(tree, rows.AbstractRow{ID: 1})

	inner := NewBuilder(tree, Not)
	require.NoError(t, inner.AddChild(r))
	notR, _, _ := inner.Complete()

	outer := NewBuilder(tree, Not)
	require.NoError(t, outer.AddChild(notR))
	id, ok, err := outer.Complete()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r, id)
}

func TestRowTreeMultiChildAndPreservesOrder(t *testing.T) {
	tree := newTestTree(t)
	r1, _ := NewRow(tree, rows.AbstractRow{ID: 1})
	r2, _ := NewRow(tree, rows.AbstractRow{ID: 2})

	b := NewBuilder(tree, And)
	require.NoError(t, b.AddChild(r1))
	require.NoError(t, b.AddChild(r2))
	id, ok, err := b.Complete()
	require.NoError(t, err)
	require.True(t, ok)

	n := tree.Node(id)
	assert.Equal(t, []arena.NodeID{r1, r2}, n.Children())
}
