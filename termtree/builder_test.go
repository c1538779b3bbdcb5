package termtree

import (
	"testing"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T) (*arena.Arena, *Tree) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	return a, New(a)
}

func TestAndOfOneChildFlattens(t *testing.T) {
	_, tree := newTestTree(t)
	leaf, err := NewUnigram(tree, "foo", 0)
	require.NoError(t, err)

	b := NewBuilder(tree, And)
	require.NoError(t, b.AddChild(leaf))
	id, ok, err := b.Complete()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, leaf, id)
}

func TestOrOfOneChildFlattens(t *testing.T) {
	_, tree := newTestTree(t)
	leaf, err := NewUnigram(tree, "foo", 0)
	require.NoError(t, err)

	b := NewBuilder(tree, Or)
	require.NoError(t, b.AddChild(leaf))
	id, ok, err := b.Complete()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, leaf, id)
}

func TestEmptyAndReturnsNone(t *testing.T) {
	_, tree := newTestTree(t)
	b := NewBuilder(tree, And)
	id, ok, err := b.Complete()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, arena.InvalidNodeID, id)
}

func TestNotInvolution(t *testing.T) {
	_, tree := newTestTree(t)
	leaf, err := NewUnigram(tree, "foo", 0)
	require.NoError(t, err)

	inner := NewBuilder(tree, Not)
	require.NoError(t, inner.AddChild(leaf))
	notLeaf, ok, err := inner.Complete()
	require.NoError(t, err)
	require.True(t, ok)

	outer := NewBuilder(tree, Not)
	require.NoError(t, outer.AddChild(notLeaf))
	id, ok, err := outer.Complete()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, leaf, id, "Not(Not(x)) must collapse to x")
}

func TestNotSecondAddChildFails(t *testing.T) {
	_, tree := newTestTree(t)
	a1, _ := NewUnigram(tree, "a", 0)
	a2, _ := NewUnigram(tree, "b", 0)

	b := NewBuilder(tree, Not)
	require.NoError(t, b.AddChild(a1))
	err := b.AddChild(a2)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestAndFlattensChildrenInInsertionOrder(t *testing.T) {
	_, tree := newTestTree(t)
	a, _ := NewUnigram(tree, "a", 0)
	b2, _ := NewUnigram(tree, "b", 0)
	c, _ := NewUnigram(tree, "c", 0)

	b := NewBuilder(tree, And)
	require.NoError(t, b.AddChild(a))
	require.NoError(t, b.AddChild(b2))
	require.NoError(t, b.AddChild(c))
	id, ok, err := b.Complete()
	require.NoError(t, err)
	require.True(t, ok)

	n := tree.Node(id)
	assert.Equal(t, And, n.Kind)
	assert.Equal(t, []arena.NodeID{a, b2, c}, n.Children())
}

func TestSingleGramPhraseLowersToUnigram(t *testing.T) {
	_, tree := newTestTree(t)
	id, err := NewPhrase(tree, []string{"solo"}, 3)
	require.NoError(t, err)
	n := tree.Node(id)
	assert.Equal(t, Unigram, n.Kind)
	assert.Equal(t, "solo", n.Text)
	assert.Equal(t, uint32(3), n.Stream)
}

func TestEmptyPhraseIsInvalid(t *testing.T) {
	_, tree := newTestTree(t)
	_, err := NewPhrase(tree, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestFactHandleZeroIsInvalid(t *testing.T) {
	_, tree := newTestTree(t)
	_, err := NewFact(tree, 0)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestFactHandleNonzero(t *testing.T) {
	_, tree := newTestTree(t)
	id, err := NewFact(tree, 7)
	require.NoError(t, err)
	n := tree.Node(id)
	assert.Equal(t, Fact, n.Kind)
	assert.Equal(t, uint64(7), n.Handle)
}

func TestArenaExhaustionPropagates(t *testing.T) {
	a := arena.New(1)
	defer a.Close()
	tree := New(a)
	_, err := NewFact(tree, 7)
	assert.ErrorIs(t, err, arena.ErrAllocationExhausted)
}
