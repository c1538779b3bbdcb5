package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/rows"
)

func setup(t *testing.T) *compiletree.Tree {
	a := arena.New(1 << 20)
	t.Cleanup(func() { a.Close() })
	return compiletree.New(a)
}

func TestAllocatorOrdersByDepthThenUses(t *testing.T) {
	tree := setup(t)

	// LoadRowJz(0) -> AndRowJz(1) -> Report : depth(0)=0, depth(1)=1.
	report, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	andRowJz, err := compiletree.NewAndRowJz(tree, rows.AbstractRow{ID: 1, Rank: 0}, report)
	require.NoError(t, err)
	root, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 0, Rank: 0}, andRowJz)
	require.NoError(t, err)

	a := New(tree, root, 2, 8, 8)
	require.True(t, a.IsRegister(0))
	require.True(t, a.IsRegister(1))
	assert.Equal(t, uint32(8), a.Register(0), "row 0 is shallower, so it gets the first register")
	assert.Equal(t, uint32(9), a.Register(1))
	assert.Equal(t, uint32(2), a.RegistersAllocated())
}

func TestAllocatorTiesBrokenByUsesThenID(t *testing.T) {
	tree := setup(t)

	// Both rows at depth 0 (two independent leaves under an Or), but row 2
	// sits beneath a RankDown(1) and so has twice the uses of row 1.
	leaf1, err := compiletree.NewLoadRow(tree, rows.AbstractRow{ID: 1, Rank: 0})
	require.NoError(t, err)
	leaf2, err := compiletree.NewLoadRow(tree, rows.AbstractRow{ID: 2, Rank: 0})
	require.NoError(t, err)
	rankDown, err := compiletree.NewRankDown(tree, 1, leaf2)
	require.NoError(t, err)
	root, err := compiletree.NewOrTree(tree, leaf1, rankDown)
	require.NoError(t, err)

	a := New(tree, root, 2, 8, 8)
	assert.Equal(t, uint32(8), a.Register(2), "row 2 has more uses, so it wins the tie at depth 0")
	assert.Equal(t, uint32(9), a.Register(1))
}

// An Or of a rank-6 row against a rank-0 row: both branches start at depth
// 0, but the rank-0 row runs under the six-level rank-down chain the
// rank-6 branch forces on the whole program, so it is evaluated 64 times
// per document column and must win the first register.
func TestAllocatorPrefersRowLoopedUnderRankDown(t *testing.T) {
	tree := setup(t)

	reportL, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	bridgeL := reportL
	for i := 0; i < 6; i++ {
		bridgeL, err = compiletree.NewRankDown(tree, 1, bridgeL)
		require.NoError(t, err)
	}
	left, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 0, Rank: 6}, bridgeL)
	require.NoError(t, err)

	reportR, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	right, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 1, Rank: 0}, reportR)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		right, err = compiletree.NewRankDown(tree, 1, right)
		require.NoError(t, err)
	}

	root, err := compiletree.NewOr(tree, left, right)
	require.NoError(t, err)

	a := New(tree, root, 2, 8, 2)
	assert.Equal(t, uint32(8), a.Register(1), "the rank-0 row is executed 64 times and wins the first register")
	assert.Equal(t, uint32(9), a.Register(0))
}

func TestAllocatorStopsAtRegisterCount(t *testing.T) {
	tree := setup(t)

	report, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	second, err := compiletree.NewAndRowJz(tree, rows.AbstractRow{ID: 1, Rank: 0}, report)
	require.NoError(t, err)
	root, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 0, Rank: 0}, second)
	require.NoError(t, err)

	a := New(tree, root, 2, 8, 1)
	assert.Equal(t, uint32(1), a.RegistersAllocated())
	assert.True(t, a.IsRegister(0))
	assert.False(t, a.IsRegister(1), "only register_count registers are ever handed out")
	assert.Equal(t, uint32(0), a.RowIDFromRegister(0))
}

func TestAllocatorRegisterNumbersAreContiguous(t *testing.T) {
	tree := setup(t)

	report, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	n2, err := compiletree.NewAndRowJz(tree, rows.AbstractRow{ID: 2, Rank: 0}, report)
	require.NoError(t, err)
	n1, err := compiletree.NewAndRowJz(tree, rows.AbstractRow{ID: 1, Rank: 0}, n2)
	require.NoError(t, err)
	root, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 0, Rank: 0}, n1)
	require.NoError(t, err)

	a := New(tree, root, 3, 8, 8)
	for i := uint32(0); i < a.RegistersAllocated(); i++ {
		id := a.RowIDFromRegister(i)
		assert.Equal(t, 8+i, a.Register(id))
	}
}

func TestAllocatorRowLooksUpAbstractRow(t *testing.T) {
	tree := setup(t)

	want := rows.AbstractRow{ID: 5, Rank: 3, Inverted: true}
	root, err := compiletree.NewLoadRow(tree, want)
	require.NoError(t, err)

	a := New(tree, root, 1, 8, 8)
	assert.Equal(t, want, a.Row(5))
}
