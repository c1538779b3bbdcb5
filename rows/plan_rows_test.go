package rows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDedupsByKey(t *testing.T) {
	b := NewBuilder(2)
	id1, reused1 := b.AddRow(Key{1, 0}, []RowId{{Rank: 0, Index: 1}, {Rank: 0, Index: 9}})
	require.False(t, reused1)

	id2, reused2 := b.AddRow(Key{1, 0}, []RowId{{Rank: 0, Index: 1}, {Rank: 0, Index: 9}})
	assert.True(t, reused2)
	assert.Equal(t, id1, id2)

	id3, reused3 := b.AddRow(Key{2, 0}, []RowId{{Rank: 0, Index: 2}, {Rank: 0, Index: 8}})
	require.False(t, reused3)
	assert.NotEqual(t, id1, id3)

	plan := b.Build()
	assert.Equal(t, 2, plan.RowCount())
	assert.Equal(t, RowId{Rank: 0, Index: 1}, plan.RowID(id1, 0))
	assert.Equal(t, RowId{Rank: 0, Index: 9}, plan.RowID(id1, 1))
}

func TestResolveReturnsShardColumn(t *testing.T) {
	b := NewBuilder(3)
	id0, _ := b.AddRow(Key{1, 0}, []RowId{{Index: 1}, {Index: 2}, {Index: 3}})
	id1, _ := b.AddRow(Key{2, 0}, []RowId{{Index: 4}, {Index: 5}, {Index: 6}})

	plan := b.Build()
	col := plan.Resolve(1)
	require.Len(t, col, 2)
	assert.Equal(t, RowId{Index: 2}, col[id0])
	assert.Equal(t, RowId{Index: 5}, col[id1])
}

func TestAddRowPanicsOnShardCountMismatch(t *testing.T) {
	b := NewBuilder(2)
	assert.Panics(t, func() {
		b.AddRow(Key{1, 0}, []RowId{{Index: 1}})
	})
}
