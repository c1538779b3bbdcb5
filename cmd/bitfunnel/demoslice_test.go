package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/rows"
)

func TestParseSliceFileReadsExplicitRowsAndDefaultsUnset(t *testing.T) {
	data := `
CAPACITY 128
0 0 ff f0
`
	sl, err := parseSliceFile(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, sl.Capacity())
	assert.Equal(t, []uint64{0xff, 0xf0}, sl.RowData(rows.RowId{Rank: 0, Index: 0}))

	unset := sl.RowData(rows.RowId{Rank: 0, Index: 1})
	require.Len(t, unset, 2)
	assert.Equal(t, ^uint64(0), unset[0])
}

func TestNewDemoSliceDefaultsEveryRowToAllOnes(t *testing.T) {
	sl := newDemoSlice(64)
	got := sl.RowData(rows.RowId{Rank: 0, Index: 5})
	require.Len(t, got, 1)
	assert.Equal(t, ^uint64(0), got[0])
}
