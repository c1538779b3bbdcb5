package termtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/term"
)

func TestLookupExactHit(t *testing.T) {
	mt := NewMemory(rows.RowId{Rank: 0, Index: 0}, 8, 0)
	h := term.HashText("foo")
	mt.AddRow(h, rows.RowId{Rank: 0, Index: 1})
	mt.AddRow(h, rows.RowId{Rank: 0, Index: 2})

	got, err := mt.Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, []rows.RowId{{Rank: 0, Index: 1}, {Rank: 0, Index: 2}}, got)
}

func TestLookupSynthesizesStableAdhocRow(t *testing.T) {
	mt := NewMemory(rows.RowId{}, 8, 0)
	h := term.HashText("unknown")

	first, err := mt.Lookup(h)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := mt.Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated lookups of the same unknown hash must be stable")
}

func TestLookupExhaustsAdhocBudget(t *testing.T) {
	mt := NewMemory(rows.RowId{}, 1, 0)
	_, err := mt.Lookup(term.HashText("a"))
	require.NoError(t, err)

	_, err = mt.Lookup(term.HashText("b"))
	assert.ErrorIs(t, err, ErrRowCountExceeded)
}

func TestMatchAllRow(t *testing.T) {
	want := rows.RowId{Rank: 0, Index: 99}
	mt := NewMemory(want, 8, 0)
	assert.Equal(t, want, mt.MatchAllRow())
}
