package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/term"
)

func TestParseManifestReadsExplicitAndAdhocTerms(t *testing.T) {
	manifest := `
# demo manifest
MATCHALL 0 0
ADHOC 16
` + strconv.FormatUint(uint64(term.HashText("foo")), 16) + ` 0 1 0 2
`
	table, err := parseManifest(strings.NewReader(manifest))
	require.NoError(t, err)

	assert.Equal(t, rows.RowId{Rank: 0, Index: 0}, table.matchAll)
	assert.Equal(t, uint32(16), table.adhocRowCount)

	got, err := table.Lookup(term.HashText("foo"))
	require.NoError(t, err)
	assert.Equal(t, []rows.RowId{{Rank: 0, Index: 1}, {Rank: 0, Index: 2}}, got)

	adhoc, err := table.Lookup(term.HashText("unseen"))
	require.NoError(t, err)
	require.Len(t, adhoc, 1)
	assert.Equal(t, rows.Rank(0), adhoc[0].Rank)
}

func TestParseManifestRequiresMatchAll(t *testing.T) {
	_, err := parseManifest(strings.NewReader("ADHOC 4\n"))
	require.Error(t, err)
}

