package shard

import "github.com/bitfunnel/bitfunnel/rows"

// Definition maps a document's posting count to the shard that holds it
// and reports that shard's density. The matcher consumes this interface
// read-only; the optimiser that builds one lives outside this module.
type Definition interface {
	// NumShards returns the number of shards this definition partitions the
	// corpus into.
	NumShards() int

	// ShardForPostingCount returns the shard a document with the given
	// posting count belongs to.
	ShardForPostingCount(postingCount int) rows.ShardID

	// Density returns the configured row density (fraction of set bits in
	// an average row) for shard, used by hosts sizing adhoc rows; the core
	// itself never reads a Definition's density.
	Density(shard rows.ShardID) float64
}

// Slice is a fixed-capacity block of documents within one shard. Every
// row in the shard is logically an
// array of per-slice segments; RowData returns one row's segment, sized to
// that row's own rank (len(RowData(row)) == Capacity()/64/2^row.Rank).
//
// Slices are append-only from the ingestion side; the matcher only ever
// reads them.
type Slice interface {
	// Capacity returns the number of rank-0 documents this slice covers.
	// It must be a multiple of 64 * 2^MaxRank so every row's quadword array
	// divides evenly at every rank the planner may reference.
	Capacity() int

	// RowData returns the quadword array backing row within this slice.
	// The returned slice must not be mutated by the caller; soft-delete
	// (clearing the match-all bit) is the only sanctioned external
	// mutation, and it is atomic at the bit level.
	RowData(row rows.RowId) []uint64
}
