package rows

import "fmt"

// Rank is the log2 size of a row: a rank-r row covers 2^r adjacent
// documents per bit. Ranks 0 through MaxRank are legal.
type Rank uint8

// MaxRank is the highest legal rank.
const MaxRank Rank = 6

// ShardID identifies one shard of the corpus.
type ShardID uint32

// RowId is the physical address of a row within a shard: its rank and its
// index among rows of that rank.
type RowId struct {
	Rank  Rank
	Index uint32
}

// String renders a RowId as "RowId(rank, index)", the textual form
// PlanRows dumps use.
func (r RowId) String() string {
	return fmt.Sprintf("RowId(%d, %d)", r.Rank, r.Index)
}

// AbstractRow is a plan-local handle: ID indexes into a PlanRows table,
// never into physical storage directly. Inverted marks a logical
// complement: the interpreter complements the row's bits when it reads
// them. Package rewrite does not set it; NOT subtrees stay Not nodes.
type AbstractRow struct {
	ID       uint32
	Rank     Rank
	Inverted bool
}

// Delta is reserved by the wire format and is always
// zero for an AbstractRow; it is exposed only so AbstractRow.String can
// reproduce the exact four-field textual form.
const Delta = 0

// String renders the textual form "(id, rank, delta, inverted)".
func (r AbstractRow) String() string {
	return fmt.Sprintf("(%d, %d, %d, %t)", r.ID, r.Rank, Delta, r.Inverted)
}
