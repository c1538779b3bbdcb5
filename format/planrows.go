package format

import (
	"fmt"
	"strings"

	"github.com/bitfunnel/bitfunnel/rows"
)

// PlanRows dumps every (shard, AbstractRow.ID): RowId mapping in p, one per
// line, in AbstractRow.ID order then shard order, as
// "(shard, id): RowId(rank, index)".
func PlanRows(p *rows.PlanRows) string {
	var b strings.Builder
	for id := 0; id < p.RowCount(); id++ {
		for shard := 0; shard < p.NumShards(); shard++ {
			fmt.Fprintf(&b, "(%d, %d): %s\n", shard, id, p.RowID(uint32(id), rows.ShardID(shard)))
		}
	}
	return b.String()
}
