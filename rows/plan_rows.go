package rows

import (
	"github.com/biogo/store/llrb"
)

// Key identifies "the same logical row" across shards during planning, so
// that a term referenced twice in one query tree (e.g. a shared subphrase)
// is assigned one AbstractRow.ID rather than two. The planner builds Keys
// from a term's hash and the row's rank; package rows itself is agnostic of
// what a Key means.
type Key [2]uint64

// PlanRows is the per-shard table of AbstractRow.ID -> RowId mappings built
// during planning. It is shared across every shard touched
// by one query: AbstractRow.ID is a single plan-wide index, and each shard
// contributes one physical RowId per index. The interpreter never mutates a
// PlanRows; it only resolves its own shard's column.
type PlanRows struct {
	numShards int
	byID      [][]RowId // byID[id][shard] = RowId
}

// RowCount returns the number of distinct AbstractRow ids in the plan.
func (p *PlanRows) RowCount() int { return len(p.byID) }

// NumShards returns the number of shards the plan covers.
func (p *PlanRows) NumShards() int { return p.numShards }

// RowID returns the physical RowId that AbstractRow id resolves to within
// shard. It panics on an out-of-range id or shard, since both are plan-time
// invariants that a well-formed compiled program never violates.
func (p *PlanRows) RowID(id uint32, shard ShardID) RowId {
	return p.byID[id][int(shard)]
}

// Resolve returns the full column of physical RowIds for one shard, indexed
// by AbstractRow.ID. This is what matcher.Interpreter consumes: one flat
// lookup table per shard, built once at plan time so the interpreter never
// re-walks the abstract-row table per document.
func (p *PlanRows) Resolve(shard ShardID) []RowId {
	col := make([]RowId, len(p.byID))
	for id, perShard := range p.byID {
		col[id] = perShard[int(shard)]
	}
	return col
}

// Builder accumulates AbstractRow assignments for one query plan.
type Builder struct {
	numShards int
	byID      [][]RowId
	dedup     llrb.Tree
}

// NewBuilder creates a Builder for a plan spanning numShards shards.
func NewBuilder(numShards int) *Builder {
	return &Builder{numShards: numShards}
}

// dedupEntry implements llrb.Comparable so Builder can look up a
// previously-assigned id for a Key in O(log n).
type dedupEntry struct {
	key Key
	id  uint32
}

func (e *dedupEntry) Compare(other llrb.Comparable) int {
	o := other.(*dedupEntry)
	switch {
	case e.key[0] != o.key[0]:
		if e.key[0] < o.key[0] {
			return -1
		}
		return 1
	case e.key[1] != o.key[1]:
		if e.key[1] < o.key[1] {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// AddRow registers a row identified by key, with one physical RowId per
// shard (len(rowsByShard) must equal the builder's shard count). If key was
// already registered, the existing AbstractRow.ID is returned and reused is
// true; otherwise a fresh id is allocated.
func (b *Builder) AddRow(key Key, rowsByShard []RowId) (id uint32, reused bool) {
	if len(rowsByShard) != b.numShards {
		panic("rows: AddRow called with wrong shard count")
	}
	probe := &dedupEntry{key: key}
	if got := b.dedup.Get(probe); got != nil {
		return got.(*dedupEntry).id, true
	}
	id = uint32(len(b.byID))
	cp := make([]RowId, len(rowsByShard))
	copy(cp, rowsByShard)
	b.byID = append(b.byID, cp)
	b.dedup.Insert(&dedupEntry{key: key, id: id})
	return id, false
}

// Build finalizes the PlanRows. The Builder must not be reused afterward.
func (b *Builder) Build() *PlanRows {
	return &PlanRows{numShards: b.numShards, byID: b.byID}
}
