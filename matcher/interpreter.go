package matcher

import (
	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/bytecode"
	"github.com/bitfunnel/bitfunnel/registers"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/shard"
)

// Interpreter runs one compiled bytecode.Program against a shard's
// slices. A single Interpreter is built once per query and reused across
// every shard the query touches: the Program itself is shard-independent,
// since register allocation is a plan-level artifact and only row-pointer
// resolution happens per shard/slice.
type Interpreter struct {
	program   *bytecode.Program
	planRows  *rows.PlanRows
	allocator *registers.Allocator // optional; nil means no rows are register-resident
	startRank rows.Rank
}

// New builds an Interpreter for program, resolving AbstractRow ids through
// planRows. allocator may be nil; when present, the rows it assigned
// registers to are resolved once per slice instead of on every offset.
func New(program *bytecode.Program, planRows *rows.PlanRows, allocator *registers.Allocator) *Interpreter {
	return &Interpreter{
		program:   program,
		planRows:  planRows,
		allocator: allocator,
		startRank: program.StartRank,
	}
}

// Run executes the program across every slice of shardID, appending
// matches to results. Matches within one shard are appended in
// (slice_index, offset) order; Run itself imposes no ordering across
// shards (callers running several shards concurrently, each with its own
// Interpreter/ResultsBuffer, get that for free).
func (in *Interpreter) Run(shardID rows.ShardID, slices []shard.Slice, results *ResultsBuffer) error {
	column := in.planRows.Resolve(shardID)
	for i, sl := range slices {
		if err := in.runSlice(uint32(i), sl, column, results); err != nil {
			return errors.Wrapf(err, "matcher: shard %d slice %d", shardID, i)
		}
	}
	return nil
}

// runSlice drives the program once per starting offset in sl, at the
// program's StartRank.
func (in *Interpreter) runSlice(sliceIndex uint32, sl shard.Slice, column []rows.RowId, results *ResultsBuffer) error {
	src := newSliceRowSource(sl, column, in.allocator)

	step := uint64(1) << uint(in.startRank)
	quadwords := uint64(sl.Capacity()) / 64
	// Round up so a straggler tail shorter than one rank-aligned step is
	// still visited; loadRow's bounds checks keep the overhang harmless.
	count := (quadwords + step - 1) / step
	if count == 0 {
		count = 1
	}

	for start := uint64(0); start < count; start++ {
		v := newVM(sliceIndex, src, start, int(in.startRank), results)
		if err := v.run(in.program.Instructions); err != nil {
			return err
		}
	}
	return nil
}

// sliceRowSource resolves an AbstractRow to its quadword array within one
// slice, caching every row it has already resolved (register-assigned rows
// are pre-resolved once, up front; everything else is resolved lazily and
// cached on first use) so a row referenced at many offsets only costs one
// shard.Slice.RowData call.
type sliceRowSource struct {
	slice     shard.Slice
	column    []rows.RowId
	allocator *registers.Allocator
	cache     map[uint32][]uint64
}

func newSliceRowSource(sl shard.Slice, column []rows.RowId, allocator *registers.Allocator) *sliceRowSource {
	s := &sliceRowSource{slice: sl, column: column, allocator: allocator, cache: make(map[uint32][]uint64)}
	if allocator != nil {
		for reg := uint32(0); reg < allocator.RegistersAllocated(); reg++ {
			id := allocator.RowIDFromRegister(reg)
			s.cache[id] = sl.RowData(column[id])
		}
	}
	return s
}

func (s *sliceRowSource) data(row rows.AbstractRow) []uint64 {
	if d, ok := s.cache[row.ID]; ok {
		return d
	}
	d := s.slice.RowData(s.column[row.ID])
	s.cache[row.ID] = d
	return d
}
