package registers

import (
	"sort"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/rows"
)

// noAssociatedRow pushes an entry with no recorded occurrence to the end of
// the register-allocation sort.
const noAssociatedRow = ^uint32(0)

// entry carries one row's sort key for register allocation.
type entry struct {
	id    uint32
	depth uint32
	uses  uint64
	row   rows.AbstractRow
}

func (e *entry) isUsed() bool { return e.depth != noAssociatedRow }

// update folds in one more occurrence of this row: the earliest (shallowest)
// occurrence sets the row's depth for sorting purposes, and uses accumulate
// across every occurrence on every path.
func (e *entry) update(depth uint32, uses uint64, row rows.AbstractRow) {
	if !e.isUsed() || depth < e.depth {
		e.depth = depth
	}
	e.uses += uses
	e.row = row
}

// Allocator assigns a fixed bank of registers to the most-used abstract rows
// in a compiletree.Tree.
type Allocator struct {
	registerBase  uint32
	registerCount uint32

	regOf    map[uint32]uint32
	byReg    []uint32
	rowByID  map[uint32]rows.AbstractRow
	assigned uint32
}

// New builds an Allocator over the tree rooted at root. rowCount is an
// expected upper bound on the number of distinct rows (used only to
// pre-size internal maps); registerBase and registerCount describe the fixed
// register bank, typically base=8, count=8.
func New(tree *compiletree.Tree, root arena.NodeID, rowCount int, registerBase, registerCount uint32) *Allocator {
	entries := make(map[uint32]*entry, rowCount)
	collect(tree, root, 0, 1, entries)

	sorted := make([]*entry, 0, len(entries))
	for _, e := range entries {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.depth != b.depth {
			return a.depth < b.depth
		}
		if a.uses != b.uses {
			return a.uses > b.uses
		}
		return a.id < b.id
	})

	a := &Allocator{
		registerBase:  registerBase,
		registerCount: registerCount,
		regOf:         make(map[uint32]uint32, len(sorted)),
		rowByID:       make(map[uint32]rows.AbstractRow, len(sorted)),
	}
	for _, e := range sorted {
		a.rowByID[e.id] = e.row
		if uint32(len(a.byReg)) >= registerCount {
			continue
		}
		reg := registerBase + uint32(len(a.byReg))
		a.regOf[e.id] = reg
		a.byReg = append(a.byReg, e.id)
	}
	a.assigned = uint32(len(a.byReg))
	return a
}

// IsRegister reports whether the abstract row with the given id was assigned
// a register.
func (a *Allocator) IsRegister(id uint32) bool {
	_, ok := a.regOf[id]
	return ok
}

// Register returns the register number assigned to id. The caller must
// first check IsRegister.
func (a *Allocator) Register(id uint32) uint32 {
	reg, ok := a.regOf[id]
	if !ok {
		panic("registers: row has no assigned register")
	}
	return reg
}

// RegistersAllocated returns how many registers were actually handed out.
func (a *Allocator) RegistersAllocated() uint32 {
	return a.assigned
}

// RowIDFromRegister returns the abstract row id holding the given register,
// where reg is a zero-based index below RegistersAllocated.
func (a *Allocator) RowIDFromRegister(reg uint32) uint32 {
	return a.byReg[reg]
}

// Row returns the abstract row associated with id.
func (a *Allocator) Row(id uint32) rows.AbstractRow {
	return a.rowByID[id]
}

// collect walks the compile tree, recording each row's shallowest depth and
// total dynamic use count. depth counts rows evaluated strictly before this
// point on the current root-to-leaf path; uses is the running multiplier
// contributed by enclosing RankDown nodes (each RankDown(delta) multiplies
// uses by 2^delta for everything beneath it).
func collect(t *compiletree.Tree, id arena.NodeID, depth uint32, uses uint64, out map[uint32]*entry) {
	if id == arena.InvalidNodeID {
		return
	}
	n := t.Node(id)
	switch n.Kind {
	case compiletree.AndRowJz, compiletree.LoadRowJz:
		record(out, n.Row, depth, uses)
		collect(t, n.Child, depth+1, uses, out)

	case compiletree.LoadRow:
		record(out, n.Row, depth, uses)

	case compiletree.RankDown:
		collect(t, n.Child, depth, uses<<uint(n.Delta), out)

	case compiletree.Report:
		collect(t, n.Child, depth, uses, out)

	case compiletree.Not:
		collect(t, n.Child, depth, uses, out)

	case compiletree.Or, compiletree.AndTree, compiletree.OrTree:
		collect(t, n.Left, depth, uses, out)
		collect(t, n.Right, depth, uses, out)

	default:
		panic("registers: unreachable compile node kind")
	}
}

func record(out map[uint32]*entry, row rows.AbstractRow, depth uint32, uses uint64) {
	e, ok := out[row.ID]
	if !ok {
		e = &entry{id: row.ID, depth: noAssociatedRow}
		out[row.ID] = e
	}
	e.update(depth, uses, row)
}
