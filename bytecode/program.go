package bytecode

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"

	"github.com/bitfunnel/bitfunnel/rows"
)

// Opcode names one of the interpreter's primitive operations.
type Opcode uint8

const (
	OpLoadRow Opcode = iota
	OpAndRow
	OpJz
	OpPush
	OpPop
	OpAndStack
	OpOrStack
	OpNot
	OpUpdateFlags
	OpLeftShiftOffset
	OpRightShiftOffset
	OpIncrementOffset
	OpCall
	OpReturn
	OpJmp
	OpReport
)

func (op Opcode) String() string {
	switch op {
	case OpLoadRow:
		return "LoadRow"
	case OpAndRow:
		return "AndRow"
	case OpJz:
		return "Jz"
	case OpPush:
		return "Push"
	case OpPop:
		return "Pop"
	case OpAndStack:
		return "AndStack"
	case OpOrStack:
		return "OrStack"
	case OpNot:
		return "Not"
	case OpUpdateFlags:
		return "UpdateFlags"
	case OpLeftShiftOffset:
		return "LeftShiftOffset"
	case OpRightShiftOffset:
		return "RightShiftOffset"
	case OpIncrementOffset:
		return "IncrementOffset"
	case OpCall:
		return "Call"
	case OpReturn:
		return "Return"
	case OpJmp:
		return "Jmp"
	case OpReport:
		return "Report"
	default:
		return "Invalid"
	}
}

// Instruction is one program step. Only the fields relevant to Op are
// meaningful: Row for OpLoadRow/OpAndRow, Target (an absolute instruction
// index once sealed) for OpJz/OpCall/OpJmp, and Delta for
// OpLeftShiftOffset/OpRightShiftOffset.
type Instruction struct {
	Op     Opcode
	Row    rows.AbstractRow
	Target int
	Delta  rows.Rank
}

// Program is a sealed, executable instruction stream. It holds no reference
// to any shard or arena: the same Program is reused across every shard a
// query touches.
//
// StartRank is the offset granularity the program expects to be started at
// (compiler.StartRank of the rewritten tree). package matcher uses it to
// size the outer, coarsest-granularity offset loop it drives the program
// with (at rank r, the step is 2^r quadwords): the program starts at that
// rank and descends via RankDown, so iterating the slice at StartRank's
// granularity and letting the program's own RankDown/IncrementOffset pairs
// refine the offset covers every document exactly once. It cannot be
// recovered from the instruction stream itself: rows that the interpreter
// ranks up at read time (rows inside NOT subtrees, out-of-order rows) may
// carry ranks above StartRank without ever widening the outer loop.
type Program struct {
	Instructions []Instruction
	StartRank    rows.Rank
}

// Checksum returns a deterministic hash of the program's instructions,
// useful for asserting two compilations of the same match tree produced
// byte-identical programs.
func (p *Program) Checksum() uint64 {
	h := seahash.New()
	var buf [12]byte
	for _, instr := range p.Instructions {
		buf[0] = byte(instr.Op)
		binary.LittleEndian.PutUint32(buf[1:5], instr.Row.ID)
		buf[5] = byte(instr.Row.Rank)
		if instr.Row.Inverted {
			buf[6] = 1
		} else {
			buf[6] = 0
		}
		binary.LittleEndian.PutUint32(buf[7:11], uint32(instr.Target))
		buf[11] = byte(instr.Delta)
		h.Write(buf[:12])
	}
	return h.Sum64()
}
