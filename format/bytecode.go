package format

import (
	"fmt"
	"strings"

	"github.com/bitfunnel/bitfunnel/bytecode"
)

// Bytecode renders every instruction of program, one per line, prefixed
// with its absolute index so jump/call targets are easy to follow by eye.
// This is diagnostic output only; it is not meant to round-trip.
func Bytecode(program *bytecode.Program) string {
	var b strings.Builder
	for i, instr := range program.Instructions {
		fmt.Fprintf(&b, "%4d: %s", i, instr.Op)
		switch instr.Op {
		case bytecode.OpLoadRow, bytecode.OpAndRow:
			fmt.Fprintf(&b, " Row%s", instr.Row)
		case bytecode.OpJz, bytecode.OpCall, bytecode.OpJmp:
			fmt.Fprintf(&b, " %d", instr.Target)
		case bytecode.OpLeftShiftOffset, bytecode.OpRightShiftOffset:
			fmt.Fprintf(&b, " %d", instr.Delta)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
