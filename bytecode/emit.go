package bytecode

import (
	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/rows"
)

// Emit lowers the compile tree rooted at root into a sealed Program.
// startRank is the granularity the program must be started at, normally
// compiler.StartRank of the tree the compile tree was lowered from.
func Emit(tree *compiletree.Tree, root arena.NodeID, startRank rows.Rank) Program {
	e := newEmitter()
	emitNode(e, tree, root)
	p := e.seal()
	p.StartRank = startRank
	return p
}

func emitNode(e *emitter, tree *compiletree.Tree, id arena.NodeID) {
	n := tree.Node(id)
	switch n.Kind {
	case compiletree.LoadRowJz:
		e.emit(Instruction{Op: OpLoadRow, Row: n.Row})
		lend := e.newLabel()
		e.emitBranch(OpJz, lend)
		emitNode(e, tree, n.Child)
		e.mark(lend)

	case compiletree.AndRowJz:
		e.emit(Instruction{Op: OpAndRow, Row: n.Row})
		lend := e.newLabel()
		e.emitBranch(OpJz, lend)
		emitNode(e, tree, n.Child)
		e.mark(lend)

	case compiletree.Or:
		e.emit(Instruction{Op: OpPush})
		emitNode(e, tree, n.Left)
		e.emit(Instruction{Op: OpPop})
		emitNode(e, tree, n.Right)

	case compiletree.RankDown:
		e.emit(Instruction{Op: OpLeftShiftOffset, Delta: n.Delta})
		e.emit(Instruction{Op: OpPush})
		lbody := e.newLabel()
		lend := e.newLabel()
		e.emitBranch(OpCall, lbody)
		e.emit(Instruction{Op: OpPop})
		e.emit(Instruction{Op: OpIncrementOffset})
		e.emitBranch(OpCall, lbody)
		e.emitBranch(OpJmp, lend)
		e.mark(lbody)
		emitNode(e, tree, n.Child)
		e.emit(Instruction{Op: OpReturn})
		e.mark(lend)
		e.emit(Instruction{Op: OpRightShiftOffset, Delta: n.Delta})

	case compiletree.Report:
		if n.Child == arena.InvalidNodeID {
			e.emit(Instruction{Op: OpReport})
			return
		}
		e.emit(Instruction{Op: OpPush})
		emitNode(e, tree, n.Child)
		e.emit(Instruction{Op: OpAndStack})
		lend := e.newLabel()
		e.emitBranch(OpJz, lend)
		e.emit(Instruction{Op: OpReport})
		e.mark(lend)

	case compiletree.AndTree:
		emitNode(e, tree, n.Left)
		e.emit(Instruction{Op: OpUpdateFlags})
		lend := e.newLabel()
		e.emitBranch(OpJz, lend)
		e.emit(Instruction{Op: OpPush})
		emitNode(e, tree, n.Right)
		e.emit(Instruction{Op: OpAndStack})
		e.mark(lend)

	case compiletree.OrTree:
		emitNode(e, tree, n.Left)
		e.emit(Instruction{Op: OpPush})
		emitNode(e, tree, n.Right)
		e.emit(Instruction{Op: OpOrStack})

	case compiletree.LoadRow:
		e.emit(Instruction{Op: OpLoadRow, Row: n.Row})

	case compiletree.Not:
		emitNode(e, tree, n.Child)
		e.emit(Instruction{Op: OpNot})

	default:
		panic("bytecode: unreachable compile node kind")
	}
}
