// Package format implements the textual forms of the pipeline's trees: the
// term-match-tree format (with a parser, so builder round-trips are
// testable), the row-tree and compile-tree formats, a bytecode
// disassembly, and the PlanRows dump. Only the AST structure and node
// names are load-bearing; the whitespace is one valid rendering of that
// structure, not a contract hosts may depend on byte-for-byte.
//
// The row-tree and compile-tree forms are deliberately Format-only: both
// are always produced by package planner or compiler, never typed in by a
// test author, so no parser is provided for them. See DESIGN.md for this
// scoping decision.
package format
