// Package compiler implements the rank-down compiler: it lowers a
// rewritten rowtree.Tree (see package rewrite) into a compiletree.Tree by a
// single left-to-right traversal that tracks the rank of the most recently
// emitted row, bridging rank changes with RankDown nodes and terminating
// every path in a Report.
//
// An OR node's two (or, after cross-product expansion, more) branches are
// each compiled independently against the same continuation: whatever
// AND-siblings followed the OR in the rewritten tree must be distributed
// into every branch, since each branch ends in its own Report and both
// sides must run to completion.
//
// A multi-rank gap is never bridged by one wide RankDown: a RankDown's
// body runs exactly twice, covering the two halves of a single rank
// descent, so descending delta ranks takes delta nested single-rank
// RankDown nodes (2^delta leaf invocations in total).
//
// When an OR forks before any row has been loaded on the path, its
// branches do not automatically share a rank the way AND-siblings do: the
// compiled program runs under one vm offset fixed by the program's start
// rank (bytecode.Program.StartRank, the highest in-order row rank —
// computed by StartRank), so a branch whose own rows are all lower-rank
// than a sibling branch's must be prefixed with explicit RankDowns
// bridging it down from that shared rank before its own rows are read.
// compileOr computes this shared target across all branches up front.
package compiler
