// Package rewrite implements the match-tree rewriter: it turns an
// arbitrary rowtree.Tree into one whose top-level AND groups rows by
// descending rank, followed by OR-expanded subtrees and a rank-0 residue,
// so that package compiler can lower it into a rank-descending jump chain.
//
// Rows inside a NOT subtree must be evaluated at rank 0: a zero bit in a
// rank-r row only means "no document in this 2^r block matches", so
// complementing it above rank 0 is meaningless. There is no dedicated
// rank-up compile node; this package marks the affected Row leaves
// OutOfOrder, which keeps them out of the rank-descending chain and out of
// the program's start-rank computation, and the interpreter performs the
// actual promotion at read time: a rank-r row read at a rank-0 offset is
// fetched from its covering coarse quadword and each bit is spread over
// the 2^r finer positions it spans, so the complement is taken on the
// rank-0 view.
package rewrite
