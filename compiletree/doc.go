// Package compiletree implements the CompileNode tagged union: the
// rank-down layer (LoadRowJz, AndRowJz, Or, RankDown, Report) and the
// rank-zero layer (AndTree, LoadRow, Not, OrTree) that package compiler
// emits into and package bytecode lowers from.
package compiletree
