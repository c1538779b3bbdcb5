// Package bytecode implements the instruction emitter and Program: it
// lowers a compiletree.Tree to a flat slice of Instructions, resolving the
// emitter's internal labels to absolute instruction indices before
// returning. Labels never appear in a sealed Program; package matcher's
// Interpreter only ever sees absolute jump targets.
package bytecode
