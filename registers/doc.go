// Package registers implements the register allocator: it walks a
// compiletree.Tree once, computing for every distinct abstract row the
// depth (how many rows are evaluated before it on its root-to-leaf path)
// and uses (how many times it is dynamically evaluated against one
// document column, doubling under every enclosing RankDown), then hands
// out a fixed bank of registers to the rows sorted by (depth ascending,
// uses descending, id ascending) — the rows evaluated earliest and most
// often get the scarce registers; everything else stays memory-resident.
package registers
