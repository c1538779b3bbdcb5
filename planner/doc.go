// Package planner implements the term-plan converter: it resolves every
// term leaf in a termtree.Tree against a per-shard TermTable, producing a
// rowtree.Tree of abstract row references plus the rows.PlanRows table
// those references index into.
//
// It also builds the false-positive evaluation plan, a small shadow tree
// of term hashes used to re-verify candidate matches against a document's
// actual terms once it has been pulled off disk.
package planner
