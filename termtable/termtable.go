package termtable

import (
	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/term"
)

// ErrTermNotFound is returned only when a term table is queried with a
// hash outside its adhoc range and cannot synthesize a row for it. A
// well-formed TermTable configured with adhoc row capacity should not
// normally return this.
var ErrTermNotFound = errors.New("termtable: term not found")

// ErrRowCountExceeded is returned when a term table has exhausted its
// configured adhoc row budget, or when a caller asks for more shards than
// an index supports.
var ErrRowCountExceeded = errors.New("termtable: row count exceeded")

// TermTable is the read-only interface the planner (package planner)
// consults to resolve a term's hash into physical rows. Building one —
// assigning rows to terms, sizing the adhoc pool, persisting the result —
// is explicitly out of the core's scope; only Lookup and MatchAllRow are
// consumed here.
type TermTable interface {
	// Lookup returns the RowIds assigned to hash. An unrecognized hash is
	// not an error: implementations synthesize an adhoc row deterministically
	// so that repeated queries for the same unknown term are stable.
	Lookup(hash term.Hash) ([]rows.RowId, error)

	// MatchAllRow returns the row whose bits are all-ones for live
	// documents and zero for soft-deleted ones. It is
	// present in every term table and is ANDed into every query by the
	// planner to implement soft-delete.
	MatchAllRow() rows.RowId
}

// IndexConfiguration gives the planner access to every shard's TermTable.
type IndexConfiguration interface {
	// NumShards returns the number of shards in the index.
	NumShards() int

	// TermTable returns the TermTable for the given shard.
	TermTable(shard rows.ShardID) TermTable
}
