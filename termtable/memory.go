package termtable

import (
	"sync"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/term"
)

// Memory is a simple, explicit TermTable: a map from term.Hash to a set of
// RowIds, plus a bounded adhoc pool for unrecognized hashes. Building a
// production TermTable (assigning rows by posting-count density, persisting
// to disk) is out of the core's scope; Memory exists to
// make the planner and interpreter testable and to back small, in-process
// deployments of cmd/bitfunnel.
type Memory struct {
	mu        sync.Mutex
	matchAll  rows.RowId
	exact     map[term.Hash][]rows.RowId
	adhoc     map[term.Hash]rows.RowId
	nextAdhoc uint32
	maxAdhoc  uint32
	adhocRank rows.Rank
}

// NewMemory constructs a Memory term table. matchAll is the row ANDed into
// every query to implement soft-delete; maxAdhocRows bounds
// how many distinct unrecognized hashes may be assigned a synthetic row
// before Lookup starts returning ErrRowCountExceeded. adhocRank is the rank
// assigned to every synthesized row (typically 0).
func NewMemory(matchAll rows.RowId, maxAdhocRows uint32, adhocRank rows.Rank) *Memory {
	return &Memory{
		matchAll:  matchAll,
		exact:     make(map[term.Hash][]rows.RowId),
		adhoc:     make(map[term.Hash]rows.RowId),
		maxAdhoc:  maxAdhocRows,
		adhocRank: adhocRank,
	}
}

// AddRow assigns rowID to hash. Mutating a Memory after any query has
// begun is forbidden; Memory does not itself enforce that, since
// enforcement belongs to whatever owns the seal/reconfiguration boundary
// (package matcher's TokenManager).
func (m *Memory) AddRow(hash term.Hash, row rows.RowId) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exact[hash] = append(m.exact[hash], row)
}

// Lookup implements TermTable.Lookup.
func (m *Memory) Lookup(hash term.Hash) ([]rows.RowId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rs, ok := m.exact[hash]; ok {
		out := make([]rows.RowId, len(rs))
		copy(out, rs)
		return out, nil
	}
	if row, ok := m.adhoc[hash]; ok {
		return []rows.RowId{row}, nil
	}
	if m.nextAdhoc >= m.maxAdhoc {
		return nil, ErrRowCountExceeded
	}
	row := rows.RowId{Rank: m.adhocRank, Index: m.nextAdhoc}
	m.adhoc[hash] = row
	m.nextAdhoc++
	return []rows.RowId{row}, nil
}

// MatchAllRow implements TermTable.MatchAllRow.
func (m *Memory) MatchAllRow() rows.RowId {
	return m.matchAll
}

// StaticConfiguration is the simplest IndexConfiguration: a fixed slice of
// per-shard TermTables.
type StaticConfiguration struct {
	Tables []TermTable
}

func (c *StaticConfiguration) NumShards() int { return len(c.Tables) }

func (c *StaticConfiguration) TermTable(shard rows.ShardID) TermTable {
	return c.Tables[shard]
}
