package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/term"
	"github.com/bitfunnel/bitfunnel/termtable"
)

// demoTermTable is this CLI's own minimal termtable.TermTable: a map from
// term.Hash to RowIds read from a manifest, plus deterministic adhoc-row
// synthesis for unrecognized hashes. It exists only so
// `plan`/`analyze`/`query` have something concrete to drive; it is not a
// production term table format.
type demoTermTable struct {
	byHash        map[term.Hash][]rows.RowId
	matchAll      rows.RowId
	adhocRowCount uint32
}

func (d *demoTermTable) Lookup(hash term.Hash) ([]rows.RowId, error) {
	if rs, ok := d.byHash[hash]; ok {
		return rs, nil
	}
	if d.adhocRowCount == 0 {
		return nil, termtable.ErrTermNotFound
	}
	idx := uint32(hash) % d.adhocRowCount
	return []rows.RowId{{Rank: 0, Index: idx}}, nil
}

func (d *demoTermTable) MatchAllRow() rows.RowId { return d.matchAll }

// demoIndexConfiguration replicates one demoTermTable across numShards
// shards: enough to exercise the planner's per-shard Lookup fan-out
// (converter.go's resolveHash) without this CLI needing a real multi-shard
// corpus.
type demoIndexConfiguration struct {
	table     *demoTermTable
	numShards int
}

func (c *demoIndexConfiguration) NumShards() int { return c.numShards }

func (c *demoIndexConfiguration) TermTable(rows.ShardID) termtable.TermTable { return c.table }

// parseManifest reads the demo manifest format:
//
//	# comment
//	MATCHALL <rank> <index>
//	ADHOC <row-count>
//	<hex-hash> <rank> <index> [<rank> <index> ...]
//
// one term per line: split on whitespace, no generic config-file library.
func parseManifest(r io.Reader) (*demoTermTable, error) {
	t := &demoTermTable{byHash: make(map[term.Hash][]rows.RowId)}
	sc := bufio.NewScanner(r)
	matchAllSet := false
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "MATCHALL":
			row, err := parseRowID(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "manifest line %d", lineNo)
			}
			t.matchAll = row[0]
			matchAllSet = true

		case "ADHOC":
			if len(fields) != 2 {
				return nil, errors.Errorf("manifest line %d: expected \"ADHOC <row-count>\"", lineNo)
			}
			n, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "manifest line %d: adhoc row count", lineNo)
			}
			t.adhocRowCount = uint32(n)

		default:
			hash, err := strconv.ParseUint(fields[0], 16, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "manifest line %d: hash", lineNo)
			}
			rowIDs, err := parseRowID(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "manifest line %d", lineNo)
			}
			t.byHash[term.Hash(hash)] = rowIDs
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "manifest: scanning")
	}
	if !matchAllSet {
		return nil, errors.New("manifest: missing MATCHALL line")
	}
	return t, nil
}

// parseRowID parses one or more "<rank> <index>" pairs from fields.
func parseRowID(fields []string) ([]rows.RowId, error) {
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, errors.New("expected one or more \"<rank> <index>\" pairs")
	}
	out := make([]rows.RowId, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		rank, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return nil, errors.Wrap(err, "rank")
		}
		index, err := strconv.ParseUint(fields[i+1], 10, 32)
		if err != nil {
			return nil, errors.Wrap(err, "index")
		}
		out = append(out, rows.RowId{Rank: rows.Rank(rank), Index: uint32(index)})
	}
	return out, nil
}
