package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/rows"
)

// demoSlice is cmd/bitfunnel's own shard.Slice: a map from RowId to
// quadword data, defaulting any row it has no explicit data for to
// all-ones (every document matches), so `query` is runnable against rows
// the CLI's demo data doesn't bother to spell out.
type demoSlice struct {
	capacity int
	data     map[rows.RowId][]uint64
}

func newDemoSlice(capacity int) *demoSlice {
	return &demoSlice{capacity: capacity, data: make(map[rows.RowId][]uint64)}
}

func (s *demoSlice) Capacity() int { return s.capacity }

func (s *demoSlice) RowData(row rows.RowId) []uint64 {
	if d, ok := s.data[row]; ok {
		return d
	}
	quadwords := s.capacity / 64
	if quadwords == 0 {
		quadwords = 1
	}
	allOnes := make([]uint64, quadwords)
	for i := range allOnes {
		allOnes[i] = ^uint64(0)
	}
	return allOnes
}

// parseSliceFile reads the demo slice format:
//
//	# comment
//	CAPACITY <bits>
//	<rank> <index> <hex-quadword> [<hex-quadword> ...]
func parseSliceFile(r io.Reader) (*demoSlice, error) {
	capacity := 64
	entries := make(map[rows.RowId][]uint64)
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "CAPACITY" {
			if len(fields) != 2 {
				return nil, errors.Errorf("slice file line %d: expected \"CAPACITY <bits>\"", lineNo)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "slice file line %d: capacity", lineNo)
			}
			capacity = n
			continue
		}
		if len(fields) < 3 {
			return nil, errors.Errorf("slice file line %d: expected \"<rank> <index> <hex-quadword>...\"", lineNo)
		}
		rank, err := strconv.ParseUint(fields[0], 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "slice file line %d: rank", lineNo)
		}
		index, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "slice file line %d: index", lineNo)
		}
		quadwords := make([]uint64, 0, len(fields)-2)
		for _, f := range fields[2:] {
			v, err := strconv.ParseUint(f, 16, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "slice file line %d: quadword", lineNo)
			}
			quadwords = append(quadwords, v)
		}
		entries[rows.RowId{Rank: rows.Rank(rank), Index: uint32(index)}] = quadwords
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "slice file: scanning")
	}
	s := newDemoSlice(capacity)
	s.data = entries
	return s, nil
}
