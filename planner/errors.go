package planner

import "github.com/pkg/errors"

// ErrShardMismatch is returned when a term resolves to a different number
// of rows, or rows of different rank, across shards. A well-formed index
// never produces this; it indicates a misconfigured TermTable set.
var ErrShardMismatch = errors.New("planner: term resolves inconsistently across shards")
