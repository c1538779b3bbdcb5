package matcher

import "github.com/pkg/errors"

// ErrResultsBufferFull is returned when Append is called on a ResultsBuffer
// that has already reached its plan-time capacity. This is fatal for the
// query: the caller must abort and no partial results are honored.
var ErrResultsBufferFull = errors.New("matcher: results buffer full")

// ErrInterpreterOverflow is returned when the interpreter's value or call
// stack would exceed its bound. This indicates a bug in planning (stack
// depth must be bounded at compile time), not a user-facing condition; it
// is still returned rather than panicking so a host can log and abort the
// one query instead of the process.
var ErrInterpreterOverflow = errors.New("matcher: interpreter stack overflow")

// ErrReconfiguring is returned by TokenManager.Acquire while a
// reconfiguration is in progress.
var ErrReconfiguring = errors.New("matcher: token manager is reconfiguring")

// ErrTokensOutstanding is returned by TokenManager.BeginReconfigure when
// queries still hold tokens: every outstanding Token must be released
// before a reconfiguration proceeds.
var ErrTokensOutstanding = errors.New("matcher: tokens still outstanding")
