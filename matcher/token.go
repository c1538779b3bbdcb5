package matcher

import (
	"encoding/binary"
	"sync"

	"github.com/minio/highwayhash"
)

// Token is an opaque handle a query holds for the lifetime of its
// interpreter loop. It gives a query read access to the
// shared state — TermTable, shard.Definition, Slices — that a
// reconfiguration would otherwise mutate out from under it.
type Token uint64

// TokenManager issues and tracks Tokens, refusing new ones while a
// reconfiguration is in flight and refusing to start a reconfiguration
// while tokens are outstanding. Tokens are derived from a keyed
// highwayhash over a monotonic counter: unguessable enough that a host can
// safely hand them to callers outside this package, cheap enough to
// validate with a map lookup.
type TokenManager struct {
	mu            sync.Mutex
	key           [highwayhash.Size]byte
	counter       uint64
	outstanding   map[Token]struct{}
	reconfiguring bool
}

// NewTokenManager creates a TokenManager keyed by key. key should be
// generated once per process (e.g. from crypto/rand) and kept private; it
// only needs to be unpredictable; it is rekeying material, not a secret
// protecting anything cryptographically sensitive.
func NewTokenManager(key [highwayhash.Size]byte) *TokenManager {
	return &TokenManager{key: key, outstanding: make(map[Token]struct{})}
}

// Acquire issues a fresh Token, or ErrReconfiguring if a reconfiguration is
// in progress.
func (tm *TokenManager) Acquire() (Token, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.reconfiguring {
		return 0, ErrReconfiguring
	}
	tm.counter++
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], tm.counter)
	digest := highwayhash.Sum(buf[:], tm.key[:])
	tok := Token(binary.LittleEndian.Uint64(digest[:8]))
	tm.outstanding[tok] = struct{}{}
	return tok, nil
}

// Release returns tok to the manager once its query's interpreter loop has
// finished. Releasing an unknown or already-released Token is a no-op.
func (tm *TokenManager) Release(tok Token) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	delete(tm.outstanding, tok)
}

// Outstanding returns how many Tokens are currently held.
func (tm *TokenManager) Outstanding() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.outstanding)
}

// BeginReconfigure marks the manager as reconfiguring, refusing further
// Acquire calls, if and only if no Tokens are currently outstanding.
// Otherwise it returns ErrTokensOutstanding and leaves the manager
// unchanged.
func (tm *TokenManager) BeginReconfigure() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if len(tm.outstanding) > 0 {
		return ErrTokensOutstanding
	}
	tm.reconfiguring = true
	return nil
}

// EndReconfigure clears the reconfiguring flag, allowing Acquire to issue
// Tokens again.
func (tm *TokenManager) EndReconfigure() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.reconfiguring = false
}
