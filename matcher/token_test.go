package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerAcquireRelease(t *testing.T) {
	tm := NewTokenManager([32]byte{1, 2, 3})

	tok1, err := tm.Acquire()
	require.NoError(t, err)
	tok2, err := tm.Acquire()
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok2)
	assert.Equal(t, 2, tm.Outstanding())

	tm.Release(tok1)
	assert.Equal(t, 1, tm.Outstanding())
	tm.Release(tok2)
	assert.Equal(t, 0, tm.Outstanding())
}

func TestTokenManagerRefusesReconfigureWithOutstandingTokens(t *testing.T) {
	tm := NewTokenManager([32]byte{})
	tok, err := tm.Acquire()
	require.NoError(t, err)

	err = tm.BeginReconfigure()
	require.ErrorIs(t, err, ErrTokensOutstanding)

	tm.Release(tok)
	require.NoError(t, tm.BeginReconfigure())
}

func TestTokenManagerRefusesAcquireWhileReconfiguring(t *testing.T) {
	tm := NewTokenManager([32]byte{})
	require.NoError(t, tm.BeginReconfigure())

	_, err := tm.Acquire()
	require.ErrorIs(t, err, ErrReconfiguring)

	tm.EndReconfigure()
	_, err = tm.Acquire()
	require.NoError(t, err)
}
