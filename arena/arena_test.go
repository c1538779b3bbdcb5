package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignsAndZeroes(t *testing.T) {
	a := New(4096)
	defer a.Close()

	b1, err := a.Alloc(3)
	require.NoError(t, err)
	require.Len(t, b1, 3)
	for _, c := range b1 {
		assert.Equal(t, byte(0), c)
	}
	b1[0] = 0xFF

	b2, err := a.Alloc(1)
	require.NoError(t, err)
	// b2 must not alias b1's storage even though 3 bytes were requested;
	// the allocator rounds up to an 8-byte boundary.
	b2[0] = 0xAA
	assert.Equal(t, byte(0xFF), b1[0])
}

func TestAllocExhausted(t *testing.T) {
	a := New(16)
	defer a.Close()

	_, err := a.Alloc(16)
	require.NoError(t, err)

	_, err = a.Alloc(1)
	assert.ErrorIs(t, err, ErrAllocationExhausted)
}

func TestChargeSharesBudgetWithAlloc(t *testing.T) {
	a := New(16)
	defer a.Close()

	require.NoError(t, a.Charge(8))
	_, err := a.Alloc(8)
	require.NoError(t, err)

	err = a.Charge(1)
	assert.ErrorIs(t, err, ErrAllocationExhausted)
}

func TestReset(t *testing.T) {
	a := New(16)
	defer a.Close()

	require.NoError(t, a.Charge(16))
	assert.Equal(t, 16, a.Used())

	a.Reset()
	assert.Equal(t, 0, a.Used())

	_, err := a.Alloc(16)
	assert.NoError(t, err)
}

func TestNodeIDZeroValueIsNotInvalid(t *testing.T) {
	// NodeID(0) must be a legitimate, distinguishable node id: only
	// InvalidNodeID (-1) means "absent".
	var id NodeID
	assert.Equal(t, NodeID(0), id)
	assert.NotEqual(t, InvalidNodeID, id)
}
