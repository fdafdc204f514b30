package segpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryOpenAllocateFreeClose(t *testing.T) {
	lib, err := NewLibrary()
	require.NoError(t, err)

	defer func() { _ = lib.Shutdown() }()

	pool, id, err := lib.OpenPool(256, BestFit)
	require.NoError(t, err)

	got, ok := lib.Lookup(id)
	require.True(t, ok)
	assert.Same(t, pool, got)

	h, err := pool.Allocate(64)
	require.NoError(t, err)

	assert.Equal(t, 1, pool.NumAllocs())
	assert.EqualValues(t, 64, pool.AllocatedBytes())

	require.NoError(t, pool.Free(h))
	require.NoError(t, lib.ClosePool(id))

	_, ok = lib.Lookup(id)
	assert.False(t, ok)
}

func TestPackageLevelDefaultLibrary(t *testing.T) {
	require.NoError(t, Init())
	defer func() { _ = Shutdown() }()

	pool, id, err := OpenPool(128, FirstFit)
	require.NoError(t, err)
	assert.EqualValues(t, 128, pool.TotalSize())

	require.NoError(t, ClosePool(id))
}

func TestPolicyConstantsString(t *testing.T) {
	assert.Equal(t, "FirstFit", FirstFit.String())
	assert.Equal(t, "BestFit", BestFit.String())
}

func TestSegmentStateConstants(t *testing.T) {
	assert.Equal(t, "Free", Free.String())
	assert.Equal(t, "Allocated", Allocated.String())
}
