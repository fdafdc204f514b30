package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segpool/segpool/internal/allocator"
)

func TestOpenAndClosePool(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	pool, id, err := r.OpenPool(1024, allocator.FirstFit)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Same(t, pool, got)

	require.NoError(t, r.ClosePool(id))

	_, ok = r.Lookup(id)
	assert.False(t, ok, "closed pool should no longer be registered")
}

func TestClosePoolUnknownID(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	err = r.ClosePool(uuid.New())
	assert.ErrorIs(t, err, ErrUnknownPool)
}

func TestClosePoolPropagatesPoolNotEmpty(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	pool, id, err := r.OpenPool(64, allocator.FirstFit)
	require.NoError(t, err)

	_, err = pool.Allocate(16)
	require.NoError(t, err)

	err = r.ClosePool(id)
	assert.ErrorIs(t, err, allocator.ErrPoolNotEmpty)

	// The pool stays registered: ClosePool must not tombstone the slot
	// when Pool.Close itself fails.
	_, ok := r.Lookup(id)
	assert.True(t, ok)
}

func TestSlotReuseAfterClose(t *testing.T) {
	r, err := New(WithInitialCapacity(1))
	require.NoError(t, err)

	_, id1, err := r.OpenPool(16, allocator.FirstFit)
	require.NoError(t, err)
	require.NoError(t, r.ClosePool(id1))

	_, id2, err := r.OpenPool(16, allocator.FirstFit)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, r.List(), 1)
}

func TestListReturnsOnlyLivePools(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, id1, err := r.OpenPool(16, allocator.FirstFit)
	require.NoError(t, err)

	_, _, err = r.OpenPool(16, allocator.FirstFit)
	require.NoError(t, err)

	require.NoError(t, r.ClosePool(id1))

	refs := r.List()
	assert.Len(t, refs, 1)

	for _, ref := range refs {
		assert.NotEqual(t, id1, ref.ID)
	}
}

func TestCloseFailsWithOutstandingPools(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, _, err = r.OpenPool(16, allocator.FirstFit)
	require.NoError(t, err)

	assert.ErrorIs(t, r.Close(), ErrPoolsOutstanding)
}

func TestMinLibraryVersionConstraint(t *testing.T) {
	t.Run("satisfied constraint succeeds", func(t *testing.T) {
		_, err := New(WithMinLibraryVersion(">= 1.0.0"))
		assert.NoError(t, err)
	})

	t.Run("unsatisfied constraint fails", func(t *testing.T) {
		_, err := New(WithMinLibraryVersion(">= 99.0.0"))
		assert.ErrorIs(t, err, ErrIncompatibleVersion)
	})

	t.Run("malformed constraint is an invalid argument", func(t *testing.T) {
		_, err := New(WithMinLibraryVersion("not-a-constraint!!"))
		assert.ErrorIs(t, err, allocator.ErrInvalidArgument)
	})
}

func TestDefaultRegistryLifecycle(t *testing.T) {
	t.Run("Shutdown before Init fails", func(t *testing.T) {
		require.Nil(t, defaultRegistry)
		assert.ErrorIs(t, Shutdown(), ErrNotInitialized)
	})

	t.Run("Init then double Init fails", func(t *testing.T) {
		require.NoError(t, Init())
		defer func() { _ = Shutdown() }()

		assert.ErrorIs(t, Init(), ErrAlreadyInitialized)
	})

	t.Run("OpenPool and ClosePool work against the default registry", func(t *testing.T) {
		require.NoError(t, Init())
		defer func() { _ = Shutdown() }()

		reg, err := Default()
		require.NoError(t, err)

		_, id, err := reg.OpenPool(32, allocator.FirstFit)
		require.NoError(t, err)
		require.NoError(t, reg.ClosePool(id))
	})

	t.Run("Shutdown fails while a pool is still open", func(t *testing.T) {
		require.NoError(t, Init())

		_, _, err := func() (*allocator.Pool, uuid.UUID, error) {
			reg, err := Default()
			require.NoError(t, err)

			return reg.OpenPool(32, allocator.FirstFit)
		}()
		require.NoError(t, err)

		err = Shutdown()
		assert.ErrorIs(t, err, ErrPoolsOutstanding)

		// Clean the slate for later tests rather than leaving the
		// package-level singleton initialized.
		defaultRegistry = nil
	})
}
