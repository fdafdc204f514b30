// Package registry implements a process-wide table of open pools: a
// grow-only array of pool records that pools join on open and leave
// (by tombstone, not compaction) on close. It is the one external
// collaborator the core allocation engine hooks into.
package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/segpool/segpool/internal/allocator"
)

// Version is the library's own version, checked against an optional
// WithMinLibraryVersion constraint at Init/New time.
const Version = "1.0.0"

// slot holds one registered pool. A tombstoned slot (live=false, pool
// nil) is reused by a later OpenPool before the backing array grows,
// so the registry never accumulates permanently dead slots.
type slot struct {
	id   uuid.UUID
	pool *allocator.Pool
	live bool
}

// Registry is a process-wide (or, if constructed explicitly rather
// than through Init, caller-scoped) table of open pools.
type Registry struct {
	slots     []slot
	nextFresh int32
	tombs     []int32
	liveCount int
	cfg       *Config
}

// New constructs a standalone registry. Most callers use the
// package-level Init/Shutdown/Default convenience instead, which
// manages one process-wide instance; New exists for callers who want
// an explicit, independently-lived context.
func New(opts ...Option) (*Registry, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.MinVersion != "" {
		constraint, err := semver.NewConstraint(cfg.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", allocator.ErrInvalidArgument, err)
		}

		running, err := semver.NewVersion(Version)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", allocator.ErrInvalidArgument, err)
		}

		if !constraint.Check(running) {
			return nil, fmt.Errorf("%w: library version %s does not satisfy %q", ErrIncompatibleVersion, Version, cfg.MinVersion)
		}
	}

	slots, err := safeMakeSlots(cfg.InitCapacity)
	if err != nil {
		return nil, err
	}

	return &Registry{slots: slots, cfg: cfg}, nil
}

func (r *Registry) occupancy() float64 {
	return float64(r.liveCount) / float64(len(r.slots))
}

func (r *Registry) growIfNeeded() error {
	if r.occupancy() <= r.cfg.FillFactor {
		return nil
	}

	newCap := len(r.slots) * r.cfg.ExpansionFactor

	newSlots, err := safeMakeSlots(newCap)
	if err != nil {
		return err
	}

	copy(newSlots, r.slots)
	r.slots = newSlots

	return nil
}

// OpenPool opens a new pool via allocator.Open and registers it,
// returning the pool itself and the uuid.UUID identity the registry
// tracks it under.
func (r *Registry) OpenPool(size uint64, policy allocator.Policy, opts ...allocator.Option) (*allocator.Pool, uuid.UUID, error) {
	pool, err := allocator.Open(size, policy, opts...)
	if err != nil {
		return nil, uuid.Nil, err
	}

	idx, err := r.reserveSlot()
	if err != nil {
		return nil, uuid.Nil, err
	}

	id := uuid.New()
	r.slots[idx] = slot{id: id, pool: pool, live: true}
	r.liveCount++

	return pool, id, nil
}

func (r *Registry) reserveSlot() (int32, error) {
	if n := len(r.tombs); n > 0 {
		idx := r.tombs[n-1]
		r.tombs = r.tombs[:n-1]

		return idx, nil
	}

	if err := r.growIfNeeded(); err != nil {
		return -1, err
	}

	idx := r.nextFresh
	r.nextFresh++

	return idx, nil
}

// ClosePool closes the pool registered under id via Pool.Close and, on
// success, tombstones its slot for reuse. Returns ErrUnknownPool for
// an unregistered id or the pool's own ErrPoolNotEmpty unchanged.
func (r *Registry) ClosePool(id uuid.UUID) error {
	idx := r.find(id)
	if idx < 0 {
		return ErrUnknownPool
	}

	if err := r.slots[idx].pool.Close(); err != nil {
		return err
	}

	r.slots[idx] = slot{}
	r.tombs = append(r.tombs, int32(idx))
	r.liveCount--

	return nil
}

// Lookup returns the pool registered under id, if any.
func (r *Registry) Lookup(id uuid.UUID) (*allocator.Pool, bool) {
	idx := r.find(id)
	if idx < 0 {
		return nil, false
	}

	return r.slots[idx].pool, true
}

// PoolRef names a live registered pool for reporting purposes.
type PoolRef struct {
	ID   uuid.UUID
	Pool *allocator.Pool
}

// List returns every currently-registered pool. Used only by external
// inspection tooling, not by the core allocation engine itself.
func (r *Registry) List() []PoolRef {
	out := make([]PoolRef, 0, r.liveCount)

	for i := int32(0); i < r.nextFresh; i++ {
		if r.slots[i].live {
			out = append(out, PoolRef{ID: r.slots[i].id, Pool: r.slots[i].pool})
		}
	}

	return out
}

// Close fails with ErrPoolsOutstanding if any registered pool has not
// been closed via ClosePool.
func (r *Registry) Close() error {
	if r.liveCount > 0 {
		return ErrPoolsOutstanding
	}

	return nil
}

func (r *Registry) find(id uuid.UUID) int {
	for i := int32(0); i < r.nextFresh; i++ {
		if r.slots[i].live && r.slots[i].id == id {
			return int(i)
		}
	}

	return -1
}
