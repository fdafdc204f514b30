package segpool

import (
	"github.com/google/uuid"

	"github.com/segpool/segpool/internal/allocator"
	"github.com/segpool/segpool/internal/registry"
)

// Policy selects how a Pool chooses among candidate free segments when
// allocating.
type Policy = allocator.Policy

const (
	FirstFit = allocator.FirstFit
	BestFit  = allocator.BestFit
)

// SegmentState distinguishes an allocated span of a pool from a free one.
type SegmentState = allocator.SegmentState

const (
	Free      = allocator.Free
	Allocated = allocator.Allocated
)

// SegmentInfo is one row of a Pool's Inspect snapshot.
type SegmentInfo = allocator.SegmentInfo

// Handle identifies a single allocation within a Pool. It stays valid
// until the corresponding Free call or the Pool's own Close.
type Handle = allocator.Handle

// Pool is a single backing buffer and the structures that track its
// allocated and free spans. See internal/allocator for the engine.
type Pool = allocator.Pool

// Errors re-export the allocation engine's and registry's sentinel
// error kinds for callers who only import the root package.
var (
	ErrOutOfMemory         = allocator.ErrOutOfMemory
	ErrNoMemory            = allocator.ErrNoMemory
	ErrInvalidArgument     = allocator.ErrInvalidArgument
	ErrUnknownHandle       = allocator.ErrUnknownHandle
	ErrPoolNotEmpty        = allocator.ErrPoolNotEmpty
	ErrAlreadyInitialized  = registry.ErrAlreadyInitialized
	ErrNotInitialized      = registry.ErrNotInitialized
	ErrPoolsOutstanding    = registry.ErrPoolsOutstanding
	ErrUnknownPool         = registry.ErrUnknownPool
	ErrIncompatibleVersion = registry.ErrIncompatibleVersion
)

// Option configures a Pool's auxiliary-structure growth policy at Open
// time (node-arena/gap-index initial capacity, fill factor, expansion
// factor).
type Option = allocator.Option

// LibraryOption configures a Library at New/Init time (registry
// initial capacity, fill factor, expansion factor, minimum-version
// constraint).
type LibraryOption = registry.Option

var (
	WithNodeArenaInitialCapacity = allocator.WithNodeArenaInitialCapacity
	WithGapIndexInitialCapacity  = allocator.WithGapIndexInitialCapacity
	WithFillFactor               = allocator.WithFillFactor
	WithExpansionFactor          = allocator.WithExpansionFactor

	WithRegistryInitialCapacity = registry.WithInitialCapacity
	WithRegistryFillFactor      = registry.WithFillFactor
	WithRegistryExpansionFactor = registry.WithExpansionFactor
	WithMinLibraryVersion       = registry.WithMinLibraryVersion
)

// Version is this library's own version.
const Version = registry.Version

// Library is an explicitly constructed registry context: a
// caller-owned table of open pools, independent of the package-level
// default registry that Init/Shutdown manage.
type Library struct {
	reg *registry.Registry
}

// NewLibrary constructs a standalone Library, bypassing the
// process-wide default registry.
func NewLibrary(opts ...LibraryOption) (*Library, error) {
	reg, err := registry.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Library{reg: reg}, nil
}

// OpenPool opens and registers a new pool.
func (l *Library) OpenPool(size uint64, policy Policy, opts ...Option) (*Pool, uuid.UUID, error) {
	return l.reg.OpenPool(size, policy, opts...)
}

// ClosePool closes a registered pool by id.
func (l *Library) ClosePool(id uuid.UUID) error {
	return l.reg.ClosePool(id)
}

// Lookup returns the pool registered under id, if any.
func (l *Library) Lookup(id uuid.UUID) (*Pool, bool) {
	return l.reg.Lookup(id)
}

// List returns every pool currently registered with this Library.
func (l *Library) List() []registry.PoolRef {
	return l.reg.List()
}

// Shutdown tears down this Library, failing with ErrPoolsOutstanding
// if any registered pool is still open.
func (l *Library) Shutdown() error {
	return l.reg.Close()
}

// Package-level convenience over one process-wide default Library,
// for callers who want implicit-context behavior instead of
// constructing and threading their own *Library.

// Init constructs the process-wide default registry.
func Init(opts ...LibraryOption) error {
	return registry.Init(opts...)
}

// Shutdown tears down the process-wide default registry.
func Shutdown() error {
	return registry.Shutdown()
}

// OpenPool opens and registers a pool against the process-wide
// default registry. Requires Init to have been called first.
func OpenPool(size uint64, policy Policy, opts ...Option) (*Pool, uuid.UUID, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, uuid.Nil, err
	}

	return reg.OpenPool(size, policy, opts...)
}

// ClosePool closes a pool registered against the process-wide default
// registry.
func ClosePool(id uuid.UUID) error {
	reg, err := registry.Default()
	if err != nil {
		return err
	}

	return reg.ClosePool(id)
}
