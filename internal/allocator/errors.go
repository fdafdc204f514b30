package allocator

import "errors"

// Sentinel errors for the pool allocation engine. Callers compare with
// errors.Is; call sites that have detail to add wrap these with
// fmt.Errorf("%w: ...") rather than a dedicated error-category type,
// and the others return them bare.
var (
	// ErrOutOfMemory is returned when the host allocator refuses a
	// node-arena or gap-index growth. The offending operation leaves
	// pool state unchanged.
	ErrOutOfMemory = errors.New("allocator: out of memory")

	// ErrNoMemory is returned when no existing free segment can
	// satisfy a request. No growth is attempted and no state changes.
	ErrNoMemory = errors.New("allocator: no memory")

	// ErrInvalidArgument covers a zero-size request or a malformed
	// handle caught by a cheap check.
	ErrInvalidArgument = errors.New("allocator: invalid argument")

	// ErrUnknownHandle is returned when a handle does not refer to a
	// live allocated segment in the pool it is presented to.
	ErrUnknownHandle = errors.New("allocator: unknown handle")

	// ErrPoolNotEmpty is returned by Close when the pool still has
	// outstanding allocations or more than one free segment.
	ErrPoolNotEmpty = errors.New("allocator: pool not empty")
)
