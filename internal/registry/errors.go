package registry

import "errors"

var (
	// ErrAlreadyInitialized is returned by Init when the default
	// registry has already been constructed.
	ErrAlreadyInitialized = errors.New("registry: already initialized")

	// ErrNotInitialized is returned by Shutdown or Default when Init
	// has not been called (or Shutdown already has).
	ErrNotInitialized = errors.New("registry: not initialized")

	// ErrPoolsOutstanding is returned by Close/Shutdown when pools are
	// still registered as open.
	ErrPoolsOutstanding = errors.New("registry: pools outstanding")

	// ErrUnknownPool is returned when an id does not name a
	// currently-registered pool.
	ErrUnknownPool = errors.New("registry: unknown pool")

	// ErrIncompatibleVersion is returned by Init/New when the running
	// library version fails a caller-supplied minimum-version
	// constraint.
	ErrIncompatibleVersion = errors.New("registry: incompatible library version")
)
