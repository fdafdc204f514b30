package registry

// defaultRegistry backs the package-level Init/Shutdown/Default
// convenience: a thin wrapper over the explicit Registry context New
// returns — not the only way to use this package.
var defaultRegistry *Registry

// Init constructs the process-wide default registry. It fails with
// ErrAlreadyInitialized if called twice without an intervening
// Shutdown.
func Init(opts ...Option) error {
	if defaultRegistry != nil {
		return ErrAlreadyInitialized
	}

	r, err := New(opts...)
	if err != nil {
		return err
	}

	defaultRegistry = r

	return nil
}

// Shutdown tears down the process-wide default registry. It fails
// with ErrNotInitialized if Init was never called, or
// ErrPoolsOutstanding if any pool opened through it is still open.
func Shutdown() error {
	if defaultRegistry == nil {
		return ErrNotInitialized
	}

	if err := defaultRegistry.Close(); err != nil {
		return err
	}

	defaultRegistry = nil

	return nil
}

// Default returns the process-wide registry constructed by Init, or
// ErrNotInitialized if Init has not (yet, or still) been called.
func Default() (*Registry, error) {
	if defaultRegistry == nil {
		return nil, ErrNotInitialized
	}

	return defaultRegistry, nil
}
