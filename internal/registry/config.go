package registry

// Config tunes the registry's own growth policy. Same shape as
// allocator.Config, kept as a separate type because the registry and a
// pool are independent growable structures with independent knobs.
type Config struct {
	InitCapacity    int
	FillFactor      float64
	ExpansionFactor int

	// MinVersion, if set, is a semver constraint (e.g. ">= 1.0.0") the
	// running library Version must satisfy for Init to succeed.
	MinVersion string
}

type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		InitCapacity:    20,
		FillFactor:      0.75,
		ExpansionFactor: 2,
	}
}

// WithInitialCapacity overrides the registry's starting slot count.
func WithInitialCapacity(n int) Option {
	return func(c *Config) { c.InitCapacity = n }
}

// WithFillFactor overrides the occupancy threshold that triggers growth.
func WithFillFactor(f float64) Option {
	return func(c *Config) { c.FillFactor = f }
}

// WithExpansionFactor overrides the growth multiplier.
func WithExpansionFactor(n int) Option {
	return func(c *Config) { c.ExpansionFactor = n }
}

// WithMinLibraryVersion requires the registry's Version to satisfy a
// semver constraint, failing Init with ErrIncompatibleVersion
// otherwise.
func WithMinLibraryVersion(constraint string) Option {
	return func(c *Config) { c.MinVersion = constraint }
}
