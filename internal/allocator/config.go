package allocator

// Config tunes the growth policy of a pool's auxiliary structures: a
// struct of tuning knobs built up by functional Options over a
// default.
type Config struct {
	// NodeArenaInitCapacity is the number of segment slots allocated
	// when a pool is opened.
	NodeArenaInitCapacity int

	// GapIndexInitCapacity is the number of gap-index entries
	// allocated when a pool is opened.
	GapIndexInitCapacity int

	// FillFactor is the occupancy ratio above which the node arena or
	// gap index grows before the next mutation that would need the
	// extra room.
	FillFactor float64

	// ExpansionFactor is the multiplier applied to capacity on growth.
	ExpansionFactor int
}

// Option configures a Config.
type Option func(*Config)

// defaultConfig returns the default tuning constants: fill factor
// 0.75, expansion factor 2, node-arena and gap-index initial capacity
// 40.
func defaultConfig() *Config {
	return &Config{
		NodeArenaInitCapacity: 40,
		GapIndexInitCapacity:  40,
		FillFactor:            0.75,
		ExpansionFactor:       2,
	}
}

// WithNodeArenaInitialCapacity overrides the node arena's starting size.
func WithNodeArenaInitialCapacity(n int) Option {
	return func(c *Config) { c.NodeArenaInitCapacity = n }
}

// WithGapIndexInitialCapacity overrides the gap index's starting size.
func WithGapIndexInitialCapacity(n int) Option {
	return func(c *Config) { c.GapIndexInitCapacity = n }
}

// WithFillFactor overrides the occupancy threshold that triggers growth.
func WithFillFactor(f float64) Option {
	return func(c *Config) { c.FillFactor = f }
}

// WithExpansionFactor overrides the growth multiplier.
func WithExpansionFactor(n int) Option {
	return func(c *Config) { c.ExpansionFactor = n }
}
