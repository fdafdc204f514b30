package allocator

// gapEntry is one row of the gap index: a free segment's size and the
// handle that resolves it back to its segmentArena slot.
type gapEntry struct {
	size   uint64
	handle Handle
}

// gapIndex is a dense array of free segments kept in non-increasing
// order by size. Insert appends then bubbles the new entry left past
// any smaller neighbor, an insertion-sort pass scoped to one element.
// Remove locates by handle and compacts left. Best-fit scans from the
// tail, where the smallest free segments sort.
type gapIndex struct {
	entries []gapEntry
	count   int
	cfg     *Config
}

func newGapIndex(cfg *Config) (*gapIndex, error) {
	entries, err := safeMakeGapEntries(cfg.GapIndexInitCapacity)
	if err != nil {
		return nil, err
	}

	return &gapIndex{entries: entries, cfg: cfg}, nil
}

func (g *gapIndex) len() int { return g.count }

func (g *gapIndex) occupancy() float64 {
	return float64(g.count) / float64(len(g.entries))
}

func (g *gapIndex) growIfNeeded() error {
	if g.occupancy() <= g.cfg.FillFactor {
		return nil
	}

	newCap := len(g.entries) * g.cfg.ExpansionFactor

	newEntries, err := safeMakeGapEntries(newCap)
	if err != nil {
		return err
	}

	copy(newEntries, g.entries[:g.count])
	g.entries = newEntries

	return nil
}

// insert adds a (size, handle) entry and restores non-increasing order.
func (g *gapIndex) insert(size uint64, h Handle) error {
	if err := g.growIfNeeded(); err != nil {
		return err
	}

	g.entries[g.count] = gapEntry{size: size, handle: h}

	i := g.count
	g.count++

	for i > 0 && g.entries[i-1].size < g.entries[i].size {
		g.entries[i-1], g.entries[i] = g.entries[i], g.entries[i-1]
		i--
	}

	return nil
}

// remove deletes the entry for h, if present, compacting the array.
// Reports whether an entry was found.
func (g *gapIndex) remove(h Handle) bool {
	idx := -1

	for i := 0; i < g.count; i++ {
		if g.entries[i].handle == h {
			idx = i

			break
		}
	}

	if idx < 0 {
		return false
	}

	copy(g.entries[idx:g.count-1], g.entries[idx+1:g.count])
	g.count--

	return true
}

// bestFit scans from the small end (the tail) for the first entry that
// still fits want, which is the smallest fitting gap.
func (g *gapIndex) bestFit(want uint64) (Handle, bool) {
	for i := g.count - 1; i >= 0; i-- {
		if g.entries[i].size >= want {
			return g.entries[i].handle, true
		}
	}

	return invalidHandle, false
}
