package allocator

// SegmentState distinguishes an allocated span of a pool from a free
// ("gap") one.
type SegmentState uint8

const (
	Free SegmentState = iota
	Allocated
)

func (s SegmentState) String() string {
	if s == Allocated {
		return "Allocated"
	}

	return "Free"
}

// segment is one maximal contiguous run of a pool's bytes that is
// uniformly Allocated or Free. Segments are never addressed directly
// by pointer: they live in a segmentArena slot and are referenced by
// Handle, because the slot's backing array may move on growth.
type segment struct {
	offset     uint64
	size       uint64
	state      SegmentState
	prev, next int32 // arena slot index, -1 at the ends of the list
	live       bool
	generation uint32
}

// Handle identifies a segment slot and the generation it was issued
// for, so that a stale handle (one whose slot has since been reused)
// is detected instead of silently resolving to the wrong segment.
type Handle struct {
	index      int32
	generation uint32
}

// invalidHandle is returned from operations that fail before a handle
// can be produced.
var invalidHandle = Handle{index: -1}

// segmentArena is a grow-only vector of segment slots backing the
// segment list. Slots whose live flag is false are free for reuse; new
// segments are appended past the high-water mark only once no freed
// slot remains.
type segmentArena struct {
	slots     []segment
	nextFresh int32
	freeStack []int32
	live      int
	cfg       *Config
}

func newSegmentArena(cfg *Config) (*segmentArena, error) {
	slots, err := safeMakeSegments(cfg.NodeArenaInitCapacity)
	if err != nil {
		return nil, err
	}

	return &segmentArena{slots: slots, cfg: cfg}, nil
}

func (a *segmentArena) occupancy() float64 {
	return float64(a.live) / float64(len(a.slots))
}

// growIfNeeded multiplies the backing array's length by the configured
// expansion factor once occupancy exceeds the configured fill factor. Existing slot indices keep their meaning:
// only the backing array moves, not the logical slot numbering, so
// every Handle issued before a grow still resolves correctly — callers
// must still re-fetch any *segment pointer obtained before a call that
// might grow, since the old backing array is abandoned.
func (a *segmentArena) growIfNeeded() error {
	if a.occupancy() <= a.cfg.FillFactor {
		return nil
	}

	newCap := len(a.slots) * a.cfg.ExpansionFactor

	newSlots, err := safeMakeSegments(newCap)
	if err != nil {
		return err
	}

	copy(newSlots, a.slots)
	a.slots = newSlots

	return nil
}

// allocSlot reserves a slot for a new segment, reusing a freed one when
// available, and returns its index. The returned slot has live=true and
// a bumped generation; all other fields are the caller's to initialize.
func (a *segmentArena) allocSlot() (int32, error) {
	if n := len(a.freeStack); n > 0 {
		idx := a.freeStack[n-1]
		a.freeStack = a.freeStack[:n-1]
		a.slots[idx].live = true
		a.slots[idx].generation++
		a.live++

		return idx, nil
	}

	if err := a.growIfNeeded(); err != nil {
		return -1, err
	}

	idx := a.nextFresh
	a.nextFresh++
	a.slots[idx].live = true
	a.slots[idx].generation = 1
	a.live++

	return idx, nil
}

// freeSlot marks a slot reusable. It does not clear offset/size/links;
// those are overwritten the next time the slot is handed out.
func (a *segmentArena) freeSlot(idx int32) {
	a.slots[idx].live = false
	a.freeStack = append(a.freeStack, idx)
	a.live--
}

// get returns a pointer to the slot at idx. The pointer is only valid
// until the next call that may grow the arena (growIfNeeded or
// allocSlot); callers must not hold it across such a call.
func (a *segmentArena) get(idx int32) *segment {
	return &a.slots[idx]
}

// resolve validates a Handle against its slot's liveness and
// generation, returning false for a stale or out-of-range handle.
func (a *segmentArena) resolve(h Handle) (*segment, bool) {
	if h.index < 0 || int(h.index) >= len(a.slots) {
		return nil, false
	}

	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, false
	}

	return s, true
}

func (a *segmentArena) handleOf(idx int32) Handle {
	return Handle{index: idx, generation: a.slots[idx].generation}
}
