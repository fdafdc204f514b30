// Package allocator implements the per-pool sub-allocation engine: a
// doubly-linked segment list over a single backing buffer, a node
// arena backing the list's records, a gap index for best-fit queries,
// and the allocate/free operations that keep all three consistent.
//
// The package is single-threaded by design: a Pool is owned by at
// most one caller at a time and does no internal locking, since this
// allocator never needs to survive concurrent access the way a shared
// runtime allocator does.
package allocator

import "fmt"

// Policy selects how Allocate chooses among candidate free segments.
type Policy int

const (
	FirstFit Policy = iota
	BestFit
)

func (p Policy) String() string {
	if p == BestFit {
		return "BestFit"
	}

	return "FirstFit"
}

// SegmentInfo is one row of Inspect's read-only snapshot of the
// segment list, in offset order.
type SegmentInfo struct {
	Offset uint64
	Size   uint64
	State  SegmentState
}

// Pool owns a single backing buffer and the structures that track its
// allocated and free spans: the segment list (via head/tail slot
// indices into arena), the node arena, and the gap index.
type Pool struct {
	buf    []byte
	policy Policy
	cfg    *Config
	arena  *segmentArena
	gaps   *gapIndex

	head, tail int32

	numAllocs      int
	allocatedBytes uint64
	numGaps        int
}

// Open creates a pool of size bytes with a single free segment
// spanning it. Any failure during construction leaves nothing for the
// caller to release: Go's allocator has no explicit free, so the
// partial buffer/arena/index (if any were created before a later step
// failed) are simply left for the garbage collector.
func Open(size uint64, policy Policy, opts ...Option) (*Pool, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: pool size must be greater than zero", ErrInvalidArgument)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	buf, err := safeMakeBytes(size)
	if err != nil {
		return nil, err
	}

	arena, err := newSegmentArena(cfg)
	if err != nil {
		return nil, err
	}

	gaps, err := newGapIndex(cfg)
	if err != nil {
		return nil, err
	}

	idx, err := arena.allocSlot()
	if err != nil {
		return nil, err
	}

	seg := arena.get(idx)
	seg.offset, seg.size, seg.state, seg.prev, seg.next = 0, size, Free, -1, -1

	if err := gaps.insert(size, arena.handleOf(idx)); err != nil {
		return nil, err
	}

	return &Pool{
		buf:     buf,
		policy:  policy,
		cfg:     cfg,
		arena:   arena,
		gaps:    gaps,
		head:    idx,
		tail:    idx,
		numGaps: 1,
	}, nil
}

// Close releases the pool's backing buffer, node arena, and gap index.
// It fails if the pool has outstanding allocations or more than the
// single free segment a freshly merged pool would have.
func (p *Pool) Close() error {
	if p.numAllocs != 0 || p.numGaps != 1 {
		return ErrPoolNotEmpty
	}

	p.buf, p.arena, p.gaps = nil, nil, nil

	return nil
}

// Policy returns the pool's placement policy.
func (p *Pool) Policy() Policy { return p.policy }

// TotalSize returns the pool's backing buffer size.
func (p *Pool) TotalSize() uint64 { return uint64(len(p.buf)) }

// NumAllocs returns the number of live allocations.
func (p *Pool) NumAllocs() int { return p.numAllocs }

// AllocatedBytes returns the sum of sizes of all allocated segments.
func (p *Pool) AllocatedBytes() uint64 { return p.allocatedBytes }

// NumGaps returns the number of free segments, which is also the gap
// index's length.
func (p *Pool) NumGaps() int { return p.numGaps }

// Allocate carves size bytes out of a free segment chosen by the
// pool's policy, splitting off the remainder as a new free segment
// when the candidate is larger than requested.
func (p *Pool) Allocate(size uint64) (Handle, error) {
	if size == 0 {
		return invalidHandle, fmt.Errorf("%w: allocation size must be greater than zero", ErrInvalidArgument)
	}

	if err := p.arena.growIfNeeded(); err != nil {
		return invalidHandle, err
	}

	// Grow the gap index here too, before anything is mutated: the split
	// below removes one entry before it inserts one, so growing now means
	// that insert does not need to grow after the list has been spliced.
	if err := p.gaps.growIfNeeded(); err != nil {
		return invalidHandle, err
	}

	candidateIdx, ok := p.findCandidate(size)
	if !ok {
		return invalidHandle, ErrNoMemory
	}

	candidate := p.arena.get(candidateIdx)
	remainder := candidate.size - size
	candHandle := p.arena.handleOf(candidateIdx)

	p.gaps.remove(candHandle)
	candidate.state = Allocated
	candidate.size = size
	p.numAllocs++
	p.allocatedBytes += size

	if remainder > 0 {
		newIdx, err := p.arena.allocSlot()
		if err != nil {
			// The candidate is already committed as Allocated at its
			// original size minus nothing lost: re-grow the slack back
			// onto it so the pool stays internally consistent, and
			// surface the failure.
			candidate = p.arena.get(candidateIdx)
			candidate.size += remainder
			candidate.state = Free
			p.numAllocs--
			p.allocatedBytes -= size
			_ = p.gaps.insert(candidate.size, p.arena.handleOf(candidateIdx))

			return invalidHandle, err
		}

		// allocSlot may have grown (and so reallocated) the arena;
		// re-resolve every pointer derived from it before splicing.
		candidate = p.arena.get(candidateIdx)
		newSeg := p.arena.get(newIdx)

		newSeg.offset = candidate.offset + size
		newSeg.size = remainder
		newSeg.state = Free
		newSeg.prev = candidateIdx
		newSeg.next = candidate.next

		oldNext := candidate.next
		candidate.next = newIdx

		if oldNext != -1 {
			p.arena.get(oldNext).prev = newIdx
		} else {
			p.tail = newIdx
		}

		if err := p.gaps.insert(remainder, p.arena.handleOf(newIdx)); err != nil {
			return invalidHandle, err
		}
		// num_gaps unchanged: one removed above, one added here.
	} else {
		p.numGaps--
	}

	return p.arena.handleOf(candidateIdx), nil
}

// findCandidate selects a free segment able to hold size, by policy,
// without mutating any state.
func (p *Pool) findCandidate(size uint64) (int32, bool) {
	switch p.policy {
	case BestFit:
		h, ok := p.gaps.bestFit(size)
		if !ok {
			return -1, false
		}

		return h.index, true
	default: // FirstFit
		for idx := p.head; idx != -1; {
			s := p.arena.get(idx)
			if s.state == Free && s.size >= size {
				return idx, true
			}

			idx = s.next
		}

		return -1, false
	}
}

// Free returns an allocated segment to the pool, coalescing with a
// free right and/or left neighbor so that no two adjacent free
// segments ever coexist.
func (p *Pool) Free(h Handle) error {
	s, ok := p.arena.resolve(h)
	if !ok || s.state != Allocated {
		return ErrUnknownHandle
	}

	// Grow the gap index, if needed, before any merge below removes or
	// splices anything: merges only ever shrink the index's occupancy
	// before this function's final insert, so growing now guarantees
	// that insert cannot fail partway through an already-applied merge.
	if err := p.gaps.growIfNeeded(); err != nil {
		return err
	}

	idx := h.index
	s.state = Free
	p.numAllocs--
	p.allocatedBytes -= s.size

	merges := 0

	if s.next != -1 {
		nextIdx := s.next
		next := p.arena.get(nextIdx)

		if next.state == Free {
			p.gaps.remove(p.arena.handleOf(nextIdx))
			s.size += next.size
			s.next = next.next

			if next.next != -1 {
				p.arena.get(next.next).prev = idx
			} else {
				p.tail = idx
			}

			p.arena.freeSlot(nextIdx)
			merges++
		}
	}

	if s.prev != -1 {
		prevIdx := s.prev
		prev := p.arena.get(prevIdx)

		if prev.state == Free {
			p.gaps.remove(p.arena.handleOf(prevIdx))
			prev.size += s.size
			prev.next = s.next

			if s.next != -1 {
				p.arena.get(s.next).prev = prevIdx
			} else {
				p.tail = prevIdx
			}

			p.arena.freeSlot(idx)
			merges++

			idx = prevIdx
			s = prev
		}
	}

	if err := p.gaps.insert(s.size, p.arena.handleOf(idx)); err != nil {
		return err
	}

	p.numGaps += 1 - merges

	return nil
}

// Inspect returns the segment list in offset order. The returned
// slice is owned by the caller; calling it never mutates pool state.
func (p *Pool) Inspect() []SegmentInfo {
	out := make([]SegmentInfo, 0, p.arena.live)

	for idx := p.head; idx != -1; {
		s := p.arena.get(idx)
		out = append(out, SegmentInfo{Offset: s.offset, Size: s.size, State: s.state})
		idx = s.next
	}

	return out
}
