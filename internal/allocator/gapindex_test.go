package allocator

import "testing"

func newTestGapIndex(t *testing.T) *gapIndex {
	t.Helper()

	cfg := defaultConfig()
	cfg.GapIndexInitCapacity = 4

	g, err := newGapIndex(cfg)
	if err != nil {
		t.Fatalf("newGapIndex: %v", err)
	}

	return g
}

func TestGapIndexInsertKeepsNonIncreasingOrder(t *testing.T) {
	g := newTestGapIndex(t)

	sizes := []uint64{10, 50, 30, 5, 40}
	for i, size := range sizes {
		if err := g.insert(size, Handle{index: int32(i), generation: 1}); err != nil {
			t.Fatalf("insert(%d): %v", size, err)
		}
	}

	if g.len() != len(sizes) {
		t.Fatalf("len() = %d, want %d", g.len(), len(sizes))
	}

	for i := 1; i < g.len(); i++ {
		if g.entries[i-1].size < g.entries[i].size {
			t.Fatalf("order violated at %d: %d < %d", i, g.entries[i-1].size, g.entries[i].size)
		}
	}
}

func TestGapIndexRemove(t *testing.T) {
	g := newTestGapIndex(t)

	hA := Handle{index: 0, generation: 1}
	hB := Handle{index: 1, generation: 1}
	hC := Handle{index: 2, generation: 1}

	_ = g.insert(10, hA)
	_ = g.insert(20, hB)
	_ = g.insert(30, hC)

	t.Run("removes a present handle and reports true", func(t *testing.T) {
		if ok := g.remove(hB); !ok {
			t.Fatal("expected remove to find hB")
		}

		if g.len() != 2 {
			t.Fatalf("len() = %d, want 2", g.len())
		}

		for _, e := range g.entries[:g.len()] {
			if e.handle == hB {
				t.Fatal("hB still present after remove")
			}
		}
	})

	t.Run("removing an absent handle reports false and leaves state untouched", func(t *testing.T) {
		before := g.len()

		if ok := g.remove(Handle{index: 99, generation: 1}); ok {
			t.Fatal("expected remove of absent handle to report false")
		}

		if g.len() != before {
			t.Fatalf("len() changed from %d to %d on a no-op remove", before, g.len())
		}
	})
}

func TestGapIndexBestFit(t *testing.T) {
	g := newTestGapIndex(t)

	hSmall := Handle{index: 0, generation: 1}
	hMed := Handle{index: 1, generation: 1}
	hBig := Handle{index: 2, generation: 1}

	_ = g.insert(100, hBig)
	_ = g.insert(10, hSmall)
	_ = g.insert(50, hMed)

	t.Run("prefers the smallest entry that still fits", func(t *testing.T) {
		h, ok := g.bestFit(20)
		if !ok {
			t.Fatal("expected a fit")
		}

		if h != hMed {
			t.Fatalf("bestFit(20) = %+v, want %+v (size 50)", h, hMed)
		}
	})

	t.Run("exact match wins over anything larger", func(t *testing.T) {
		h, ok := g.bestFit(50)
		if !ok {
			t.Fatal("expected a fit")
		}

		if h != hMed {
			t.Fatalf("bestFit(50) = %+v, want %+v", h, hMed)
		}
	})

	t.Run("reports no fit when nothing is large enough", func(t *testing.T) {
		if _, ok := g.bestFit(1000); ok {
			t.Fatal("expected no fit for an oversized request")
		}
	})
}

func TestGapIndexGrows(t *testing.T) {
	cfg := defaultConfig()
	cfg.GapIndexInitCapacity = 1
	cfg.FillFactor = 0.5
	cfg.ExpansionFactor = 2

	g, err := newGapIndex(cfg)
	if err != nil {
		t.Fatalf("newGapIndex: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := g.insert(uint64(i+1), Handle{index: int32(i), generation: 1}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	if g.len() != 5 {
		t.Fatalf("len() = %d, want 5", g.len())
	}

	if len(g.entries) < 5 {
		t.Fatalf("backing array did not grow to fit: len=%d", len(g.entries))
	}
}
