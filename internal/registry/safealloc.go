package registry

import (
	"fmt"

	"github.com/segpool/segpool/internal/allocator"
)

// safeMakeSlots mirrors allocator's safeMake* helpers: it turns a
// make() panic into an ErrOutOfMemory-wrapped error instead of
// crashing the process, the technique bytes.Buffer.grow uses.
func safeMakeSlots(n int) (slots []slot, err error) {
	defer func() {
		if r := recover(); r != nil {
			slots, err = nil, fmt.Errorf("%w: %v", allocator.ErrOutOfMemory, r)
		}
	}()

	slots = make([]slot, n)

	return slots, nil
}
