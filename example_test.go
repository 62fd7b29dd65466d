package memalloc

import (
	"fmt"

	"github.com/irina-nita/memory-allocator/internal/osmem"
)

func Example() {
	h := NewHeap(osmem.NewFakeBackend(1<<20, 4096))

	b1 := h.Alloc(100)  // rounds up to a 104-byte block
	b2 := h.Alloc(2000) // exceeds the small-block ceiling, served by a mapping

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))

	h.Free(b1)
	h.Free(b2)

	// Output:
	// b1: len=100 cap=104
	// b2: len=2000 cap=2000
}
