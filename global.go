package memalloc

import (
	"sync"

	"github.com/irina-nita/memory-allocator/internal/osmem"
)

// defaultHeap is the process-wide singleton spec.md §9 asks for: "an
// implementer should enforce [the initialization contract] with a
// clearly-scoped singleton whose lifetime spans the process." It backs
// the package-level Alloc/Calloc/Realloc/Free below; Heap itself stays an
// ordinary, independently constructible type so tests never have to share
// this instance.
var (
	defaultHeapOnce sync.Once
	defaultHeap     *Heap
)

func theHeap() *Heap {
	defaultHeapOnce.Do(func() {
		defaultHeap = NewHeap(osmem.NewUnixBackend(arenaReserveBytes()))
		defaultHeap.SetAudit(auditEnabled())
	})
	return defaultHeap
}

// Alloc allocates size bytes from the process-wide default heap. See
// (*Heap).Alloc.
func Alloc(size int) []byte { return theHeap().Alloc(size) }

// Calloc allocates n*size zeroed bytes from the process-wide default
// heap. See (*Heap).Calloc.
func Calloc(n, size int) []byte { return theHeap().Calloc(n, size) }

// Realloc resizes ptr (previously returned by Alloc/Calloc/Realloc on the
// default heap) to size bytes. See (*Heap).Realloc.
func Realloc(ptr []byte, size int) []byte { return theHeap().Realloc(ptr, size) }

// Free releases ptr back to the process-wide default heap. See
// (*Heap).Free.
func Free(ptr []byte) { theHeap().Free(ptr) }
