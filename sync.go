package memalloc

import (
	"log"
	"sync"
)

// Synchronized wraps a *Heap with an external mutex, as spec.md §5
// prescribes for multithreaded deployment: "the entire allocator API must
// be serialized by an external mutex, or the bucket array and
// arena-bound pointers replaced by per-thread state. Neither is part of
// this core." This is that external mutex.
type Synchronized struct {
	mu     sync.Mutex
	heap   *Heap
	logger *log.Logger // optional; set by SetLogger, never written to
}

// NewSynchronized wraps h for safe concurrent use. h must not be used
// directly (unsynchronized) afterwards.
func NewSynchronized(h *Heap) *Synchronized {
	return &Synchronized{heap: h}
}

// SetLogger attaches a logger to the wrapper; nil clears it. None of the
// wrapper's methods write to the logger: no lock-wait or contention
// diagnostics are emitted. Matches the teacher's own ambient-logging choice
// (plain *log.Logger, e.g. concurrency/gopool's log.Printf panic handler)
// rather than introducing a third-party logging library.
func (s *Synchronized) SetLogger(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

func (s *Synchronized) Alloc(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Alloc(size)
}

func (s *Synchronized) Calloc(n, size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Calloc(n, size)
}

func (s *Synchronized) Realloc(ptr []byte, size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Realloc(ptr, size)
}

func (s *Synchronized) Free(ptr []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heap.Free(ptr)
}

// Stats returns a point-in-time snapshot of the wrapped heap's state.
func (s *Synchronized) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Stats()
}
