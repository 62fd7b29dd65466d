package memalloc

import "github.com/irina-nita/memory-allocator/internal/osmem"

// Heap bundles the bucket array and arena bounds spec.md §3 describes as
// "process-wide mutable state" into one struct, so the core stays
// testable: each test builds its own Heap instead of fighting a package
// singleton. The public process-wide singleton lives in global.go, built
// on top of this type exactly the same way.
//
// Heap is not safe for concurrent use — see Synchronized.
type Heap struct {
	os osmem.Backend

	arenaStart uintptr // 0 until the first contiguous extension
	arenaEnd   uintptr

	buckets [numBuckets]uintptr

	audit bool
}

// NewHeap creates an empty Heap backed by the given OS primitive
// implementation. Arena bounds and bucket heads start at their
// null/absent marker, per spec.md §9's initialization contract; the
// first allocation establishes arenaStart.
func NewHeap(backend osmem.Backend) *Heap {
	return &Heap{os: backend}
}

// SetAudit toggles a post-operation Validate() call after every
// Alloc/Calloc/Realloc/Free — expensive, meant for tests and
// MEMALLOC_AUDIT=1 development runs, not production use.
func (h *Heap) SetAudit(enabled bool) {
	h.audit = enabled
}

func (h *Heap) maybeAudit() {
	if h.audit {
		if err := Validate(h); err != nil {
			fatalf(InvariantViolation, "post-operation audit failed: %v", err)
		}
	}
}

// getFreeBlock is spec.md §4.3's get_free_blk: find_fit, falling back to
// new_free_block.
func (h *Heap) getFreeBlock(size int) (headerAddr uintptr, payloadSize int, mapped bool) {
	if addr, sz, ok := h.findFit(size); ok {
		return addr, sz, false
	}
	return h.newFreeBlock(size)
}

// Alloc implements spec.md §4.4. size must be > 0; any other value is a
// caller-contract violation (§7) and fatal.
func (h *Heap) Alloc(size int) []byte {
	if size <= 0 {
		fatalf(ContractViolation, "Alloc called with size %d", size)
	}
	target := roundUp(size)

	cand, payloadSize, mapped := h.getFreeBlock(size)
	if !mapped {
		h.removeFree(cand, payloadSize)
		if worthSplitting(payloadSize, target) {
			cand = h.split(cand, payloadSize, target)
			payloadSize = target
		}
	}
	setAllocated(cand, true)

	h.maybeAudit()
	return payloadSlice(cand, payloadSize)[:size]
}

// Calloc implements spec.md §4.9: allocate then zero the first n*size
// payload bytes. Overflow of n*size is a caller-contract violation (§7),
// fatal like everything else here. The zero-fill loop is, per spec.md §1,
// the one piece of public-veneer glue layered directly on top of the
// core's Alloc.
func (h *Heap) Calloc(n, size int) []byte {
	if n <= 0 || size <= 0 {
		fatalf(ContractViolation, "Calloc called with n=%d size=%d", n, size)
	}
	total := n * size
	if size != 0 && total/size != n {
		fatalf(ContractViolation, "Calloc(%d, %d) overflows", n, size)
	}
	buf := h.Alloc(total)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Realloc implements spec.md §4.8. A nil ptr behaves as Alloc; a zero
// size frees ptr and returns nil (spec.md §9's resolved Open Question).
func (h *Heap) Realloc(ptr []byte, size int) []byte {
	if ptr == nil {
		return h.Alloc(size)
	}
	if size == 0 {
		h.Free(ptr)
		return nil
	}
	newBuf := h.Alloc(size)
	n := len(ptr)
	if size < n {
		n = size
	}
	copy(newBuf[:n], ptr[:n])
	h.Free(ptr)
	return newBuf
}

// Free implements spec.md §4.6.
func (h *Heap) Free(ptr []byte) {
	if ptr == nil || len(ptr) == 0 {
		fatalf(ContractViolation, "Free called with nil/empty pointer")
	}
	headerAddr := headerAddrFromPayload(addrOf(ptr))
	word := readWord(headerAddr)
	if !wordAllocated(word) {
		fatalf(InvariantViolation, "Free called on a block that is not allocated")
	}

	if wordMapped(word) {
		payloadSize := wordPayloadSize(word)
		mapLen := roundUpToPage(payloadSize+headerBytes, h.os.PageSize())
		if err := h.os.Unmap(headerAddr, mapLen); err != nil {
			fatalWrap(ResourceExhausted, err, "unmap %d bytes", mapLen)
		}
		h.maybeAudit()
		return
	}

	setAllocated(headerAddr, false)
	merged := h.coalesce(headerAddr)
	mergedWord := readWord(merged)
	h.insertFree(merged, wordPayloadSize(mergedWord))

	h.maybeAudit()
}
