package memalloc

// The free lists are doubly linked, unordered, head-insertion, embedded in
// the payload area of free blocks (spec.md §4.3). Bucket heads and the
// prev/next pointers are stored as absolute addresses, with 0 as the
// empty/absent sentinel — the arena never starts at address 0.

// insertFree adds the block at headerAddr (payload size payloadSize) to
// the head of its bucket's list. Mapped-origin blocks are never inserted
// (resolved Open Question, spec.md §9): callers must not call this for a
// mapped block.
func (h *Heap) insertFree(headerAddr uintptr, payloadSize int) {
	b := classify(payloadSize)
	head := h.buckets[b]
	writeLinkPrev(headerAddr, 0)
	writeLinkNext(headerAddr, head)
	if head != 0 {
		writeLinkPrev(head, headerAddr)
	}
	h.buckets[b] = headerAddr
}

// removeFree unlinks headerAddr from its bucket's list.
func (h *Heap) removeFree(headerAddr uintptr, payloadSize int) {
	b := classify(payloadSize)
	prev := readLinkPrev(headerAddr)
	next := readLinkNext(headerAddr)
	if prev != 0 {
		writeLinkNext(prev, next)
	} else {
		h.buckets[b] = next
	}
	if next != 0 {
		writeLinkPrev(next, prev)
	}
}

// findFit scans buckets starting at classify(minSize) upward for the
// first block whose payload size is strictly greater than
// roundUp(minSize) — first-fit, strict so a split always has somewhere to
// put the residual (spec.md §4.3, §9 "First-fit strict inequality").
func (h *Heap) findFit(minSize int) (headerAddr uintptr, payloadSize int, ok bool) {
	target := roundUp(minSize)
	for b := classify(target); b < numBuckets; b++ {
		for cur := h.buckets[b]; cur != 0; cur = readLinkNext(cur) {
			sz := wordPayloadSize(readWord(cur))
			if sz > target {
				return cur, sz, true
			}
		}
	}
	return 0, 0, false
}
