package memalloc

// acquire implements spec.md §4.2's acquire(size) → (raw_pointer, origin):
// a fresh block whose payload can hold size bytes, tagged by whether it
// came from the contiguous arena or an anonymous mapping. The returned
// block is unlinked and carries A=0; callers insert it (if contiguous) and
// then allocate it per §4.4's get-free-block dance.
func (h *Heap) acquire(size int) (headerAddr uintptr, payloadSize int, mapped bool) {
	target := roundUp(size)
	if target <= maxSmall {
		total := target + headerBytes + footerBytes
		addr, err := h.os.ExtendArena(total)
		if err != nil {
			fatalWrap(ResourceExhausted, err, "extend contiguous arena by %d bytes", total)
		}
		if h.arenaStart == 0 {
			h.arenaStart = addr
		}
		h.arenaEnd = addr + uintptr(total)
		writeBlock(addr, target, false, false)
		return addr, target, false
	}

	total := target + headerBytes
	pg := h.os.PageSize()
	mapLen := roundUpToPage(total, pg)
	addr, err := h.os.MapAnonymous(mapLen)
	if err != nil {
		fatalWrap(ResourceExhausted, err, "map %d anonymous bytes", mapLen)
	}
	writeBlock(addr, target, false, true)
	return addr, target, true
}

// roundUpToPage rounds n up to the next multiple of the page size.
func roundUpToPage(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 4096
	}
	return (n + pageSize - 1) / pageSize * pageSize
}

// newFreeBlock is spec.md §4.3's new_free_block: acquire a fresh block and
// insert it into its bucket — unless it's mapped-origin, which per the
// resolved Open Question (spec.md §9, DESIGN.md) is never linked into any
// bucket.
func (h *Heap) newFreeBlock(size int) (headerAddr uintptr, payloadSize int, mapped bool) {
	headerAddr, payloadSize, mapped = h.acquire(size)
	if !mapped {
		h.insertFree(headerAddr, payloadSize)
	}
	return headerAddr, payloadSize, mapped
}
