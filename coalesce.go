package memalloc

// coalesce implements spec.md §4.7: merge the just-freed contiguous block
// at headerAddr with any free immediate neighbor(s), returning the
// address of the (possibly merged) block. The returned block is not yet
// inserted into any bucket; callers do that with its final size.
func (h *Heap) coalesce(headerAddr uintptr) uintptr {
	word := readWord(headerAddr)
	size := wordPayloadSize(word)

	prevAddr, prevSize, havePrev := h.prevNeighbor(headerAddr)
	nextAddr, nextSize, haveNext := h.nextNeighbor(headerAddr, size)

	switch {
	case havePrev && haveNext:
		h.removeFree(prevAddr, prevSize)
		h.removeFree(nextAddr, nextSize)
		merged := prevSize + size + nextSize + 2*(headerBytes+footerBytes)
		writeBlock(prevAddr, merged, false, false)
		return prevAddr

	case haveNext:
		h.removeFree(nextAddr, nextSize)
		merged := size + nextSize + headerBytes + footerBytes
		writeBlock(headerAddr, merged, false, false)
		return headerAddr

	case havePrev:
		h.removeFree(prevAddr, prevSize)
		merged := prevSize + size + headerBytes + footerBytes
		writeBlock(prevAddr, merged, false, false)
		return prevAddr

	default:
		return headerAddr
	}
}

// prevNeighbor reads the footer word immediately preceding headerAddr (if
// headerAddr isn't at arena_start) and reports the previous block's
// address/size when it is free.
func (h *Heap) prevNeighbor(headerAddr uintptr) (addr uintptr, size int, free bool) {
	if headerAddr == h.arenaStart {
		return 0, 0, false
	}
	prevFooterAddr := headerAddr - footerBytes
	prevFooter := readWord(prevFooterAddr)
	if wordAllocated(prevFooter) {
		return 0, 0, false
	}
	prevSize := wordPayloadSize(prevFooter)
	prevHeaderAddr := prevFooterAddr - uintptr(prevSize) - headerBytes
	return prevHeaderAddr, prevSize, true
}

// nextNeighbor computes the next block's header address and reports
// whether it exists (i.e. isn't past arena_end) and is free.
func (h *Heap) nextNeighbor(headerAddr uintptr, size int) (addr uintptr, nextSize int, free bool) {
	nextAddr := headerAddr + headerBytes + uintptr(size) + footerBytes
	if nextAddr == h.arenaEnd {
		return 0, 0, false
	}
	nextWord := readWord(nextAddr)
	if wordAllocated(nextWord) {
		return 0, 0, false
	}
	return nextAddr, wordPayloadSize(nextWord), true
}
