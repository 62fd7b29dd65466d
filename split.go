package memalloc

// split implements spec.md §4.5: divide a free contiguous block of
// payload size fullPayload into a left block of payload size target
// (about to be allocated by the caller) and a right free block of the
// remainder, inserted into its bucket. Only called when
// worthSplitting(fullPayload, target) holds.
func (h *Heap) split(headerAddr uintptr, fullPayload, target int) (leftAddr uintptr) {
	rightPayload := fullPayload - target - headerBytes - footerBytes
	writeBlock(headerAddr, target, false, false)

	rightAddr := footerAddr(headerAddr, target) + footerBytes
	writeBlock(rightAddr, rightPayload, false, false)
	h.insertFree(rightAddr, rightPayload)

	return headerAddr
}

// worthSplitting reports whether a contiguous candidate of the given
// payload size is large enough to carve target off it and still leave a
// legal (≥16 byte payload) free residual.
func worthSplitting(fullPayload, target int) bool {
	return fullPayload >= target+minBlockTotal
}
