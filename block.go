package memalloc

import "unsafe"

// Block layout (spec.md §3), all 8-byte aligned:
//
//	header word (8B) | link area (16B, free only) / payload (≥16B) | footer word (8B, contiguous only)
//
// The header (and footer, when present) is a single uint64: since the
// payload size is always a multiple of 8, its low 3 bits are always zero,
// so the flag bits and the size share one word with no shifting needed —
// word = payloadSize | flags.
const (
	flagAllocated uint64 = 1 << 0 // A
	flagMapped    uint64 = 1 << 1 // M
	flagMask      uint64 = 0x7

	wordSize     = 8 // header/footer/link-pointer word size
	headerBytes  = wordSize
	footerBytes  = wordSize
	linkBytes    = 16 // prev + next, overlaid by payload when allocated
	minPayload   = 16
	maxSmall     = 1024
	numBuckets = 8
	// minBlockTotal is the minimum total size (header+footer+payload) a
	// contiguous block can be split into; see §4.4/§4.5.
	minBlockTotal = headerBytes + footerBytes + minPayload // 32
)

// makeHeader packs a payload size and flags into one boundary-tag word.
func makeHeader(payloadSize int, allocated, mapped bool) uint64 {
	w := uint64(payloadSize)
	if allocated {
		w |= flagAllocated
	}
	if mapped {
		w |= flagMapped
	}
	return w
}

func wordPayloadSize(word uint64) int   { return int(word &^ flagMask) }
func wordAllocated(word uint64) bool    { return word&flagAllocated != 0 }
func wordMapped(word uint64) bool       { return word&flagMapped != 0 }
func wordWithAllocated(word uint64, v bool) uint64 {
	if v {
		return word | flagAllocated
	}
	return word &^ flagAllocated
}

func readWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr))
}

func writeWord(addr uintptr, w uint64) {
	*(*uint64)(unsafe.Pointer(addr)) = w
}

// payloadAddr returns the address of the payload area given a block's
// header address.
func payloadAddr(headerAddr uintptr) uintptr { return headerAddr + headerBytes }

// headerAddrFromPayload is the inverse of payloadAddr.
func headerAddrFromPayload(p uintptr) uintptr { return p - headerBytes }

// footerAddr returns where a contiguous block's footer sits, given its
// header address and payload size.
func footerAddr(headerAddr uintptr, payloadSize int) uintptr {
	return headerAddr + headerBytes + uintptr(payloadSize)
}

// blockSpan returns the total byte span of a block (header + payload +
// footer if present).
func blockSpan(payloadSize int, mapped bool) int {
	if mapped {
		return headerBytes + payloadSize
	}
	return headerBytes + payloadSize + footerBytes
}

// writeBlock stamps header (and footer, if contiguous) for a block of the
// given payload size, flags, at headerAddr.
func writeBlock(headerAddr uintptr, payloadSize int, allocated, mapped bool) {
	w := makeHeader(payloadSize, allocated, mapped)
	writeWord(headerAddr, w)
	if !mapped {
		writeWord(footerAddr(headerAddr, payloadSize), w)
	}
}

// setAllocated flips the A bit in place, mirroring to the footer if the
// block is contiguous-origin.
func setAllocated(headerAddr uintptr, allocated bool) {
	word := readWord(headerAddr)
	word = wordWithAllocated(word, allocated)
	writeWord(headerAddr, word)
	if !wordMapped(word) {
		payloadSize := wordPayloadSize(word)
		writeWord(footerAddr(headerAddr, payloadSize), word)
	}
}

// linkPrevAddr/linkNextAddr locate the two free-list pointer slots inside
// a free block's payload area (design note: "cyclic pointers ... embedded
// in the payload area of free blocks").
func linkPrevAddr(headerAddr uintptr) uintptr { return payloadAddr(headerAddr) }
func linkNextAddr(headerAddr uintptr) uintptr { return payloadAddr(headerAddr) + wordSize }

func readLinkPrev(headerAddr uintptr) uintptr { return uintptr(readWord(linkPrevAddr(headerAddr))) }
func readLinkNext(headerAddr uintptr) uintptr { return uintptr(readWord(linkNextAddr(headerAddr))) }

func writeLinkPrev(headerAddr uintptr, prev uintptr) {
	writeWord(linkPrevAddr(headerAddr), uint64(prev))
}

func writeLinkNext(headerAddr uintptr, next uintptr) {
	writeWord(linkNextAddr(headerAddr), uint64(next))
}

// payloadSlice returns the writable payload as a []byte of cap
// payloadSize, mirroring unsafex/malloc/buddy.go's Alloc return
// convention (cap = granted block size, len set by the caller).
func payloadSlice(headerAddr uintptr, payloadSize int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(payloadAddr(headerAddr))), payloadSize)
}

// blockSlice returns a block's entire raw span (header through footer, if
// any present) as a []byte, for diagnostics that need to see the header
// bytes themselves rather than just the payload — unlike payloadSlice,
// which starts past the header.
func blockSlice(headerAddr uintptr, totalBytes int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(headerAddr)), totalBytes)
}

// addrOf returns the address of a live []byte's first byte — the inverse
// of payloadSlice, used to recover a block's header from a pointer the
// caller hands back to Free/Realloc.
func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
