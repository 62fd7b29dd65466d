package memalloc

import (
	"fmt"

	"github.com/irina-nita/memory-allocator/internal/checksum"
	"github.com/irina-nita/memory-allocator/internal/hack"
)

// BlockInfo describes one block encountered while walking the contiguous
// arena, for Walk/Validate and for an external debugger per spec.md §6.3
// ("can parse blocks in order using header.size + 16 as the stride").
type BlockInfo struct {
	HeaderAddr         uintptr
	PayloadSize        int
	Allocated          bool
	Bucket             int // only meaningful when !Allocated
	Fingerprint        uint64
	PayloadFingerprint uint64
}

// Walk visits every block in the contiguous arena in address order,
// calling visit for each. It does not touch mapped-origin blocks — they
// live outside [arenaStart, arenaEnd) by construction (spec.md §3 "Arena
// bounds").
//
// Each BlockInfo carries two independent fingerprints: Fingerprint covers
// only the boundary-tag word (cheap, computed on every walk), while
// PayloadFingerprint hashes the block's live payload bytes with
// checksum.Hash — a deeper check a caller can snapshot and diff across two
// Walk passes to notice a write landing in a block it shouldn't have
// (spec.md §6.3's external-debugger capability, made self-hostable).
func Walk(h *Heap, visit func(BlockInfo)) {
	if h.arenaStart == 0 {
		return
	}
	for addr := h.arenaStart; addr < h.arenaEnd; {
		word := readWord(addr)
		size := wordPayloadSize(word)
		info := BlockInfo{
			HeaderAddr:         addr,
			PayloadSize:        size,
			Allocated:          wordAllocated(word),
			Fingerprint:        checksum.Fingerprint(word, size),
			PayloadFingerprint: checksum.Hash(payloadSlice(addr, size)),
		}
		if !info.Allocated {
			info.Bucket = classify(size)
		}
		visit(info)
		addr += uintptr(blockSpan(size, false))
	}
}

// Stats is a read-only snapshot of heap occupancy (spec.md §4 Supplemental
// features: original_source/ tracks heap_start/heap_end/buckets as its
// only observable state; Stats is that state made available to callers).
type Stats struct {
	ArenaStart     uintptr
	ArenaEnd       uintptr
	ArenaBytes     int
	LiveBlocks     int
	FreeBlocks     int
	FreePayload    int
	BucketOccupied [numBuckets]int
}

// Stats computes a Stats snapshot by walking the arena. O(n) in the
// number of blocks.
func (h *Heap) Stats() Stats {
	st := Stats{ArenaStart: h.arenaStart, ArenaEnd: h.arenaEnd}
	if h.arenaEnd > h.arenaStart {
		st.ArenaBytes = int(h.arenaEnd - h.arenaStart)
	}
	Walk(h, func(b BlockInfo) {
		if b.Allocated {
			st.LiveBlocks++
			return
		}
		st.FreeBlocks++
		st.FreePayload += b.PayloadSize
		st.BucketOccupied[b.Bucket]++
	})
	return st
}

// Validate checks properties P1-P4 (spec.md §8) against the current state
// of h: the contiguous arena tiles without overlap and without two
// adjacent free blocks, every payload size is a legal multiple of 8 ≥ 16,
// and every free block sits in the bucket classify() says it should.
// Returns the first violation found, or nil.
func Validate(h *Heap) error {
	var (
		prevFree  = false
		firstErr  error
		seenInBkt [numBuckets]map[uintptr]bool
	)
	for i := range seenInBkt {
		seenInBkt[i] = make(map[uintptr]bool)
	}
	for b := 0; b < numBuckets; b++ {
		for cur := h.buckets[b]; cur != 0; cur = readLinkNext(cur) {
			seenInBkt[b][cur] = true
		}
	}

	report := func(format string, args ...interface{}) {
		if firstErr == nil {
			firstErr = fmt.Errorf(format, args...)
		}
	}

	walkEnd := h.arenaStart
	Walk(h, func(b BlockInfo) {
		walkEnd = b.HeaderAddr + uintptr(blockSpan(b.PayloadSize, false))
		if b.PayloadSize%8 != 0 || b.PayloadSize < minPayload {
			report("block at %x: illegal payload size %d", b.HeaderAddr, b.PayloadSize)
		}
		footer := readWord(footerAddr(b.HeaderAddr, b.PayloadSize))
		if footer != readWord(b.HeaderAddr) {
			report("block at %x: header/footer mismatch, raw=%s", b.HeaderAddr,
				hexDump(b.HeaderAddr, blockSpan(b.PayloadSize, false)))
		}
		if b.Allocated {
			prevFree = false
			return
		}
		if prevFree {
			report("block at %x: adjacent free blocks not coalesced", b.HeaderAddr)
		}
		prevFree = true
		if !seenInBkt[b.Bucket][b.HeaderAddr] {
			report("free block at %x: not found in expected bucket %d", b.HeaderAddr, b.Bucket)
		}
	})
	if walkEnd != h.arenaEnd {
		report("arena walk ends at %x, not at arena end %x", walkEnd, h.arenaEnd)
	}

	return firstErr
}

// hexDump renders a block's raw bytes — header through footer, if any —
// for diagnostics without copying them, using the same unsafe string-view
// trick internal/hack offers the rest of the module.
func hexDump(headerAddr uintptr, totalBytes int) string {
	raw := blockSlice(headerAddr, totalBytes)
	return fmt.Sprintf("% x", hack.ByteSliceToString(raw))
}
