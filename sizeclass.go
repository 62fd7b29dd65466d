package memalloc

import "math/bits"

// bucketUpperBound documents the inclusive upper bound on payload size
// each bucket owns (spec.md §3 "Bucket array"); bucket 7 is unbounded.
var bucketUpperBound = [numBuckets]int{16, 32, 64, 128, 256, 512, 1024, -1}

// classify maps a (rounded-up) payload size to its bucket index, per
// spec.md §4.1: 0 when size ≤ 16, 7 when size > 1024, otherwise the
// unique i ∈ {1..6} with 2^(3+i) < size ≤ 2^(4+i).
func classify(size int) int {
	switch {
	case size <= minPayload:
		return 0
	case size > maxSmall:
		return numBuckets - 1
	default:
		// size-1 has bits.Len() = 4+i exactly when 2^(3+i) < size <= 2^(4+i).
		return bits.Len(uint(size-1)) - 4
	}
}

// roundUp aligns size up to the next multiple of 8, with a 16-byte floor
// (spec.md §4.1) — the minimum payload needed to hold free-list link
// pointers.
func roundUp(size int) int {
	if size < minPayload {
		size = minPayload
	}
	return (size + 7) &^ 7
}
