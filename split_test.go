package memalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irina-nita/memory-allocator/internal/osmem"
)

func TestWorthSplitting(t *testing.T) {
	assert.True(t, worthSplitting(1000, 16))               // 1000 >= 16+32
	assert.False(t, worthSplitting(20, 16))                 // 20 < 16+32
	assert.True(t, worthSplitting(16+minBlockTotal, 16))    // exact boundary
	assert.False(t, worthSplitting(16+minBlockTotal-8, 16)) // one word short
}

// TestSplitProducesAllocatedHeadAndFreeTail exercises spec.md §8 scenario 2:
// allocate a 1000-byte block, free it, then allocate 16 bytes. The
// allocator must carve a 16-byte head off the 1000-byte residual and leave
// a free tail big enough to land in bucket 6.
func TestSplitProducesAllocatedHeadAndFreeTail(t *testing.T) {
	h := NewHeap(osmem.NewFakeBackend(1<<20, 4096))

	big := h.Alloc(1000)
	h.Free(big)

	small := h.Alloc(16)
	require := assert.New(t)
	require.Equal(16, len(small))

	headerAddr := headerAddrFromPayload(addrOf(small))
	word := readWord(headerAddr)
	require.True(wordAllocated(word))
	require.Equal(16, wordPayloadSize(word))

	rightAddr := footerAddr(headerAddr, 16) + footerBytes
	rightWord := readWord(rightAddr)
	require.False(wordAllocated(rightWord))
	wantResidual := 1000 - 16 - headerBytes - footerBytes
	require.Equal(wantResidual, wordPayloadSize(rightWord))
	require.Equal(6, classify(wantResidual))
	require.Equal(rightAddr, h.buckets[6])
}

func TestSplitLeavesLeftBlockAtOriginalAddress(t *testing.T) {
	h := NewHeap(osmem.NewFakeBackend(1<<20, 4096))
	addr, fullPayload, _ := h.acquire(200)

	left := h.split(addr, fullPayload, 16)
	assert.Equal(t, addr, left)

	word := readWord(left)
	assert.Equal(t, 16, wordPayloadSize(word))
}
