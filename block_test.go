package memalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		size      int
		allocated bool
		mapped    bool
	}{
		{16, false, false},
		{1024, true, false},
		{8192, true, true},
		{4096, false, true},
	}
	for _, tt := range tests {
		w := makeHeader(tt.size, tt.allocated, tt.mapped)
		assert.Equal(t, tt.size, wordPayloadSize(w))
		assert.Equal(t, tt.allocated, wordAllocated(w))
		assert.Equal(t, tt.mapped, wordMapped(w))
	}
}

func TestWordWithAllocated(t *testing.T) {
	w := makeHeader(64, false, false)
	w = wordWithAllocated(w, true)
	assert.True(t, wordAllocated(w))
	assert.Equal(t, 64, wordPayloadSize(w))

	w = wordWithAllocated(w, false)
	assert.False(t, wordAllocated(w))
	assert.Equal(t, 64, wordPayloadSize(w))
}

func TestBlockSpan(t *testing.T) {
	assert.Equal(t, 16+16, blockSpan(16, false)) // header+payload+footer
	assert.Equal(t, 16+8, blockSpan(16, true))   // header+payload, no footer
}

func TestWriteBlockAndReadBack(t *testing.T) {
	buf := make([]byte, 256)
	base := addrOf(buf)

	writeBlock(base, 64, true, false)
	word := readWord(base)
	assert.Equal(t, 64, wordPayloadSize(word))
	assert.True(t, wordAllocated(word))
	assert.False(t, wordMapped(word))
	assert.Equal(t, word, readWord(footerAddr(base, 64)), "footer must mirror header")

	p := payloadSlice(base, 64)
	assert.Equal(t, 64, len(p))
	assert.Equal(t, payloadAddr(base), addrOf(p))
	assert.Equal(t, base, headerAddrFromPayload(addrOf(p)))
}

func TestSetAllocatedMirrorsFooterOnlyWhenContiguous(t *testing.T) {
	buf := make([]byte, 256)
	base := addrOf(buf)

	writeBlock(base, 32, false, false)
	setAllocated(base, true)
	assert.True(t, wordAllocated(readWord(base)))
	assert.True(t, wordAllocated(readWord(footerAddr(base, 32))))

	writeBlock(base, 32, false, true) // mapped: no footer to mirror into
	setAllocated(base, true)
	assert.True(t, wordAllocated(readWord(base)))
}

func TestFreeListLinksLiveInPayload(t *testing.T) {
	buf := make([]byte, 256)
	base := addrOf(buf)
	writeBlock(base, 64, false, false)

	writeLinkPrev(base, 0)
	writeLinkNext(base, 0xdead)
	assert.Equal(t, uintptr(0), readLinkPrev(base))
	assert.Equal(t, uintptr(0xdead), readLinkNext(base))
}
