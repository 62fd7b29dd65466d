package osmem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixBackendExtendArenaIsMonotonicAndWritable(t *testing.T) {
	b := NewUnixBackend(1 << 20)
	a1, err := b.ExtendArena(64)
	require.NoError(t, err)
	a2, err := b.ExtendArena(64)
	require.NoError(t, err)
	assert.Equal(t, a1+64, a2)

	p := (*byte)(unsafe.Pointer(a1))
	*p = 0x7
	assert.Equal(t, byte(0x7), *p)
}

func TestUnixBackendExtendArenaExhaustion(t *testing.T) {
	pg := 4096
	b := NewUnixBackend(pg)
	_, err := b.ExtendArena(pg)
	require.NoError(t, err)
	_, err = b.ExtendArena(pg)
	assert.Error(t, err)
}

func TestUnixBackendMapAndUnmap(t *testing.T) {
	b := NewUnixBackend(1 << 20)
	pg := b.PageSize()
	addr, err := b.MapAnonymous(pg)
	require.NoError(t, err)
	require.NoError(t, b.Unmap(addr, pg))
}

func TestUnixBackendPageSizePositive(t *testing.T) {
	b := NewUnixBackend(1 << 20)
	assert.Greater(t, b.PageSize(), 0)
}
