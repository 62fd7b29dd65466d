package osmem

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// UnixBackend is the real Backend, used by the process-wide default heap.
//
// The contiguous arena is not backed by brk/sbrk: a Go process's break is
// owned by the Go runtime itself, and a library cannot safely move it out
// from under the garbage collector. Instead UnixBackend reserves one large
// anonymous, private mapping up front (sized by reserveBytes) and treats
// ExtendArena as bumping a used-length counter into that reservation.
// Anonymous pages are demand-paged by the kernel, so the reservation costs
// no physical memory until the bytes it covers are actually written —
// giving the same "monotonic, pointer-stable" contract spec.md §6.1 asks
// of extend_arena without ever remapping or copying.
type UnixBackend struct {
	mu sync.Mutex

	reserveBytes int
	base         uintptr
	slab         []byte // keeps the reservation's backing pages referenced
	used         int
}

// NewUnixBackend reserves reserveBytes of anonymous address space for the
// contiguous arena. Reservation is lazy: the mapping is created on the
// first call to ExtendArena, not here.
func NewUnixBackend(reserveBytes int) *UnixBackend {
	return &UnixBackend{reserveBytes: reserveBytes}
}

func (b *UnixBackend) ensureReservation() error {
	if b.slab != nil {
		return nil
	}
	slab, err := unix.Mmap(-1, 0, b.reserveBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("reserve %d bytes: %w", b.reserveBytes, err)
	}
	b.slab = slab
	b.base = uintptr(unsafe.Pointer(&slab[0]))
	return nil
}

// ExtendArena implements Backend.
func (b *UnixBackend) ExtendArena(nBytes int) (uintptr, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureReservation(); err != nil {
		return 0, &ErrExhausted{Op: "ExtendArena", NBytes: nBytes, Wrapped: err}
	}
	if b.used+nBytes > len(b.slab) {
		return 0, &ErrExhausted{Op: "ExtendArena", NBytes: nBytes,
			Wrapped: fmt.Errorf("arena reservation of %d bytes exhausted", b.reserveBytes)}
	}
	addr := b.base + uintptr(b.used)
	b.used += nBytes
	return addr, nil
}

// MapAnonymous implements Backend. Each call is its own independent
// mapping, unmapped in full by the matching Unmap.
func (b *UnixBackend) MapAnonymous(nBytes int) (uintptr, error) {
	region, err := unix.Mmap(-1, 0, nBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, &ErrExhausted{Op: "MapAnonymous", NBytes: nBytes, Wrapped: err}
	}
	return uintptr(unsafe.Pointer(&region[0])), nil
}

// Unmap implements Backend.
func (b *UnixBackend) Unmap(addr uintptr, nBytes int) error {
	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), nBytes)
	if err := unix.Munmap(region); err != nil {
		return fmt.Errorf("osmem: munmap(%d bytes): %w", nBytes, err)
	}
	return nil
}

// PageSize implements Backend.
func (b *UnixBackend) PageSize() int {
	return unix.Getpagesize()
}
