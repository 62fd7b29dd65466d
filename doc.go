// Package memalloc is a general-purpose dynamic memory allocator providing
// the classical four-operation surface — allocate, zeroed-allocate,
// reallocate, free — to a single Go process.
//
// It owns a contiguous, monotonically growable arena for small requests
// (payload ≤ 1024 bytes) and falls back to directly-mapped anonymous pages
// for large ones, maintaining both backends through one set of boundary-tag
// blocks and eight size-segregated free lists. See DESIGN.md for the full
// grounding of each piece and SPEC_FULL.md for the expanded specification
// this package implements.
//
// The core (block format, free lists, split/coalesce, arena dispatch) is
// single-threaded: nothing in this package locks anything. Concurrent
// callers must either keep one goroutine's worth of exclusive access per
// *Heap, or wrap it in Synchronized.
package memalloc
