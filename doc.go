// Package heapalloc implements a malloc-style heap allocator over a
// single fixed-size arena.
//
// # Overview
//
// The heap acquires one contiguous buffer up front and serves every
// request from it, with no reliance on a nested allocator per request.
// Blocks are described by 32-byte headers embedded in the buffer itself,
// forming a doubly linked, address-ordered chain that tiles the arena
// with no gaps. This is useful for:
//
//   - Bounded, predictable memory use (the arena never grows)
//   - Individual free with immediate reuse, unlike bump arenas
//   - Studying or testing classic first-fit allocation behavior
//   - Shared or mapped buffers that one owner parcels out
//
// # Basic Usage
//
//	h, err := heapalloc.New(1 << 20) // 1 MiB arena
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ref := h.Alloc(64)
//	if ref == 0 {
//	    // arena exhausted
//	}
//	copy(h.Bytes(ref), data)
//
//	ref = h.Realloc(ref, 256) // grows in place when possible
//	h.Free(ref)
//
// A package-level API manages one process-wide heap for malloc-style
// drop-in use:
//
//	heapalloc.Init(16 << 20) // optional; first call wins
//	ref := heapalloc.Alloc(128)
//	heapalloc.Free(ref)
//
// # Allocation Strategy
//
// Requests are rounded up to a 16-byte granularity (32-byte minimum) and
// served first-fit: the lowest-address free block that fits wins. A block
// larger than the request is split when the remainder can host a header
// plus the minimum payload; freeing eagerly merges a block with free
// neighbors, so the chain never holds two adjacent free blocks.
// Exhaustion returns the null Ref rather than an error.
//
// # Handles
//
// Allocations are addressed by Ref, the payload's byte offset from the
// arena base. The zero Ref is null. Bytes(ref) resolves a handle to a
// []byte view aliasing the arena; the view is valid until the block is
// freed or relocated by Realloc.
//
// # Thread Safety
//
// Heap is not goroutine-safe. For concurrent access, use SafeHeap, which
// guards the whole chain with a single mutex:
//
//	s, err := heapalloc.NewSafeHeap(1 << 20)
//	ref := s.Alloc(64)
//
// # Diagnostics
//
// Invalid frees (foreign pointers, double frees) are reported through the
// heap's slog.Logger and otherwise ignored. Blocks() returns a structured
// snapshot of the chain and Dump(w) renders it as text. Metrics() reports
// usage, fragmentation, and the largest satisfiable request.
package heapalloc
