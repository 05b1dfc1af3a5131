package heapalloc

import "math"

// Realloc resizes the allocation behind ref to size bytes and returns its
// (possibly new) handle.
//
// Realloc(0, size) behaves as Alloc(size). Realloc(ref, 0) behaves as
// Free(ref) and returns the null Ref. An invalid handle is reported to
// the heap's logger and yields the null Ref with no state change.
//
// Resolution order:
//  1. In-place shrink or exact fit: the block already covers the rounded
//     request; any excess is split off and the same handle is returned.
//  2. In-place grow: the right neighbor is free and merging it covers the
//     request; the neighbor is absorbed, excess is split off, and the
//     same handle is returned. Payload bytes are untouched.
//  3. Relocate: a fresh allocation, a copy of min(old, new) payload
//     bytes, and a free of the old block. If the fresh allocation fails,
//     the null Ref is returned and the original block stays intact.
func (h *Heap) Realloc(ref Ref, size uint64) Ref {
	if ref == 0 {
		return h.Alloc(size)
	}
	if size == 0 {
		h.Free(ref)
		return 0
	}
	h.panicIfClosed()

	b, err := h.blockFor(ref)
	if err != nil {
		h.log.Error("heapalloc: realloc rejected", "ref", uint64(ref), "err", err)
		return 0
	}

	asize := alignUp(size)
	if asize < size {
		return 0
	}
	if asize < MinPayload {
		asize = MinPayload
	}

	if b.size() >= asize {
		h.split(b, asize)
		return ref
	}

	// The block stays marked allocated throughout the merge, so it is
	// never observable as free mid-resize.
	if nxt, ok := b.next(); ok && nxt.free() {
		combined := b.size() + HeaderSize + nxt.size()
		if combined >= asize {
			h.mergeNext(b)
			h.split(b, asize)
			return ref
		}
	}

	newRef := h.Alloc(size)
	if newRef == 0 {
		return 0
	}
	n := min(b.size(), asize)
	copy(h.Bytes(newRef)[:n], b.payload()[:n])
	h.Free(ref)
	return newRef
}

// Calloc allocates count*elemSize bytes and zero-fills the entire payload
// before returning its handle. Returns the null Ref when either argument
// is zero, when the product overflows, or when no free block fits.
func (h *Heap) Calloc(count, elemSize uint64) Ref {
	if count == 0 || elemSize == 0 {
		return 0
	}
	if count > math.MaxUint64/elemSize {
		return 0
	}

	ref := h.Alloc(count * elemSize)
	if ref == 0 {
		return 0
	}
	b, _ := h.blockFor(ref)
	clear(b.payload())
	return ref
}
