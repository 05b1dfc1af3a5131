package heapalloc

import "encoding/binary"

const (
	// Alignment is the granularity every payload size and block offset is
	// rounded to. Matches the strictest scalar alignment on mainstream
	// 64-bit targets.
	Alignment = 16

	// HeaderSize is the number of bytes a block header occupies in the
	// arena, immediately before its payload.
	HeaderSize = 32

	// MinPayload is the smallest payload a block may carry. Requests below
	// it are rounded up, and a split never leaves a remainder smaller
	// than HeaderSize+MinPayload.
	MinPayload = 32

	// minHeapSize is the smallest arena that can host one block.
	minHeapSize = HeaderSize + MinPayload
)

// Header field offsets within the 32-byte block header. All fields are
// little-endian uint64 values written directly into the arena buffer.
const (
	hdrSizeOff  = 0  // payload size in bytes
	hdrFlagsOff = 8  // blockFree or 0
	hdrPrevOff  = 16 // header offset of the previous block, nilOff if first
	hdrNextOff  = 24 // header offset of the next block, nilOff if last
)

const blockFree = 1

// nilOff marks the absence of a neighbor link. Offset 0 is a valid header
// position (the first block), so the sentinel is all-ones.
const nilOff = ^uint64(0)

// alignUp rounds n up to the next multiple of Alignment.
// The result wraps for n within Alignment of the uint64 maximum; callers
// treat a result smaller than n as an unsatisfiable request.
func alignUp(n uint64) uint64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// block is a view over one header embedded in the arena buffer. It holds
// no state of its own; every accessor reads or writes the buffer in place,
// so a header is never copied or relocated.
type block struct {
	h   *Heap
	off uint64 // header offset from the arena base
}

func (b block) size() uint64 {
	return binary.LittleEndian.Uint64(b.h.buf[b.off+hdrSizeOff:])
}

func (b block) setSize(n uint64) {
	binary.LittleEndian.PutUint64(b.h.buf[b.off+hdrSizeOff:], n)
}

func (b block) free() bool {
	return binary.LittleEndian.Uint64(b.h.buf[b.off+hdrFlagsOff:])&blockFree != 0
}

func (b block) setFree(f bool) {
	var v uint64
	if f {
		v = blockFree
	}
	binary.LittleEndian.PutUint64(b.h.buf[b.off+hdrFlagsOff:], v)
}

func (b block) prevOff() uint64 {
	return binary.LittleEndian.Uint64(b.h.buf[b.off+hdrPrevOff:])
}

func (b block) setPrevOff(off uint64) {
	binary.LittleEndian.PutUint64(b.h.buf[b.off+hdrPrevOff:], off)
}

func (b block) nextOff() uint64 {
	return binary.LittleEndian.Uint64(b.h.buf[b.off+hdrNextOff:])
}

func (b block) setNextOff(off uint64) {
	binary.LittleEndian.PutUint64(b.h.buf[b.off+hdrNextOff:], off)
}

// prev returns the previous block in address order, ok=false for the first.
func (b block) prev() (block, bool) {
	off := b.prevOff()
	if off == nilOff {
		return block{}, false
	}
	return block{h: b.h, off: off}, true
}

// next returns the next block in address order, ok=false for the last.
func (b block) next() (block, bool) {
	off := b.nextOff()
	if off == nilOff {
		return block{}, false
	}
	return block{h: b.h, off: off}, true
}

// ref returns the payload handle for this block.
func (b block) ref() Ref {
	return Ref(b.off + HeaderSize)
}

// payload returns the block's payload bytes.
func (b block) payload() []byte {
	return b.h.buf[b.off+HeaderSize : b.off+HeaderSize+b.size()]
}
