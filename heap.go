package heapalloc

import (
	"fmt"
	"log/slog"
	"math"
)

// DefaultHeapSize is the arena size used when no explicit size is given
// (16 MiB).
const DefaultHeapSize = 16 << 20

// Ref is a handle to an allocated payload: its byte offset from the arena
// base. The zero Ref is the null handle; no payload can start at offset
// zero because the first block header occupies it.
type Ref uint64

// Heap manages a single pre-acquired contiguous buffer. Blocks are
// described by fixed-size headers embedded in the buffer itself, chained
// in ascending address order with no gaps: the first header sits at
// offset 0 and the last payload ends exactly at the buffer end.
// Not goroutine-safe; use SafeHeap for concurrent access.
type Heap struct {
	buf   []byte
	size  uint64
	log   *slog.Logger
	unmap func() error
}

type config struct {
	logger *slog.Logger
	mmap   bool
}

// Option configures a Heap at construction time.
type Option func(*config)

// WithLogger sets the logger that receives diagnostic reports (invalid
// pointers, double frees). Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMmap requests the backing buffer as an anonymous mapping taken
// directly from the operating system instead of the Go heap. Ignored on
// platforms without mmap support.
func WithMmap() Option {
	return func(c *config) { c.mmap = true }
}

// New creates a Heap over a freshly acquired buffer of at least size
// bytes, rounded up to the alignment granularity. If size is 0,
// DefaultHeapSize is used. The buffer is zero-filled and installed as a
// single free block spanning everything past the first header.
// Acquisition failure is unrecoverable for the heap and is returned to
// the caller.
func New(size uint64, opts ...Option) (*Heap, error) {
	cfg := config{logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	if size == 0 {
		size = DefaultHeapSize
	}
	total := alignUp(size)
	if total < size || total > math.MaxInt {
		return nil, fmt.Errorf("%w: %d bytes", ErrBufferAcquire, size)
	}
	if total < minHeapSize {
		total = minHeapSize
	}

	buf, unmap, err := acquireBuffer(int(total), cfg.mmap)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrBufferAcquire, total, err)
	}

	h := &Heap{buf: buf, size: total, log: cfg.logger, unmap: unmap}
	first := block{h: h, off: 0}
	first.setSize(total - HeaderSize)
	first.setFree(true)
	first.setPrevOff(nilOff)
	first.setNextOff(nilOff)
	return h, nil
}

// Size returns the total arena size in bytes, headers included.
func (h *Heap) Size() uint64 {
	return h.size
}

// Close releases the backing buffer and makes the heap unusable. Any
// subsequent operation panics. Close on a closed heap is a no-op.
func (h *Heap) Close() error {
	if h.buf == nil {
		return nil
	}
	var err error
	if h.unmap != nil {
		err = h.unmap()
		h.unmap = nil
	}
	h.buf = nil
	h.size = 0
	return err
}

// Alloc returns a handle to a payload of at least size bytes, or the null
// Ref when size is 0 or no free block can satisfy the request. The arena
// never grows; exhaustion is an ordinary outcome the caller must check.
//
// The request is rounded up to the alignment granularity (with MinPayload
// as the floor) and served by a first-fit scan in ascending address
// order, so among equally sized candidates the lowest address wins. A
// found block larger than the request is split when the remainder can
// host a header plus MinPayload; otherwise the whole block is handed over.
func (h *Heap) Alloc(size uint64) Ref {
	if size == 0 {
		return 0
	}
	h.panicIfClosed()

	asize := alignUp(size)
	if asize < size {
		// Rounding wrapped; nothing can satisfy this.
		return 0
	}
	if asize < MinPayload {
		asize = MinPayload
	}

	b, ok := h.findFit(asize)
	if !ok {
		return 0
	}
	h.split(b, asize)
	b.setFree(false)
	return b.ref()
}

// Free returns the block behind ref to the free chain and eagerly merges
// it with free neighbors. Free(0) is a no-op. Invalid handles and double
// frees are reported to the heap's logger and otherwise ignored; Free
// never fails observably.
func (h *Heap) Free(ref Ref) {
	if ref == 0 {
		return
	}
	h.panicIfClosed()

	b, err := h.blockFor(ref)
	if err != nil {
		h.log.Error("heapalloc: free rejected", "ref", uint64(ref), "err", err)
		return
	}
	if b.free() {
		h.log.Warn("heapalloc: double free suppressed", "ref", uint64(ref), "err", ErrDoubleFree)
		return
	}
	b.setFree(true)
	h.coalesce(b)
}

// Bytes returns the payload behind ref as a byte slice. The slice aliases
// the arena buffer: it is valid until the block is freed or resized.
// Returns nil for the null Ref or an invalid handle.
func (h *Heap) Bytes(ref Ref) []byte {
	if ref == 0 {
		return nil
	}
	h.panicIfClosed()

	b, err := h.blockFor(ref)
	if err != nil {
		h.log.Error("heapalloc: bytes rejected", "ref", uint64(ref), "err", err)
		return nil
	}
	if b.off+HeaderSize+b.size() > h.size {
		h.log.Error("heapalloc: bytes rejected", "ref", uint64(ref), "err", ErrBadHeader)
		return nil
	}
	return b.payload()
}

// blockFor recovers the block header a payload handle points at,
// validating that both the payload and the header lie inside the arena.
func (h *Heap) blockFor(ref Ref) (block, error) {
	off := uint64(ref)
	if off >= h.size {
		return block{}, ErrOutOfRange
	}
	if off < HeaderSize {
		return block{}, ErrBadHeader
	}
	return block{h: h, off: off - HeaderSize}, nil
}

// findFit scans the chain from its head for the first free block with a
// payload of at least asize bytes.
func (h *Heap) findFit(asize uint64) (block, bool) {
	b := block{h: h, off: 0}
	for {
		if b.free() && b.size() >= asize {
			return b, true
		}
		nxt, ok := b.next()
		if !ok {
			return block{}, false
		}
		b = nxt
	}
}

// split carves b's payload down to exactly asize bytes, installing the
// remainder as a new free block linked immediately after b. No split
// happens when the remainder could not host a header plus MinPayload;
// the excess stays with b as internal fragmentation. b's own free flag is
// left untouched, so the shrink path of Realloc can split an allocated
// block in place.
func (h *Heap) split(b block, asize uint64) {
	if b.size() < asize+HeaderSize+MinPayload {
		return
	}

	remOff := b.off + HeaderSize + asize
	rem := block{h: h, off: remOff}
	rem.setSize(b.size() - asize - HeaderSize)
	rem.setFree(true)
	rem.setPrevOff(b.off)
	rem.setNextOff(b.nextOff())
	if nxt, ok := b.next(); ok {
		nxt.setPrevOff(remOff)
	}
	b.setNextOff(remOff)
	b.setSize(asize)

	// When an allocated block shrinks, its successor may already be free;
	// merge so the chain never holds two adjacent free blocks.
	if nxt, ok := rem.next(); ok && nxt.free() {
		h.mergeNext(rem)
	}
}

// mergeNext absorbs b's next neighbor: the neighbor's header and payload
// become part of b's payload and the chain is relinked around it. The
// absorbed header is not erased, merely unreachable.
func (h *Heap) mergeNext(b block) {
	nxt, ok := b.next()
	if !ok {
		return
	}
	b.setSize(b.size() + HeaderSize + nxt.size())
	b.setNextOff(nxt.nextOff())
	if nn, ok := nxt.next(); ok {
		nn.setPrevOff(b.off)
	}
}

// coalesce merges b with its free neighbors, next side first, and returns
// the surviving block.
func (h *Heap) coalesce(b block) block {
	if nxt, ok := b.next(); ok && nxt.free() {
		h.mergeNext(b)
	}
	if prv, ok := b.prev(); ok && prv.free() {
		h.mergeNext(prv)
		b = prv
	}
	return b
}

func (h *Heap) panicIfClosed() {
	if h.buf == nil {
		panic("heapalloc: use after Close()")
	}
}
