package heapalloc

import (
	"io"
	"sync"
)

// SafeHeap is a mutex-protected wrapper around Heap for concurrent
// access. A single mutex guards the whole chain, since almost every
// operation may touch arbitrary neighboring blocks.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafeHeap creates a thread-safe heap over a fresh arena of at least
// size bytes. Options are passed through to New.
func NewSafeHeap(size uint64, opts ...Option) (*SafeHeap, error) {
	h, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeHeap{h: h}, nil
}

// Alloc thread-safely allocates size bytes.
func (s *SafeHeap) Alloc(size uint64) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Alloc(size)
}

// Free thread-safely releases the allocation behind ref.
func (s *SafeHeap) Free(ref Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Free(ref)
}

// Realloc thread-safely resizes the allocation behind ref.
func (s *SafeHeap) Realloc(ref Ref, size uint64) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Realloc(ref, size)
}

// Calloc thread-safely allocates count*elemSize zeroed bytes.
func (s *SafeHeap) Calloc(count, elemSize uint64) Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Calloc(count, elemSize)
}

// Bytes thread-safely resolves ref to its payload slice. The slice
// aliases the arena buffer; the lock is released on return, so callers
// coordinating concurrent writers must synchronize payload access
// themselves.
func (s *SafeHeap) Bytes(ref Ref) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Bytes(ref)
}

// Blocks thread-safely returns descriptors for every block in the chain.
func (s *SafeHeap) Blocks() []BlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Blocks()
}

// Dump thread-safely writes a snapshot of every block to w.
func (s *SafeHeap) Dump(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Dump(w)
}

// Size thread-safely returns the total arena size.
func (s *SafeHeap) Size() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Size()
}

// Close thread-safely releases the backing buffer.
func (s *SafeHeap) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Close()
}
