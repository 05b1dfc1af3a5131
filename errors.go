package heapalloc

import "errors"

var (
	// ErrOutOfRange indicates a ref that does not point into the arena.
	ErrOutOfRange = errors.New("heapalloc: pointer outside arena")

	// ErrBadHeader indicates a ref whose recovered block header lies
	// outside the arena.
	ErrBadHeader = errors.New("heapalloc: block header outside arena")

	// ErrDoubleFree indicates a free of a block that is already free.
	ErrDoubleFree = errors.New("heapalloc: double free")

	// ErrBufferAcquire indicates the backing buffer could not be acquired.
	ErrBufferAcquire = errors.New("heapalloc: cannot acquire backing buffer")
)
