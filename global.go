package heapalloc

import (
	"io"
	"os"
	"sync"
)

// The package-level API manages one process-wide heap, mirroring a C
// allocator's global state. Libraries should prefer explicit Heap values;
// the default heap exists for programs that want drop-in malloc-style
// calls.
var (
	defaultOnce sync.Once
	defaultHeap *Heap
)

// Init creates the process-wide default heap with the given arena size.
// The first call wins: subsequent calls are no-ops regardless of size and
// return nil. Returns an error only when the first call fails to acquire
// the backing buffer; the default heap is then permanently unavailable.
func Init(size uint64) error {
	var err error
	defaultOnce.Do(func() {
		defaultHeap, err = New(size)
	})
	return err
}

// mustDefault returns the default heap, creating it with DefaultHeapSize
// if no explicit Init happened. Panics if the arena cannot be acquired:
// without a heap the package-level API cannot proceed at all.
func mustDefault() *Heap {
	if err := Init(DefaultHeapSize); err != nil {
		panic("heapalloc: " + err.Error())
	}
	if defaultHeap == nil {
		panic("heapalloc: default heap unavailable")
	}
	return defaultHeap
}

// Alloc allocates size bytes from the default heap.
func Alloc(size uint64) Ref {
	if size == 0 {
		return 0
	}
	return mustDefault().Alloc(size)
}

// Free releases ref on the default heap. Free(0) is a no-op.
func Free(ref Ref) {
	if ref == 0 {
		return
	}
	mustDefault().Free(ref)
}

// Realloc resizes ref on the default heap.
func Realloc(ref Ref, size uint64) Ref {
	return mustDefault().Realloc(ref, size)
}

// Calloc allocates count*elemSize zeroed bytes from the default heap.
func Calloc(count, elemSize uint64) Ref {
	return mustDefault().Calloc(count, elemSize)
}

// Bytes resolves ref to its payload slice on the default heap.
func Bytes(ref Ref) []byte {
	return mustDefault().Bytes(ref)
}

// Blocks returns block descriptors for the default heap.
func Blocks() []BlockInfo {
	return mustDefault().Blocks()
}

// Metrics returns a statistics snapshot for the default heap.
func Metrics() HeapMetrics {
	return mustDefault().Metrics()
}

// Dump writes a snapshot of the default heap's blocks to w, or to
// standard output when w is nil.
func Dump(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	mustDefault().Dump(w)
}
