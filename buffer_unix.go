//go:build unix

package heapalloc

import "golang.org/x/sys/unix"

// acquireBuffer obtains the arena's backing memory in a single bulk
// request. With mmap selected the buffer is an anonymous private mapping
// taken directly from the operating system, kept off the Go heap;
// otherwise it comes from the Go allocator. Both paths return zero-filled
// memory. The returned release func unmaps the buffer and is nil for the
// Go-heap path.
func acquireBuffer(n int, useMmap bool) ([]byte, func() error, error) {
	if !useMmap {
		return make([]byte, n), nil, nil
	}
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return buf, func() error { return unix.Munmap(buf) }, nil
}
