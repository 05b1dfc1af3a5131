//go:build !unix

package heapalloc

// acquireBuffer obtains the arena's backing memory from the Go allocator.
// Anonymous mappings are not supported on this platform; WithMmap is
// ignored.
func acquireBuffer(n int, _ bool) ([]byte, func() error, error) {
	return make([]byte, n), nil, nil
}
