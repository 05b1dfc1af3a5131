package heapalloc

// UsedBytes returns the payload bytes of all allocated blocks. Internal
// fragmentation from absorbed split remainders is counted as used.
func (h *Heap) UsedBytes() uint64 {
	var sum uint64
	for _, bi := range h.Blocks() {
		if !bi.Free {
			sum += bi.PayloadSize
		}
	}
	return sum
}

// FreeBytes returns the payload bytes of all free blocks.
func (h *Heap) FreeBytes() uint64 {
	var sum uint64
	for _, bi := range h.Blocks() {
		if bi.Free {
			sum += bi.PayloadSize
		}
	}
	return sum
}

// NumBlocks returns the number of blocks in the chain.
func (h *Heap) NumBlocks() int {
	return len(h.Blocks())
}

// NumFree returns the number of free blocks in the chain.
func (h *Heap) NumFree() int {
	n := 0
	for _, bi := range h.Blocks() {
		if bi.Free {
			n++
		}
	}
	return n
}

// LargestFree returns the payload size of the largest free block: the
// biggest single allocation the heap can currently satisfy.
func (h *Heap) LargestFree() uint64 {
	var largest uint64
	for _, bi := range h.Blocks() {
		if bi.Free && bi.PayloadSize > largest {
			largest = bi.PayloadSize
		}
	}
	return largest
}

// Utilization returns the ratio of allocated payload bytes to total arena
// size (0.0 to 1.0).
func (h *Heap) Utilization() float64 {
	if h.size == 0 {
		return 0
	}
	return float64(h.UsedBytes()) / float64(h.size)
}

// Metrics returns a snapshot of heap statistics in one chain walk.
func (h *Heap) Metrics() HeapMetrics {
	m := HeapMetrics{TotalSize: h.size}
	for _, bi := range h.Blocks() {
		m.NumBlocks++
		m.HeaderBytes += HeaderSize
		if bi.Free {
			m.NumFree++
			m.FreeBytes += bi.PayloadSize
			if bi.PayloadSize > m.LargestFree {
				m.LargestFree = bi.PayloadSize
			}
		} else {
			m.UsedBytes += bi.PayloadSize
		}
	}
	if m.TotalSize > 0 {
		m.Utilization = float64(m.UsedBytes) / float64(m.TotalSize)
	}
	return m
}

// HeapMetrics contains statistical information about a heap.
type HeapMetrics struct {
	TotalSize   uint64  // Arena size, headers included
	UsedBytes   uint64  // Payload bytes of allocated blocks
	FreeBytes   uint64  // Payload bytes of free blocks
	HeaderBytes uint64  // Bytes consumed by block headers
	NumBlocks   int     // Blocks in the chain
	NumFree     int     // Free blocks in the chain
	LargestFree uint64  // Largest single allocation currently possible
	Utilization float64 // UsedBytes / TotalSize (0.0-1.0)
}

// Thread-safe metrics for SafeHeap

// UsedBytes thread-safely returns the payload bytes of allocated blocks.
func (s *SafeHeap) UsedBytes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.UsedBytes()
}

// FreeBytes thread-safely returns the payload bytes of free blocks.
func (s *SafeHeap) FreeBytes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.FreeBytes()
}

// NumBlocks thread-safely returns the number of blocks in the chain.
func (s *SafeHeap) NumBlocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.NumBlocks()
}

// NumFree thread-safely returns the number of free blocks.
func (s *SafeHeap) NumFree() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.NumFree()
}

// LargestFree thread-safely returns the largest free payload size.
func (s *SafeHeap) LargestFree() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.LargestFree()
}

// Utilization thread-safely returns the used-to-total ratio.
func (s *SafeHeap) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Utilization()
}

// Metrics thread-safely returns a snapshot of heap statistics.
func (s *SafeHeap) Metrics() HeapMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}
