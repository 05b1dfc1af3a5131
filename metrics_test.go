package heapalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	h := newTestHeap(t, 4096)

	ref := h.Alloc(100) // rounds to 112
	require.NotZero(t, ref)

	m := h.Metrics()
	assert.Equal(t, uint64(4096), m.TotalSize)
	assert.Equal(t, uint64(112), m.UsedBytes)
	assert.Equal(t, uint64(4096-112-2*HeaderSize), m.FreeBytes)
	assert.Equal(t, uint64(2*HeaderSize), m.HeaderBytes)
	assert.Equal(t, 2, m.NumBlocks)
	assert.Equal(t, 1, m.NumFree)
	assert.Equal(t, m.FreeBytes, m.LargestFree)
	assert.InDelta(t, 112.0/4096.0, m.Utilization, 1e-9)

	// Accounting identity: every byte is a header, used, or free.
	assert.Equal(t, m.TotalSize, m.UsedBytes+m.FreeBytes+m.HeaderBytes)
}

func TestMetricsAccessorsMatchSnapshot(t *testing.T) {
	h := newTestHeap(t, 1<<16)

	refs := []Ref{h.Alloc(64), h.Alloc(300), h.Alloc(1000)}
	for _, r := range refs {
		require.NotZero(t, r)
	}
	h.Free(refs[1])

	m := h.Metrics()
	assert.Equal(t, m.UsedBytes, h.UsedBytes())
	assert.Equal(t, m.FreeBytes, h.FreeBytes())
	assert.Equal(t, m.NumBlocks, h.NumBlocks())
	assert.Equal(t, m.NumFree, h.NumFree())
	assert.Equal(t, m.LargestFree, h.LargestFree())
	assert.InDelta(t, m.Utilization, h.Utilization(), 1e-9)
}

func TestLargestFreeTracksFragmentation(t *testing.T) {
	h := newTestHeap(t, 4096)

	a := h.Alloc(512)
	b := h.Alloc(512)
	require.NotZero(t, a)
	require.NotZero(t, b)

	// Freeing the first block leaves two free spans; the largest is the
	// trailing one.
	h.Free(a)
	m := h.Metrics()
	assert.Equal(t, 2, m.NumFree)
	assert.Equal(t, uint64(4096-3*HeaderSize-2*512), m.LargestFree)

	// An allocation larger than the largest span must fail even though
	// the total free bytes would cover it.
	if m.FreeBytes > m.LargestFree {
		assert.Zero(t, h.Alloc(m.LargestFree+Alignment))
	}
}
