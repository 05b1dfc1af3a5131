package heapalloc

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap creates a heap whose diagnostics go nowhere, so expected
// invalid-input tests do not pollute test output.
func newTestHeap(t *testing.T, size uint64) *Heap {
	t.Helper()
	h, err := New(size, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// checkInvariants verifies the structural invariants of the chain: it
// tiles the arena exactly, links are consistent, payload sizes are
// aligned and at least MinPayload, and no two adjacent blocks are free.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	blocks := h.Blocks()
	require.NotEmpty(t, blocks)

	var off uint64
	prev := uint64(NilOffset)
	prevFree := false
	for i, bi := range blocks {
		require.Equal(t, off, bi.HeaderOffset, "block %d: header must start where the previous payload ended", i)
		require.Equal(t, prev, bi.Prev, "block %d: prev link", i)
		require.Zero(t, bi.PayloadSize%Alignment, "block %d: payload size must be aligned", i)
		require.GreaterOrEqual(t, bi.PayloadSize, uint64(MinPayload), "block %d: payload below minimum", i)
		if i > 0 {
			require.False(t, prevFree && bi.Free, "blocks %d and %d are both free", i-1, i)
		}
		prev = bi.HeaderOffset
		prevFree = bi.Free
		off += HeaderSize + bi.PayloadSize
	}
	require.Equal(t, h.Size(), off, "last payload must end exactly at the arena end")
	require.Equal(t, uint64(NilOffset), blocks[len(blocks)-1].Next, "last block must have no next link")
}
