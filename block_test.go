package heapalloc

import (
	"errors"
	"testing"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		input    uint64
		expected uint64
	}{
		{0, 0},
		{1, Alignment},
		{Alignment - 1, Alignment},
		{Alignment, Alignment},
		{Alignment + 1, Alignment * 2},
		{100, 112},
	}

	for _, tt := range tests {
		if got := alignUp(tt.input); got != tt.expected {
			t.Errorf("alignUp(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := newTestHeap(t, 256)
	b := block{h: h, off: 0}

	b.setSize(224)
	b.setFree(false)
	b.setPrevOff(nilOff)
	b.setNextOff(96)

	if got := b.size(); got != 224 {
		t.Errorf("size() = %d, want 224", got)
	}
	if b.free() {
		t.Error("free() = true, want false")
	}
	if got := b.prevOff(); got != nilOff {
		t.Errorf("prevOff() = %d, want nilOff", got)
	}
	if got := b.nextOff(); got != 96 {
		t.Errorf("nextOff() = %d, want 96", got)
	}

	b.setFree(true)
	if !b.free() {
		t.Error("free() = false after setFree(true)")
	}
	if got := b.size(); got != 224 {
		t.Errorf("size() changed by setFree: %d", got)
	}
}

func TestNeighborViews(t *testing.T) {
	h := newTestHeap(t, 1024)
	if ref := h.Alloc(64); ref == 0 {
		t.Fatal("Alloc(64) returned null ref")
	}

	first := block{h: h, off: 0}
	nxt, ok := first.next()
	if !ok {
		t.Fatal("expected a second block after split")
	}
	if nxt.off != HeaderSize+64 {
		t.Errorf("next block offset = %d, want %d", nxt.off, HeaderSize+64)
	}
	prv, ok := nxt.prev()
	if !ok || prv.off != 0 {
		t.Errorf("prev of second block = (%d, %v), want (0, true)", prv.off, ok)
	}
	if _, ok := first.prev(); ok {
		t.Error("first block must have no prev")
	}
}

func TestBlockFor(t *testing.T) {
	h := newTestHeap(t, 256)

	b, err := h.blockFor(Ref(HeaderSize))
	if err != nil {
		t.Fatalf("blockFor(valid) error: %v", err)
	}
	if b.off != 0 {
		t.Errorf("blockFor header offset = %d, want 0", b.off)
	}

	if _, err := h.blockFor(Ref(h.Size())); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("blockFor(past end) = %v, want ErrOutOfRange", err)
	}
	if _, err := h.blockFor(Ref(HeaderSize - 1)); !errors.Is(err, ErrBadHeader) {
		t.Errorf("blockFor(inside first header) = %v, want ErrBadHeader", err)
	}
}
