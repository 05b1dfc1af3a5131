package heapalloc

import "testing"

// TestDefaultHeap exercises the process-wide heap in one function:
// initialization is first-call-wins, so the package-level API is covered
// in a single deterministic sequence.
func TestDefaultHeap(t *testing.T) {
	const size = 1 << 20
	if err := Init(size); err != nil {
		t.Fatalf("Init(%d) error: %v", size, err)
	}

	// Later calls are no-ops regardless of size.
	if err := Init(64); err != nil {
		t.Fatalf("second Init error: %v", err)
	}
	if got := Metrics().TotalSize; got != size {
		t.Fatalf("TotalSize after second Init = %d, want %d (first call wins)", got, size)
	}

	ref := Alloc(128)
	if ref == 0 {
		t.Fatal("Alloc on default heap failed")
	}
	copy(Bytes(ref), "payload")
	if string(Bytes(ref)[:7]) != "payload" {
		t.Errorf("payload round trip failed: %q", Bytes(ref)[:7])
	}

	ref = Realloc(ref, 256)
	if ref == 0 {
		t.Fatal("Realloc on default heap failed")
	}

	z := Calloc(4, 8)
	if z == 0 {
		t.Fatal("Calloc on default heap failed")
	}
	for i, v := range Bytes(z) {
		if v != 0 {
			t.Fatalf("calloc byte %d = %d, want 0", i, v)
		}
	}

	Free(z)
	Free(ref)
	Free(0) // explicitly safe

	if got := len(Blocks()); got != 1 {
		t.Errorf("blocks after freeing everything = %d, want 1", got)
	}
}
