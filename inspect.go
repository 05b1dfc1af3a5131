package heapalloc

import (
	"fmt"
	"io"
)

// NilOffset marks an absent neighbor link in BlockInfo.
const NilOffset = nilOff

// BlockInfo describes one block of the chain for inspection.
type BlockInfo struct {
	HeaderOffset  uint64 // offset of the header from the arena base
	PayloadOffset uint64 // offset of the payload; equals Ref for this block
	PayloadSize   uint64
	Free          bool
	Prev          uint64 // header offset of the previous block, NilOffset if first
	Next          uint64 // header offset of the next block, NilOffset if last
}

// Blocks walks the chain from head to tail and returns a descriptor per
// block. The walk is read-only and is never used by an allocation path.
func (h *Heap) Blocks() []BlockInfo {
	h.panicIfClosed()

	var infos []BlockInfo
	b := block{h: h, off: 0}
	for {
		infos = append(infos, BlockInfo{
			HeaderOffset:  b.off,
			PayloadOffset: b.off + HeaderSize,
			PayloadSize:   b.size(),
			Free:          b.free(),
			Prev:          b.prevOff(),
			Next:          b.nextOff(),
		})
		nxt, ok := b.next()
		if !ok {
			return infos
		}
		b = nxt
	}
}

// Dump writes a human-readable snapshot of every block to w. The output
// is diagnostic text, not a parsed format.
func (h *Heap) Dump(w io.Writer) {
	blocks := h.Blocks()
	fmt.Fprintf(w, "heapalloc: arena total=%d bytes blocks=%d\n", h.size, len(blocks))
	for i, bi := range blocks {
		state := "no"
		if bi.Free {
			state = "YES"
		}
		fmt.Fprintf(w, " block[%d] hdr=0x%06x payload=0x%06x size=%d free=%s prev=%s next=%s\n",
			i, bi.HeaderOffset, bi.PayloadOffset, bi.PayloadSize, state,
			fmtOffset(bi.Prev), fmtOffset(bi.Next))
	}
}

func fmtOffset(off uint64) string {
	if off == NilOffset {
		return "-"
	}
	return fmt.Sprintf("0x%06x", off)
}
