package memory

import (
	"encoding/binary"
	"io"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Jorgear27/Ya-lo-borro/internal/format"
)

// Blocks returns every block of the directory in address order.
func (h *Heap) Blocks() []BlockInfo {
	var out []BlockInfo
	h.dir.walk(func(off int) bool {
		out = append(out, BlockInfo{
			Header: off,
			Ref:    Ref(format.PayloadOf(off)),
			Size:   h.dir.size(off),
			Free:   h.dir.free(off),
		})
		return true
	})
	return out
}

// Digest hashes the block layout (offsets, sizes, free flags) and the
// region size. Heaps that went through the same operations agree on it.
func (h *Heap) Digest() uint64 {
	blocks := h.Blocks()
	b := make([]byte, 0, 8+len(blocks)*17)
	b = binary.LittleEndian.AppendUint64(b, uint64(h.region.Len()))
	for _, blk := range blocks {
		b = binary.LittleEndian.AppendUint64(b, uint64(blk.Header))
		b = binary.LittleEndian.AppendUint64(b, uint64(blk.Size))
		if blk.Free {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	}
	return xxh3.Hash(b)
}

// Dump writes a human readable listing of the directory to w.
func (h *Heap) Dump(w io.Writer) error {
	p := message.NewPrinter(language.English)
	u := h.Usage()

	if _, err := p.Fprintf(w, "heap: policy=%s extent=%d blocks=%d free=%d\n",
		h.policy, u.Extent, u.Blocks, u.FreeBlocks); err != nil {
		return err
	}
	for i, blk := range h.Blocks() {
		state := "used"
		if blk.Free {
			state = "free"
		}
		if _, err := p.Fprintf(w, "  #%-4d hdr=0x%06X ref=0x%06X size=%d %s\n",
			i, blk.Header, uint64(blk.Ref), blk.Size, state); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "usage: allocated=%d free=%d fragmentation=%.2f%% digest=%016x\n",
		u.Allocated, u.Free, u.Fragmentation(), h.Digest())
	return err
}
