package memory

import (
	"math"

	"github.com/Jorgear27/Ya-lo-borro/internal/buf"
	"github.com/Jorgear27/Ya-lo-borro/internal/format"
	"github.com/Jorgear27/Ya-lo-borro/internal/region"
)

// directory is the address-ordered list of block headers stored inside the
// region. Blocks are named by header offset; -1 means "no block".
type directory struct {
	r     *region.Region
	head  int
	stats *Stats
}

func (d *directory) mem() []byte { return d.r.Bytes() }

func (d *directory) empty() bool { return d.head < 0 }

func (d *directory) size(off int) int {
	return int(format.ReadU64(d.mem(), off+format.BlockSizeOffset))
}

func (d *directory) setSize(off, n int) {
	format.PutU64(d.mem(), off+format.BlockSizeOffset, uint64(n))
}

func (d *directory) next(off int) int {
	return format.ReadOffset(d.mem(), off+format.BlockNextOffset)
}

func (d *directory) setNext(off, n int) {
	format.PutOffset(d.mem(), off+format.BlockNextOffset, n)
}

func (d *directory) prev(off int) int {
	return format.ReadOffset(d.mem(), off+format.BlockPrevOffset)
}

func (d *directory) setPrev(off, p int) {
	format.PutOffset(d.mem(), off+format.BlockPrevOffset, p)
}

func (d *directory) free(off int) bool {
	return format.ReadU64(d.mem(), off+format.BlockFreeOffset) != 0
}

func (d *directory) setFree(off int, free bool) {
	var v uint64
	if free {
		v = 1
	}
	format.PutU64(d.mem(), off+format.BlockFreeOffset, v)
}

// poison clears the payload self reference so a stale Ref to a dissolved
// header no longer validates.
func (d *directory) poison(off int) {
	format.PutOffset(d.mem(), off+format.BlockPayloadOffset, -1)
}

// end returns the offset one past the payload of the block at off.
func (d *directory) end(off int) int {
	return format.PayloadOf(off) + d.size(off)
}

// append grows the region by one header plus s payload bytes and links the
// new allocated block after last (or makes it the head when last is -1).
func (d *directory) append(last, s int) (int, error) {
	n, ok := buf.AddOverflowSafe(format.BlockHeaderSize, s)
	if !ok {
		return -1, region.ErrNoSpace
	}
	off, err := d.r.Grow(n)
	if err != nil {
		return -1, err
	}
	d.stats.GrowCalls++
	d.stats.GrowBytes += int64(n)
	tracef("GROW", "off=0x%X size=%d total=%d", off, s, d.r.Len())

	format.EncodeHeader(d.mem(), off, format.Header{
		Size:    s,
		Next:    -1,
		Prev:    last,
		Free:    false,
		Payload: format.PayloadOf(off),
	})
	if last >= 0 {
		d.setNext(last, off)
	} else {
		d.head = off
	}
	return off, nil
}

// unlinkNext removes the successor of off from the list and poisons it.
func (d *directory) unlinkNext(off int) {
	n := d.next(off)
	nn := d.next(n)
	d.setNext(off, nn)
	if nn >= 0 {
		d.setPrev(nn, off)
	}
	d.poison(n)
}

// locate maps a reference to its header offset. It only succeeds for a
// reference that is the recorded payload of an in-range, aligned header.
func (d *directory) locate(ref Ref) (int, bool) {
	if d.empty() || ref == NilRef || uint64(ref) > math.MaxInt {
		return -1, false
	}
	p := int(ref)
	if p < format.BlockHeaderSize || !format.IsAligned8(p) {
		return -1, false
	}
	off := format.HeaderOf(p)
	h, err := format.DecodeHeader(d.mem(), off)
	if err != nil || h.Payload != p || h.Size < 0 {
		return -1, false
	}
	if _, err := buf.CheckSpan(d.r.Len(), p, h.Size); err != nil {
		return -1, false
	}
	return off, true
}

// walk calls fn for every block in address order until fn returns false.
func (d *directory) walk(fn func(off int) bool) {
	for off := d.head; off >= 0; off = d.next(off) {
		if !fn(off) {
			return
		}
	}
}
