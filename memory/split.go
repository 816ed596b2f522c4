package memory

import "github.com/Jorgear27/Ya-lo-borro/internal/format"

// canSplit reports whether a block of size bytes holding s bytes leaves
// enough slack for a new header and a minimal payload.
func canSplit(size, s int) bool {
	return size-s >= format.SplitThreshold
}

// split trims the block at off to s payload bytes and links the remainder
// after it as a free block. It returns the remainder's header offset.
// The caller guarantees canSplit(size(off), s).
func (d *directory) split(off, s int) int {
	rest := format.PayloadOf(off) + s
	size := d.size(off) - s - format.BlockHeaderSize
	next := d.next(off)

	format.EncodeHeader(d.mem(), rest, format.Header{
		Size:    size,
		Next:    next,
		Prev:    off,
		Free:    true,
		Payload: format.PayloadOf(rest),
	})
	if next >= 0 {
		d.setPrev(next, rest)
	}
	d.setSize(off, s)
	d.setNext(off, rest)

	d.stats.SplitCount++
	tracef("SPLIT", "off=0x%X keep=%d rest=0x%X size=%d", off, s, rest, size)
	return rest
}

// fuse folds every free successor into the block at off. If off is then a
// free tail it is removed and the region shrinks back to its header; fuse
// returns -1 in that case and off otherwise.
//
// fuse never shrinks the region below an allocated block.
func (d *directory) fuse(off int) (int, error) {
	for n := d.next(off); n >= 0 && d.free(n); n = d.next(off) {
		d.setSize(off, d.size(off)+format.BlockHeaderSize+d.size(n))
		d.unlinkNext(off)
		d.stats.CoalesceForward++
		tracef("FUSE", "off=0x%X absorbed=0x%X size=%d", off, n, d.size(off))
	}
	if d.next(off) >= 0 || !d.free(off) {
		return off, nil
	}

	p := d.prev(off)
	d.poison(off)
	if err := d.r.ShrinkTo(off); err != nil {
		return off, err
	}
	if p >= 0 {
		d.setNext(p, -1)
	} else {
		d.head = -1
	}
	d.stats.ShrinkCalls++
	tracef("SHRINK", "to=0x%X", off)
	return -1, nil
}
