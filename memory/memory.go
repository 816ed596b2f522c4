package memory

import (
	"fmt"

	"github.com/Jorgear27/Ya-lo-borro/internal/buf"
	"github.com/Jorgear27/Ya-lo-borro/internal/format"
	"github.com/Jorgear27/Ya-lo-borro/internal/region"
)

// Heap is an allocator over one growable region.
type Heap struct {
	region *region.Region
	dir    directory
	policy Policy
	log    OpLogger
	stats  Stats
}

// New reserves a region of opts.Capacity bytes and returns an empty Heap.
func New(opts Options) (*Heap, error) {
	if err := checkOptions(opts); err != nil {
		return nil, err
	}
	r, err := region.New(opts.Capacity)
	if err != nil {
		return nil, err
	}
	h := &Heap{
		region: r,
		policy: opts.Policy,
		log:    opts.Logger,
	}
	h.dir = directory{r: r, head: -1, stats: &h.stats}
	return h, nil
}

// Close releases the region. References and payload slices become invalid.
func (h *Heap) Close() error {
	h.dir.head = -1
	return h.region.Close()
}

// Alloc allocates at least size bytes and returns the block's reference and
// its payload. The payload is not zeroed.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	h.stats.AllocCalls++
	off, err := h.alloc(size)
	if err != nil {
		return NilRef, nil, err
	}
	ref := Ref(format.PayloadOf(off))
	h.notify(OpMalloc, size, ref)
	return ref, h.payload(off, size), nil
}

// alloc is Alloc without logging; Realloc relocation goes through here.
func (h *Heap) alloc(size int) (int, error) {
	if size <= 0 {
		return -1, ErrZeroSize
	}
	if size > h.region.Cap() {
		return -1, fmt.Errorf("%w: %d bytes requested, capacity %d", ErrNoMemory, size, h.region.Cap())
	}
	s := format.Align8(size)

	if h.dir.empty() {
		return h.extend(-1, s)
	}
	b, last := h.dir.find(h.policy, s)
	if b < 0 {
		return h.extend(last, s)
	}
	if canSplit(h.dir.size(b), s) {
		h.dir.split(b, s)
	}
	h.dir.setFree(b, false)
	tracef("ALLOC", "policy=%s off=0x%X size=%d", h.policy, b, h.dir.size(b))
	return b, nil
}

func (h *Heap) extend(last, s int) (int, error) {
	off, err := h.dir.append(last, s)
	if err != nil {
		return -1, fmt.Errorf("%w: grow by %d: %w", ErrNoMemory, format.BlockHeaderSize+s, err)
	}
	return off, nil
}

// Free releases the block named by ref. An unknown or already free reference
// returns ErrBadRef and leaves the heap untouched.
func (h *Heap) Free(ref Ref) error {
	h.stats.FreeCalls++
	if err := h.release(ref); err != nil {
		return err
	}
	h.notify(OpFree, 0, ref)
	return nil
}

// release is Free without logging.
func (h *Heap) release(ref Ref) error {
	off, ok := h.dir.locate(ref)
	if !ok || h.dir.free(off) {
		return fmt.Errorf("%w: %#x", ErrBadRef, uint64(ref))
	}
	h.dir.setFree(off, true)
	tracef("FREE", "off=0x%X size=%d", off, h.dir.size(off))

	// Fusing from a free predecessor also absorbs off and whatever follows it.
	if p := h.dir.prev(off); p >= 0 && h.dir.free(p) {
		off = p
	}
	_, err := h.dir.fuse(off)
	return err
}

// Calloc allocates count*size bytes and zeroes them.
func (h *Heap) Calloc(count, size int) (Ref, []byte, error) {
	h.stats.CallocCalls++
	if count < 0 || size < 0 {
		return NilRef, nil, ErrZeroSize
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return NilRef, nil, fmt.Errorf("%w: %d * %d", ErrOverflow, count, size)
	}
	off, err := h.alloc(total)
	if err != nil {
		return NilRef, nil, err
	}
	p := h.payload(off, total)
	clear(p[:cap(p)])

	ref := Ref(format.PayloadOf(off))
	h.notify(OpCalloc, total, ref)
	return ref, p, nil
}

// Realloc resizes the block named by ref to size bytes and returns the
// (possibly moved) reference. The block stays in place when it is already
// large enough or when absorbing a free successor makes it so; otherwise the
// contents are copied to a new block and the old one is released.
//
// Realloc(NilRef, n) is Alloc(n). Realloc(ref, 0) frees ref and returns NilRef.
func (h *Heap) Realloc(ref Ref, size int) (Ref, []byte, error) {
	h.stats.ReallocCalls++
	if ref == NilRef {
		off, err := h.alloc(size)
		if err != nil {
			return NilRef, nil, err
		}
		ref = Ref(format.PayloadOf(off))
		h.notify(OpRealloc, size, ref)
		return ref, h.payload(off, size), nil
	}

	off, ok := h.dir.locate(ref)
	if !ok || h.dir.free(off) {
		return NilRef, nil, fmt.Errorf("%w: %#x", ErrBadRef, uint64(ref))
	}
	if size <= 0 {
		if err := h.release(ref); err != nil {
			return NilRef, nil, err
		}
		h.notify(OpRealloc, 0, NilRef)
		return NilRef, nil, nil
	}

	off, err := h.resize(off, size)
	if err != nil {
		return NilRef, nil, err
	}
	ref = Ref(format.PayloadOf(off))
	h.notify(OpRealloc, size, ref)
	return ref, h.payload(off, size), nil
}

func (h *Heap) resize(off, size int) (int, error) {
	if size > h.region.Cap() {
		return -1, fmt.Errorf("%w: %d bytes requested, capacity %d", ErrNoMemory, size, h.region.Cap())
	}
	s := format.Align8(size)

	if h.dir.size(off) >= s {
		return off, h.trim(off, s)
	}

	if n := h.dir.next(off); n >= 0 && h.dir.free(n) &&
		h.dir.size(off)+format.BlockHeaderSize+h.dir.size(n) >= s {
		// off is allocated, so fuse only absorbs successors here.
		if _, err := h.dir.fuse(off); err != nil {
			return -1, err
		}
		h.stats.InPlaceResizes++
		return off, h.trim(off, s)
	}

	moved, err := h.alloc(size)
	if err != nil {
		return -1, err
	}
	n := format.AlignDown8(min(h.dir.size(off), h.dir.size(moved)))
	mem := h.region.Bytes()
	src, dst := format.PayloadOf(off), format.PayloadOf(moved)
	copy(mem[dst:dst+n], mem[src:src+n])
	h.stats.Relocations++
	tracef("REALLOC", "moved 0x%X -> 0x%X bytes=%d", off, moved, n)

	if err := h.release(Ref(src)); err != nil {
		return -1, err
	}
	return moved, nil
}

// trim splits an allocated block down to s bytes and fuses the remainder
// with whatever free space follows it.
func (h *Heap) trim(off, s int) error {
	if !canSplit(h.dir.size(off), s) {
		return nil
	}
	rest := h.dir.split(off, s)
	_, err := h.dir.fuse(rest)
	return err
}

// Bytes returns the full payload of the allocated block named by ref.
func (h *Heap) Bytes(ref Ref) ([]byte, error) {
	off, ok := h.dir.locate(ref)
	if !ok || h.dir.free(off) {
		return nil, fmt.Errorf("%w: %#x", ErrBadRef, uint64(ref))
	}
	return h.payload(off, h.dir.size(off)), nil
}

// payload returns n bytes of the block at off, capped at the block size.
func (h *Heap) payload(off, n int) []byte {
	p := format.PayloadOf(off)
	return h.region.Bytes()[p : p+n : p+h.dir.size(off)]
}

// SetPolicy selects the placement policy for later searches.
func (h *Heap) SetPolicy(p Policy) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrBadPolicy, p)
	}
	h.policy = p
	return nil
}

// Policy returns the placement policy in effect.
func (h *Heap) Policy() Policy { return h.policy }

// ClearAll marks every block free and forgets the directory without
// returning the region's bytes. The detached bytes stay reserved until
// Reset or Close; new blocks are appended after them.
func (h *Heap) ClearAll() {
	h.dir.walk(func(off int) bool {
		h.dir.setFree(off, true)
		return true
	})
	h.dir.head = -1
}

// Reset drops every block and shrinks the region to zero.
func (h *Heap) Reset() error {
	h.dir.head = -1
	if err := h.region.ShrinkTo(0); err != nil {
		return err
	}
	h.stats.ShrinkCalls++
	return nil
}

// Extent returns the region's current size in bytes, headers included.
func (h *Heap) Extent() int { return h.region.Len() }

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() Stats { return h.stats }

func (h *Heap) notify(op Op, size int, ref Ref) {
	if h.log != nil {
		h.log.LogOp(op, size, ref)
	}
}
