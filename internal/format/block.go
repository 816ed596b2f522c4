package format

// Header is the decoded form of a block header.
type Header struct {
	Size    int  // payload bytes
	Next    int  // successor header offset, -1 when tail
	Prev    int  // predecessor header offset, -1 when head
	Free    bool // free or allocated
	Payload int  // payload offset recorded at creation
}

// DecodeHeader reads the header stored at off.
func DecodeHeader(b []byte, off int) (Header, error) {
	if off < 0 || off+BlockHeaderSize > len(b) {
		return Header{}, ErrTruncated
	}
	if !IsAligned8(off) {
		return Header{}, ErrMisaligned
	}
	return Header{
		Size:    int(ReadU64(b, off+BlockSizeOffset)),
		Next:    ReadOffset(b, off+BlockNextOffset),
		Prev:    ReadOffset(b, off+BlockPrevOffset),
		Free:    ReadU64(b, off+BlockFreeOffset) != 0,
		Payload: ReadOffset(b, off+BlockPayloadOffset),
	}, nil
}

// EncodeHeader writes h at off. The caller guarantees the header fits.
func EncodeHeader(b []byte, off int, h Header) {
	PutU64(b, off+BlockSizeOffset, uint64(h.Size))
	PutOffset(b, off+BlockNextOffset, h.Next)
	PutOffset(b, off+BlockPrevOffset, h.Prev)
	var free uint64
	if h.Free {
		free = 1
	}
	PutU64(b, off+BlockFreeOffset, free)
	PutOffset(b, off+BlockPayloadOffset, h.Payload)
}

// PayloadOf returns the payload offset for a header at off.
func PayloadOf(off int) int {
	return off + BlockHeaderSize
}

// HeaderOf returns the header offset for a payload at p.
func HeaderOf(p int) int {
	return p - BlockHeaderSize
}
