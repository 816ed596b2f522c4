// Package format describes the on-region layout of allocator block headers.
// Every block in the managed region starts with a fixed-size header followed
// immediately by its payload. Headers are stored little-endian inside the
// region itself so the directory survives only as bytes, with offsets in
// place of pointers.
package format

const (
	// BlockHeaderSize is the number of bytes preceding every payload.
	// Layout (little-endian):
	//   0x00  size     payload byte count (multiple of 8)
	//   0x08  next     offset of the successor header, NilOffset when tail
	//   0x10  prev     offset of the predecessor header, NilOffset when head
	//   0x18  free     1 when the block is free, 0 when allocated
	//   0x20  payload  offset of this block's payload (self reference)
	BlockHeaderSize = 0x28

	BlockSizeOffset    = 0x00
	BlockNextOffset    = 0x08
	BlockPrevOffset    = 0x10
	BlockFreeOffset    = 0x18
	BlockPayloadOffset = 0x20

	// NilOffset marks a missing next/prev link.
	NilOffset = ^uint64(0)

	// Alignment is the granularity of every payload size.
	Alignment     = 8
	AlignmentMask = Alignment - 1

	// WordSize is the copy granularity used when a block is relocated.
	WordSize = 8

	// MinRemainder is the smallest payload worth carving off during a split.
	MinRemainder = 8

	// SplitThreshold is the minimum slack (block size minus request) that
	// makes a split worthwhile: room for a new header plus MinRemainder.
	SplitThreshold = BlockHeaderSize + MinRemainder
)
