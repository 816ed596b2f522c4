package format

import "encoding/binary"

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutOffset stores an int offset, mapping negative values to NilOffset.
func PutOffset(b []byte, off int, v int) {
	if v < 0 {
		PutU64(b, off, NilOffset)
		return
	}
	PutU64(b, off, uint64(v))
}

// ReadOffset loads an offset written by PutOffset. NilOffset decodes as -1.
func ReadOffset(b []byte, off int) int {
	v := ReadU64(b, off)
	if v == NilOffset {
		return -1
	}
	return int(v)
}
