package format

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignDown8 returns n rounded down to a whole number of words.
func AlignDown8(n int) int {
	return n & ^(WordSize - 1)
}

// IsAligned8 reports whether n is a multiple of 8.
func IsAligned8(n int) bool {
	return n&AlignmentMask == 0
}
