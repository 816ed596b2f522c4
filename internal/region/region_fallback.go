//go:build !linux && !darwin

package region

// reserve allocates the full capacity as a Go slice when anonymous mappings
// are not available.
func reserve(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}

// discard is a no-op without madvise.
func discard([]byte) error { return nil }
