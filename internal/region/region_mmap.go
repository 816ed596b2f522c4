//go:build linux || darwin

package region

import (
	"errors"

	"golang.org/x/sys/unix"
)

// reserve maps an anonymous private range without committing swap for it.
// Pages are only backed once touched.
func reserve(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE|unix.MAP_NORESERVE)
	if err != nil {
		return nil, nil, err
	}
	release := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}

// discard drops the physical pages behind b.
func discard(b []byte) error {
	return unix.Madvise(b, unix.MADV_DONTNEED)
}
