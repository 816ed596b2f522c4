package memory

import "errors"

var (
	// ErrZeroSize indicates a request for zero (or a negative number of) bytes.
	ErrZeroSize = errors.New("memory: size must be greater than zero")

	// ErrNoMemory indicates the region could not grow to satisfy a request.
	ErrNoMemory = errors.New("memory: out of memory")

	// ErrBadRef indicates a reference that does not name a live allocated block.
	ErrBadRef = errors.New("memory: bad reference")

	// ErrBadPolicy indicates an unknown placement policy.
	ErrBadPolicy = errors.New("memory: unknown placement policy")

	// ErrOverflow indicates count*size does not fit in an int.
	ErrOverflow = errors.New("memory: size overflow")
)
