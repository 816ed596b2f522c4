// Package region provides a growable byte range with tail-only growth.
//
// A Region reserves its full capacity up front so the backing memory never
// moves: slices handed out over earlier bytes stay valid across Grow and
// ShrinkTo. Only the logical length changes, and only at the tail.
package region

import (
	"errors"
	"fmt"
	"os"

	"github.com/Jorgear27/Ya-lo-borro/internal/buf"
)

var (
	// ErrNoSpace indicates the reservation cannot be extended any further.
	ErrNoSpace = errors.New("region: out of space")

	// ErrBadOffset indicates a shrink target outside [0, Len()].
	ErrBadOffset = errors.New("region: bad offset")

	// ErrClosed indicates use after Close.
	ErrClosed = errors.New("region: closed")
)

// Region is a contiguous, reserved byte range whose logical end (the break)
// moves only at the tail.
type Region struct {
	data    []byte // full reservation, len == capacity
	size    int    // current break
	release func() error
	closed  bool
}

// New reserves capacity bytes (rounded up to whole pages) and returns an
// empty Region.
func New(capacity int) (*Region, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("region: invalid capacity %d", capacity)
	}
	page := os.Getpagesize()
	rounded, ok := buf.AddOverflowSafe(capacity, page-1)
	if !ok {
		return nil, fmt.Errorf("region: capacity %d overflows", capacity)
	}
	rounded -= rounded % page

	data, release, err := reserve(rounded)
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", rounded, err)
	}
	return &Region{data: data, release: release}, nil
}

// Grow extends the break by n bytes and returns the previous break, which is
// where the caller's new bytes begin.
func (r *Region) Grow(n int) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative growth %d", ErrNoSpace, n)
	}
	end, err := buf.CheckSpan(len(r.data), r.size, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoSpace, err)
	}
	old := r.size
	r.size = end
	return old, nil
}

// ShrinkTo retracts the break to pos. Whole pages above the new break are
// handed back to the operating system where the platform supports it.
func (r *Region) ShrinkTo(pos int) error {
	if r.closed {
		return ErrClosed
	}
	if pos < 0 || pos > r.size {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrBadOffset, pos, r.size)
	}
	old := r.size
	r.size = pos

	page := os.Getpagesize()
	from := (pos + page - 1) / page * page
	to := (old + page - 1) / page * page
	if to > len(r.data) {
		to = len(r.data)
	}
	if from < to {
		// Best effort; the bytes are already outside the logical range.
		_ = discard(r.data[from:to])
	}
	return nil
}

// Len returns the current break.
func (r *Region) Len() int { return r.size }

// Cap returns the reserved capacity.
func (r *Region) Cap() int { return len(r.data) }

// Bytes returns the live range [0, Len()). The slice shares memory with the
// region and is capped so appends cannot spill past the break.
func (r *Region) Bytes() []byte {
	return r.data[:r.size:r.size]
}

// Close releases the reservation. Further use returns ErrClosed.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.size = 0
	err := r.release()
	r.data = nil
	return err
}
