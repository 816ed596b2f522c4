package memory

import (
	"errors"
	"fmt"
)

// Options is the configuration of a Heap.
type Options struct {
	// Capacity is the most bytes the region may grow to, headers included.
	// It is reserved up front and rounded up to whole pages.
	Capacity int

	// Policy is in effect until SetPolicy changes it.
	Policy Policy

	// Logger receives one call per operation. Nil disables operation logging.
	Logger OpLogger
}

// DefaultOptions
var DefaultOptions = Options{
	Capacity: 256 << 20, // 256 MB
	Policy:   FirstFit,
	Logger:   nil,
}

func checkOptions(options Options) error {
	if options.Capacity <= 0 {
		return errors.New("memory/options: invalid capacity")
	}
	if !options.Policy.Valid() {
		return fmt.Errorf("memory/options: %w: %d", ErrBadPolicy, options.Policy)
	}
	return nil
}
