package memory

import (
	"errors"
	"fmt"

	"github.com/Jorgear27/Ya-lo-borro/internal/format"
)

// ValidationError describes one structural violation found by Check.
type ValidationError struct {
	Type    string // "Header", "Alignment", "Link", "Contiguity", "Coalesce", "Extent", "Cycle"
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
}

// Check walks the directory and verifies the layout:
//   - every header decodes and records its own payload offset
//   - payload sizes are multiples of 8
//   - prev links mirror next links
//   - blocks tile the region from offset 0 with no gaps
//   - no two adjacent blocks are both free
//   - the last block ends exactly at the region's end
//
// All violations are joined into the returned error.
func (h *Heap) Check() error {
	var errs []error
	fail := func(kind string, off int, msg string, args ...any) {
		errs = append(errs, &ValidationError{Type: kind, Offset: off, Message: fmt.Sprintf(msg, args...)})
	}

	mem := h.region.Bytes()
	limit := len(mem)/format.BlockHeaderSize + 1
	expect, prev, prevFree, seen := 0, -1, false, 0

	for off := h.dir.head; off >= 0; {
		if seen++; seen > limit {
			fail("Cycle", off, "directory longer than %d blocks", limit)
			break
		}
		hdr, err := format.DecodeHeader(mem, off)
		if err != nil {
			fail("Header", off, "%v", err)
			break
		}
		if hdr.Payload != format.PayloadOf(off) {
			fail("Header", off, "payload field 0x%X, want 0x%X", hdr.Payload, format.PayloadOf(off))
		}
		if !format.IsAligned8(hdr.Size) {
			fail("Alignment", off, "size %d is not a multiple of 8", hdr.Size)
		}
		if hdr.Prev != prev {
			fail("Link", off, "prev 0x%X, want 0x%X", hdr.Prev, prev)
		}
		if off != expect {
			fail("Contiguity", off, "block starts at 0x%X, previous block ends at 0x%X", off, expect)
		}
		if hdr.Free && prevFree {
			fail("Coalesce", off, "free block follows a free block")
		}
		expect = format.PayloadOf(off) + hdr.Size
		if expect > len(mem) || hdr.Size < 0 {
			fail("Extent", off, "block ends at 0x%X beyond region end 0x%X", expect, len(mem))
			break
		}
		prev, prevFree = off, hdr.Free
		off = hdr.Next
	}

	if len(errs) == 0 && expect != len(mem) {
		fail("Extent", expect, "directory ends at 0x%X, region ends at 0x%X", expect, len(mem))
	}
	return errors.Join(errs...)
}
