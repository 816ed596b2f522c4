package memory

import (
	"fmt"
	"strings"
)

// Ref is the offset of a block's payload within the managed region.
type Ref uint64

// NilRef never names a payload.
const NilRef Ref = 0

// Policy selects which free block satisfies an allocation request.
type Policy uint8

const (
	// FirstFit takes the first free block that is large enough.
	FirstFit Policy = iota
	// BestFit takes the free block that leaves the least slack.
	BestFit
	// WorstFit takes the largest free block that is large enough.
	WorstFit
)

// Policies lists every placement policy in declaration order.
var Policies = []Policy{FirstFit, BestFit, WorstFit}

func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "FIRST_FIT"
	case BestFit:
		return "BEST_FIT"
	case WorstFit:
		return "WORST_FIT"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the known policies.
func (p Policy) Valid() bool {
	return p <= WorstFit
}

// ParsePolicy accepts "FIRST_FIT", "first-fit", "first" and the equivalent
// spellings for the other policies.
func ParsePolicy(s string) (Policy, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.TrimSuffix(norm, "_FIT")
	switch norm {
	case "FIRST":
		return FirstFit, nil
	case "BEST":
		return BestFit, nil
	case "WORST":
		return WorstFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadPolicy, s)
}

// Op identifies an allocator operation reported to an OpLogger.
type Op uint8

const (
	OpMalloc Op = iota + 1
	OpFree
	OpCalloc
	OpRealloc
)

func (o Op) String() string {
	switch o {
	case OpMalloc:
		return "malloc"
	case OpFree:
		return "free"
	case OpCalloc:
		return "calloc"
	case OpRealloc:
		return "realloc"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// OpLogger receives one call per successful allocator operation.
// Implementations must not call back into the Heap.
type OpLogger interface {
	LogOp(op Op, size int, ref Ref)
}

// BlockInfo describes one block of the directory.
type BlockInfo struct {
	Header int  // header offset
	Ref    Ref  // payload offset
	Size   int  // payload bytes
	Free   bool // free or allocated
}

// Stats holds allocator counters.
type Stats struct {
	AllocCalls      int   // Alloc() calls
	FreeCalls       int   // Free() calls
	CallocCalls     int   // Calloc() calls
	ReallocCalls    int   // Realloc() calls
	GrowCalls       int   // region growths
	GrowBytes       int64 // bytes added by growth, headers included
	ShrinkCalls     int   // region shrinks after a tail release
	SplitCount      int   // blocks split
	CoalesceForward int   // successors absorbed by fusion
	InPlaceResizes  int   // Realloc satisfied by fusing with the successor
	Relocations     int   // Realloc satisfied by copying to a new block
}
