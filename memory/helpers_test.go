package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap returns a 1 MB heap using policy p, closed at cleanup.
func newTestHeap(t *testing.T, p Policy) *Heap {
	t.Helper()
	h, err := New(Options{Capacity: 1 << 20, Policy: p})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// mustAlloc allocates size bytes or fails the test.
func mustAlloc(t *testing.T, h *Heap, size int) Ref {
	t.Helper()
	ref, payload, err := h.Alloc(size)
	require.NoError(t, err)
	require.Len(t, payload, size)
	return ref
}

// layoutFreeBlocks builds one free block per size, each followed by an
// allocated 8-byte guard so no two free blocks touch and none is the tail.
// It returns the refs of the free blocks.
func layoutFreeBlocks(t *testing.T, h *Heap, sizes ...int) []Ref {
	t.Helper()
	refs := make([]Ref, len(sizes))
	for i, size := range sizes {
		refs[i] = mustAlloc(t, h, size)
		mustAlloc(t, h, 8)
	}
	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}
	return refs
}

// assertInvariants checks the layout and that payloads plus headers add up
// to the region size.
func assertInvariants(t *testing.T, h *Heap) {
	t.Helper()
	require.NoError(t, h.Check())
	u := h.Usage()
	require.Equal(t, u.Extent, u.Total()+u.Blocks*0x28, "blocks must tile the region")
}

// block is a compact BlockInfo for table assertions.
func block(hdr, size int, free bool) BlockInfo {
	return BlockInfo{Header: hdr, Ref: Ref(hdr + 0x28), Size: size, Free: free}
}

type recordedOp struct {
	Op   Op
	Size int
	Ref  Ref
}

type recordingLogger struct {
	ops []recordedOp
}

func (r *recordingLogger) LogOp(op Op, size int, ref Ref) {
	r.ops = append(r.ops, recordedOp{op, size, ref})
}
