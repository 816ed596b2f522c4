package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealloc_NilRefAllocates(t *testing.T) {
	h := newTestHeap(t, FirstFit)

	ref, payload, err := h.Realloc(NilRef, 24)
	require.NoError(t, err)
	assert.Equal(t, Ref(0x28), ref)
	assert.Len(t, payload, 24)
}

func TestRealloc_ZeroFrees(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a := mustAlloc(t, h, 64)

	ref, payload, err := h.Realloc(a, 0)
	require.NoError(t, err)
	assert.Equal(t, NilRef, ref)
	assert.Nil(t, payload)
	assert.Empty(t, h.Blocks())
}

func TestRealloc_BadRef(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a := mustAlloc(t, h, 64)
	mustAlloc(t, h, 8)
	require.NoError(t, h.Free(a))

	_, _, err := h.Realloc(a, 128)
	require.ErrorIs(t, err, ErrBadRef)
	_, _, err = h.Realloc(a+4, 128)
	require.ErrorIs(t, err, ErrBadRef)
}

func TestRealloc_ShrinkInPlace(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a := mustAlloc(t, h, 200)
	mustAlloc(t, h, 8)

	ref, payload, err := h.Realloc(a, 16)
	require.NoError(t, err)
	assert.Equal(t, a, ref)
	assert.Len(t, payload, 16)
	assert.Equal(t, []BlockInfo{
		block(0, 16, false),
		block(56, 144, true),
		block(240, 8, false),
	}, h.Blocks())
	assertInvariants(t, h)
}

func TestRealloc_ShrinkTailReturnsSpace(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a := mustAlloc(t, h, 200)

	ref, _, err := h.Realloc(a, 16)
	require.NoError(t, err)
	assert.Equal(t, a, ref)
	assert.Equal(t, []BlockInfo{block(0, 16, false)}, h.Blocks())
	assert.Equal(t, 56, h.Extent(), "free remainder at the tail is given back")
	assertInvariants(t, h)
}

func TestRealloc_ShrinkMergesWithFreeSuccessor(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a := mustAlloc(t, h, 200)
	b := mustAlloc(t, h, 64)
	mustAlloc(t, h, 8)
	require.NoError(t, h.Free(b))

	_, _, err := h.Realloc(a, 16)
	require.NoError(t, err)
	assert.Equal(t, []BlockInfo{
		block(0, 16, false),
		block(56, 144+0x28+64, true),
		block(344, 8, false),
	}, h.Blocks())
	assertInvariants(t, h)
}

func TestRealloc_GrowIntoFreeSuccessor(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a, payload, err := h.Alloc(64)
	require.NoError(t, err)
	copy(payload, bytes.Repeat([]byte{0xAB}, 64))
	b := mustAlloc(t, h, 128)
	mustAlloc(t, h, 8)
	require.NoError(t, h.Free(b))

	ref, grown, err := h.Realloc(a, 150)
	require.NoError(t, err)
	assert.Equal(t, a, ref, "grown in place")
	assert.Len(t, grown, 150)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 64), grown[:64])

	assert.Equal(t, []BlockInfo{
		block(0, 152, false),
		block(192, 40, true),
		block(272, 8, false),
	}, h.Blocks())
	assert.Equal(t, 1, h.Stats().InPlaceResizes)
	assertInvariants(t, h)
}

func TestRealloc_Relocates(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	a, payload, err := h.Alloc(64)
	require.NoError(t, err)
	for i := range payload {
		payload[i] = byte(i)
	}
	mustAlloc(t, h, 8)

	ref, moved, err := h.Realloc(a, 256)
	require.NoError(t, err)
	assert.Equal(t, Ref(192), ref)
	require.Len(t, moved, 256)
	for i := 0; i < 64; i++ {
		require.Equal(t, byte(i), moved[i], "byte %d", i)
	}

	assert.Equal(t, []BlockInfo{
		block(0, 64, true),
		block(104, 8, false),
		block(152, 256, false),
	}, h.Blocks())
	assert.Equal(t, 1, h.Stats().Relocations)
	assertInvariants(t, h)
}

func TestRealloc_RelocateOutOfMemoryKeepsBlock(t *testing.T) {
	h, err := New(Options{Capacity: 4096})
	require.NoError(t, err)
	defer h.Close()

	a := mustAlloc(t, h, 64)
	mustAlloc(t, h, 8)
	before := h.Digest()

	_, _, err = h.Realloc(a, h.region.Cap())
	require.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, before, h.Digest())

	got, err := h.Bytes(a)
	require.NoError(t, err)
	assert.Len(t, got, 64)
}
