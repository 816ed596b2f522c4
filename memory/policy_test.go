package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Free blocks of 56, 200 and 80 bytes (50 and 80 rounded up), each
// followed by an allocated guard. A 60-byte request needs 64 bytes.
func TestPolicies_ChooseDifferentBlocks(t *testing.T) {
	tests := []struct {
		policy  Policy
		want    int // index into the free blocks
		wantLen int // payload capacity after the allocation
	}{
		{FirstFit, 1, 64}, // 56 is too small, 200 comes next and is split
		{BestFit, 2, 80},  // 80 leaves 16 bytes of slack, too little to split
		{WorstFit, 1, 64}, // 200 is the largest and is split
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			h := newTestHeap(t, tt.policy)
			free := layoutFreeBlocks(t, h, 50, 200, 80)
			require.Equal(t, []Ref{40, 184, 472}, free)

			ref, payload, err := h.Alloc(60)
			require.NoError(t, err)
			assert.Equal(t, free[tt.want], ref)
			assert.Len(t, payload, 60)
			assert.Equal(t, tt.wantLen, cap(payload))
			assertInvariants(t, h)
		})
	}
}

func TestFirstFit_TakesEarliest(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	free := layoutFreeBlocks(t, h, 64, 512, 64)

	assert.Equal(t, free[0], mustAlloc(t, h, 64))
	assert.Equal(t, free[1], mustAlloc(t, h, 64))
	assert.Equal(t, free[1]+64+0x28, mustAlloc(t, h, 64), "split remainder precedes the last block")
}

func TestBestFit_ExactMatchWins(t *testing.T) {
	h := newTestHeap(t, BestFit)
	free := layoutFreeBlocks(t, h, 72, 64, 64)

	assert.Equal(t, free[1], mustAlloc(t, h, 64), "earliest exact match")
	assert.Equal(t, free[2], mustAlloc(t, h, 64))
	assert.Equal(t, free[0], mustAlloc(t, h, 64))
}

func TestBestFit_TieGoesToEarliest(t *testing.T) {
	h := newTestHeap(t, BestFit)
	free := layoutFreeBlocks(t, h, 256, 128, 128)

	assert.Equal(t, free[1], mustAlloc(t, h, 100))
}

func TestWorstFit_TakesLargest(t *testing.T) {
	h := newTestHeap(t, WorstFit)
	free := layoutFreeBlocks(t, h, 128, 512, 512, 256)

	ref := mustAlloc(t, h, 16)
	assert.Equal(t, free[1], ref, "earliest of the largest blocks")
	assertInvariants(t, h)
}

func TestPolicies_MissExtendsAtTail(t *testing.T) {
	for _, p := range Policies {
		t.Run(p.String(), func(t *testing.T) {
			h := newTestHeap(t, p)
			layoutFreeBlocks(t, h, 50, 200, 80)
			extent := h.Extent()

			ref := mustAlloc(t, h, 300)
			assert.Equal(t, Ref(extent+0x28), ref)
			assert.Equal(t, extent+0x28+304, h.Extent())
			assertInvariants(t, h)
		})
	}
}

func TestPolicy_SwitchBetweenAllocations(t *testing.T) {
	h := newTestHeap(t, FirstFit)
	free := layoutFreeBlocks(t, h, 200, 72)

	require.NoError(t, h.SetPolicy(BestFit))
	assert.Equal(t, free[1], mustAlloc(t, h, 64))

	require.NoError(t, h.SetPolicy(FirstFit))
	assert.Equal(t, free[0], mustAlloc(t, h, 64))
}
