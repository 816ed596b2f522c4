package format

import "testing"

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 40: 40, 1023: 1024}
	for in, want := range cases {
		if got := Align8(in); got != want {
			t.Fatalf("Align8(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAlignDown8(t *testing.T) {
	if got := AlignDown8(15); got != 8 {
		t.Fatalf("AlignDown8(15) = %d", got)
	}
	if got := AlignDown8(16); got != 16 {
		t.Fatalf("AlignDown8(16) = %d", got)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 2*BlockHeaderSize)
	want := Header{Size: 64, Next: -1, Prev: 0, Free: true, Payload: BlockHeaderSize * 2}
	EncodeHeader(buf, BlockHeaderSize, want)

	got, err := DecodeHeader(buf, BlockHeaderSize)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if got != want {
		t.Fatalf("header mismatch: got %+v want %+v", got, want)
	}
	if ReadU64(buf, BlockHeaderSize+BlockNextOffset) != NilOffset {
		t.Fatalf("nil next should be stored as NilOffset")
	}
}

func TestDecodeHeaderBounds(t *testing.T) {
	buf := make([]byte, BlockHeaderSize)
	if _, err := DecodeHeader(buf, 8); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	buf = make([]byte, 2*BlockHeaderSize)
	if _, err := DecodeHeader(buf, 4); err != ErrMisaligned {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestPayloadHeaderOffsets(t *testing.T) {
	if PayloadOf(0) != BlockHeaderSize {
		t.Fatalf("PayloadOf(0) = %d", PayloadOf(0))
	}
	if HeaderOf(PayloadOf(96)) != 96 {
		t.Fatalf("HeaderOf/PayloadOf mismatch")
	}
}
