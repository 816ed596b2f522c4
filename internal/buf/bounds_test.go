package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(10, 4); !ok || p != 40 {
		t.Fatalf("MulOverflowSafe(10,4)=%d,%v want 40,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("zero factor should never overflow")
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow for MaxInt/2+1 * 2")
	}
	if _, ok := MulOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected overflow for MinInt * -1")
	}
	if p, ok := MulOverflowSafe(-3, 5); !ok || p != -15 {
		t.Fatalf("MulOverflowSafe(-3,5)=%d,%v want -15,true", p, ok)
	}
}

func TestCheckSpan(t *testing.T) {
	end, err := CheckSpan(100, 40, 60)
	if err != nil || end != 100 {
		t.Fatalf("CheckSpan(100,40,60)=%d,%v want 100,nil", end, err)
	}
	if _, err := CheckSpan(100, 41, 60); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckSpan(100, -1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckSpan(100, 1, -1); err == nil {
		t.Fatalf("expected negative length error")
	}
	if _, err := CheckSpan(math.MaxInt, math.MaxInt, 1); err == nil {
		t.Fatalf("expected overflow error")
	}
}
