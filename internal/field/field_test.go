package field

import (
	"math/big"
	"testing"
)

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(7)
	b := FromUint64(9)
	sum := a.Add(b)
	if !sum.Sub(b).Equal(a) {
		t.Fatalf("sub(add(a,b),b) != a")
	}
}

func TestMulInverse(t *testing.T) {
	a := FromUint64(12345)
	inv := a.Inverse()
	got := a.Mul(inv)
	if !got.IsOne() {
		t.Fatalf("a * a^-1 = %s, want 1", got)
	}
}

func TestInverseOfZeroIsZero(t *testing.T) {
	if !Zero().Inverse().IsZero() {
		t.Fatalf("inverse of zero must be zero by convention")
	}
}

func TestNegIsAdditiveInverse(t *testing.T) {
	a := FromUint64(42)
	if !a.Add(a.Neg()).IsZero() {
		t.Fatalf("a + (-a) must be zero")
	}
}

func TestFromBigIntRoundTrip(t *testing.T) {
	bi := big.NewInt(987654321)
	e := FromBigInt(bi)
	if e.BigInt().Cmp(bi) != 0 {
		t.Fatalf("round trip through BigInt changed value: got %s want %s", e.BigInt(), bi)
	}
}

func TestNumBits(t *testing.T) {
	e := FromUint64(0b1011)
	if e.NumBits() != 4 {
		t.Fatalf("NumBits() = %d, want 4", e.NumBits())
	}
}

func TestModulusIsOdd(t *testing.T) {
	m := Modulus()
	if m.Bit(0) != 1 {
		t.Fatalf("field modulus must be odd")
	}
}
