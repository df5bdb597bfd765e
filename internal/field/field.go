// Package field wraps the BN254 scalar field used throughout the circuit:
// every constant, witness, and intermediate value in the value table
// ultimately reduces to an Element.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a single element of the BN254 scalar field.
type Element struct {
	inner fr.Element
}

func Zero() Element {
	return Element{}
}

func One() Element {
	var e Element
	e.inner.SetOne()
	return e
}

func FromUint64(v uint64) Element {
	var e Element
	e.inner.SetUint64(v)
	return e
}

func FromInt64(v int64) Element {
	var e Element
	bi := big.NewInt(v)
	e.inner.SetBigInt(bi)
	return e
}

func FromBigInt(v *big.Int) Element {
	var e Element
	e.inner.SetBigInt(v)
	return e
}

// FromBytes reduces a big-endian byte string modulo the field and returns
// the resulting element.
func FromBytes(b []byte) Element {
	var e Element
	e.inner.SetBytes(b)
	return e
}

func (e Element) Add(o Element) Element {
	var r Element
	r.inner.Add(&e.inner, &o.inner)
	return r
}

func (e Element) Sub(o Element) Element {
	var r Element
	r.inner.Sub(&e.inner, &o.inner)
	return r
}

func (e Element) Mul(o Element) Element {
	var r Element
	r.inner.Mul(&e.inner, &o.inner)
	return r
}

func (e Element) Neg() Element {
	var r Element
	r.inner.Neg(&e.inner)
	return r
}

// Inverse returns the multiplicative inverse of e, or Zero if e is Zero.
// The zero-maps-to-zero convention matches gnark-crypto's own Inverse and
// lets callers treat inversion as total.
func (e Element) Inverse() Element {
	var r Element
	r.inner.Inverse(&e.inner)
	return r
}

func (e Element) IsZero() bool {
	return e.inner.IsZero()
}

func (e Element) IsOne() bool {
	return e.inner.IsOne()
}

func (e Element) Equal(o Element) bool {
	return e.inner.Equal(&o.inner)
}

// Cmp compares the canonical representatives of e and o as integers,
// returning -1, 0, or 1.
func (e Element) Cmp(o Element) int {
	return e.inner.Cmp(&o.inner)
}

// BigInt returns the canonical non-negative big.Int representative of e.
func (e Element) BigInt() *big.Int {
	var bi big.Int
	e.inner.BigInt(&bi)
	return &bi
}

// NumBits returns the number of bits in the canonical representative of e.
func (e Element) NumBits() uint {
	return uint(e.BigInt().BitLen())
}

// Bytes returns the big-endian canonical encoding of e.
func (e Element) Bytes() [fr.Bytes]byte {
	return e.inner.Bytes()
}

func (e Element) String() string {
	return e.inner.String()
}

// Modulus returns the field's prime modulus.
func Modulus() *big.Int {
	return fr.Modulus()
}

// MaxBits returns the bit length of the field modulus. A range constraint
// of this many bits or more admits every field element.
func MaxBits() uint {
	return fr.Bits
}
