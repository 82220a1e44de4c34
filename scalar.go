// SPDX-License-Identifier: BSD-3-Clause

// Package secp256k1 provides the scalar field and group primitives that
// every other package in this module is built on: a scalar type bound to
// the secp256k1 group order, a point type bound to the curve, and the
// guards ("no infinity on the wire", "reject non-canonical encodings")
// that the higher layers assume are already enforced here.
//
// The arithmetic is delegated to github.com/decred/dcrd/dcrec/secp256k1/v4,
// which supplies the field and scalar limb code; this package only adds
// the contract (valid-secret checks, zero-scalar guards, fixed 32/33-byte
// wire formats) that the rest of the module depends on.
package secp256k1

import (
	"crypto/subtle"
	"errors"
	"io"

	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/xrplf/mpt-zkp/internal/disalloweq"
)

// ScalarSize is the size of a scalar in bytes.
const ScalarSize = 32

// ErrInvalidScalar is returned when a byte string is not the canonical
// encoding of a scalar in [0, q).
var ErrInvalidScalar = errors.New("secp256k1: scalar value out of range")

// Scalar is an integer modulo q, the order of the secp256k1 group.  All
// arguments and receivers are allowed to alias.  The zero value is a
// valid zero element.
type Scalar struct {
	_ disalloweq.DisallowEqual
	n dcrec.ModNScalar
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarFrom creates a new Scalar from another.
func NewScalarFrom(other *Scalar) *Scalar {
	return NewScalar().Set(other)
}

// NewScalarFromCanonicalBytes creates a new Scalar from the canonical
// big-endian byte representation.
func NewScalarFromCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	return NewScalar().SetCanonicalBytes(src)
}

// Zero sets s = 0 and returns s.
func (s *Scalar) Zero() *Scalar {
	s.n.SetInt(0)
	return s
}

// One sets s = 1 and returns s.
func (s *Scalar) One() *Scalar {
	s.n.SetInt(1)
	return s
}

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.n.Set(&a.n)
	return s
}

// Add sets s = a + b and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	var tmp dcrec.ModNScalar
	tmp.Set(&a.n)
	tmp.Add(&b.n)
	s.n.Set(&tmp)
	return s
}

// Subtract sets s = a - b and returns s.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	var tmp dcrec.ModNScalar
	tmp.Set(&b.n)
	tmp.Negate()
	tmp.Add(&a.n)
	s.n.Set(&tmp)
	return s
}

// Negate sets s = -a and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	var tmp dcrec.ModNScalar
	tmp.Set(&a.n)
	tmp.Negate()
	s.n.Set(&tmp)
	return s
}

// Multiply sets s = a * b and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	var tmp dcrec.ModNScalar
	tmp.Set(&a.n)
	tmp.Mul(&b.n)
	s.n.Set(&tmp)
	return s
}

// Square sets s = a * a and returns s.
func (s *Scalar) Square(a *Scalar) *Scalar {
	s.n.Set(&a.n)
	s.n.Square()
	return s
}

// Inverse sets s = 1/a and returns s.  The inverse of zero is defined
// to be zero.
func (s *Scalar) Inverse(a *Scalar) *Scalar {
	s.n.Set(&a.n)
	s.n.InverseValNonConst()
	return s
}

// IsZero returns 1 iff s == 0, 0 otherwise.
func (s *Scalar) IsZero() uint64 {
	if s.n.IsZero() {
		return 1
	}
	return 0
}

// IsValidSecret returns 1 iff 0 < s < q, 0 otherwise.  This is the
// "is_valid_secret" predicate used throughout the module to gate every
// use of a scalar as a private key, nonce, or blinding factor.
func (s *Scalar) IsValidSecret() uint64 {
	return 1 - s.IsZero()
}

// Equal returns 1 iff s == a, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 {
	if subtle.ConstantTimeCompare(s.Bytes(), a.Bytes()) == 1 {
		return 1
	}
	return 0
}

// ConditionalSelect sets s = a iff ctrl == 0, s = b otherwise, and
// returns s.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	if ctrl == 0 {
		return s.Set(a)
	}
	return s.Set(b)
}

// Bytes returns the canonical big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.n.Bytes()
	return b[:]
}

// SetBytes sets s = reduce32(src) and returns s, along with 1 iff src
// was not already a canonical encoding of s.
func (s *Scalar) SetBytes(src *[ScalarSize]byte) (*Scalar, uint64) {
	overflow := s.n.SetBytes(src)
	return s, uint64(overflow)
}

// SetCanonicalBytes sets s = src, where src is a 32-byte big-endian
// encoding of s.  If src is not a canonical encoding, SetCanonicalBytes
// returns ErrInvalidScalar and leaves the receiver's value unspecified.
func (s *Scalar) SetCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	if overflow := s.n.SetBytes(src); overflow != 0 {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// Scrub overwrites the scalar's storage with zeroes.  Every fallible
// prover code path that touches a secret scalar (blinding factor, nonce,
// witness, ephemeral randomness) must call this on every exit, including
// error paths.
func (s *Scalar) Scrub() {
	s.n.Zero()
}

// Reduce32 canonicalizes an arbitrary 32-byte buffer modulo q.  Unlike
// SetCanonicalBytes it never fails: any input, canonical or not, yields
// a scalar in [0, q).
func Reduce32(src *[32]byte) *Scalar {
	s, _ := NewScalar().SetBytes(src)
	return s
}

// SampleScalar draws uniformly random 32-byte strings from rand and
// rejection-samples until one decodes to a valid secret (0 < s < q), or
// the retry budget is exhausted.  This is the only place in the module
// permitted to call out to an injected randomness source for a scalar
// value; every nonce, blinding factor, and key in the system is derived
// through it.
func SampleScalar(rand io.Reader) (*Scalar, error) {
	const maxResamples = 256

	var buf [ScalarSize]byte
	s := NewScalar()
	for i := 0; i < maxResamples; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, errors.Join(ErrRandomnessSource, err)
		}

		_, didReduce := s.SetBytes(&buf)
		if didReduce == 0 && s.IsValidSecret() == 1 {
			return s, nil
		}
	}

	return nil, ErrRejectionSampling
}

// ErrRandomnessSource is wrapped by SampleScalar when the underlying
// io.Reader fails.
var ErrRandomnessSource = errors.New("secp256k1: randomness source failed")

// ErrRejectionSampling is returned by SampleScalar when the retry budget
// is exhausted without finding a valid secret.  With a working entropy
// source this is astronomically unlikely (p ~= 2^-128 per draw).
var ErrRejectionSampling = errors.New("secp256k1: exhausted rejection sampling budget")
