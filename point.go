package secp256k1

import (
	"errors"

	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/xrplf/mpt-zkp/internal/disalloweq"
)

// ErrIdentity is returned whenever an operation would produce, or was
// asked to parse, the point at infinity.  The compressed wire format
// cannot represent it, so every layer above this package must guard
// against producing it by construction (filtering zero scalars before
// multiplication, filtering zero terms out of Combine).
var ErrIdentity = errors.New("secp256k1: result is the point at infinity")

// ErrMalformedPoint is returned when a byte string is not a valid
// SEC 1 compressed encoding of a curve point.
var ErrMalformedPoint = errors.New("secp256k1: malformed point encoding")

// ErrInvalidScalarForPoint is returned when a scalar supplied to a
// point-scaling operation is zero or otherwise not a valid secret.
var ErrInvalidScalarForPoint = errors.New("secp256k1: invalid scalar")

// CompressedPointSize is the size of a point in its SEC 1 compressed
// encoding: one parity byte followed by the 32-byte X coordinate.
const CompressedPointSize = 33

// Point represents a point on the secp256k1 curve.  The identity
// element exists as an intermediate value (e.g. the result of Add or
// Subtract on points that cancel) but is never permitted to reach a wire
// encoding: Combine returns ErrIdentity instead of producing it, and
// CompressedBytes panics on it.
//
// All arguments and receivers are allowed to alias.  The zero value is
// NOT valid, and may only be used as an assignment target.
type Point struct {
	_ disalloweq.DisallowEqual

	j       dcrec.JacobianPoint
	isValid bool
}

func newPoint() *Point {
	return &Point{}
}

func assertValid(points ...*Point) {
	for _, p := range points {
		if !p.isValid {
			panic("secp256k1: use of uninitialized Point")
		}
	}
}

// NewGeneratorPoint returns a new Point set to the canonical generator G.
func NewGeneratorPoint() *Point {
	return newPoint().Generator()
}

// NewPointFrom creates a new Point from another.
func NewPointFrom(p *Point) *Point {
	assertValid(p)
	return newPoint().Set(p)
}

// Generator sets v = G and returns v.
func (v *Point) Generator() *Point {
	dcrec.ScalarBaseMultNonConst(new(dcrec.ModNScalar).SetInt(1), &v.j)
	v.isValid = true
	return v
}

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	assertValid(p)
	v.j.Set(&p.j)
	v.isValid = true
	return v
}

// Add sets v = p + q and returns v.  The result may be the point at
// infinity (e.g. p == -q); callers that cannot tolerate that must check
// IsIdentity before serializing.
func (v *Point) Add(p, q *Point) *Point {
	assertValid(p, q)
	dcrec.AddNonConst(&p.j, &q.j, &v.j)
	v.isValid = true
	return v
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	assertValid(p)
	v.j.Set(&p.j)
	v.j.Y.Negate(1)
	v.j.Y.Normalize()
	v.isValid = true
	return v
}

// Subtract sets v = p - q and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	assertValid(p, q)
	return v.Add(p, newPoint().Negate(q))
}

// Equal returns 1 iff v == p, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	assertValid(v, p)

	a, b := NewPointFrom(v), NewPointFrom(p)
	a.j.ToAffine()
	b.j.ToAffine()

	if a.j.X.Equals(&b.j.X) && a.j.Y.Equals(&b.j.Y) {
		return 1
	}
	return 0
}

// IsIdentity returns 1 iff v is the point at infinity, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	assertValid(v)
	if v.j.Z.IsZero() {
		return 1
	}
	return 0
}

// ScalarMult sets v = s*p and returns (v, nil).  s MUST be a valid
// secret (0 < s < q); a zero scalar is rejected rather than silently
// producing the identity, per the "no infinity on the wire" policy.
func (v *Point) ScalarMult(s *Scalar, p *Point) (*Point, error) {
	assertValid(p)
	if s.IsValidSecret() == 0 {
		return nil, ErrInvalidScalarForPoint
	}

	dcrec.ScalarMultNonConst(&s.n, &p.j, &v.j)
	v.isValid = true
	return v, nil
}

// ScalarBaseMult sets v = s*G and returns (v, nil), subject to the same
// zero-scalar guard as ScalarMult.
func (v *Point) ScalarBaseMult(s *Scalar) (*Point, error) {
	if s.IsValidSecret() == 0 {
		return nil, ErrInvalidScalarForPoint
	}

	dcrec.ScalarBaseMultNonConst(&s.n, &v.j)
	v.isValid = true
	return v, nil
}

// Create returns scalar*G, or an error if scalar is not a valid secret.
// This mirrors the "create" operation from the group primitives
// contract: it is the only way the rest of the module turns a secret
// scalar into a public point.
func Create(scalar *Scalar) (*Point, error) {
	return newPoint().ScalarBaseMult(scalar)
}

// Combine sets v to the sum of points, and returns (v, nil).  Per the
// no-infinity-on-the-wire policy, Combine treats an empty input list,
// or a sum that collapses to the identity, as a hard error rather than
// representing it.
func Combine(points ...*Point) (*Point, error) {
	if len(points) == 0 {
		return nil, ErrIdentity
	}
	assertValid(points...)

	acc := newPoint().Set(points[0])
	for _, p := range points[1:] {
		acc.Add(acc, p)
	}
	if acc.IsIdentity() == 1 {
		return nil, ErrIdentity
	}
	return acc, nil
}

// TweakMul is an alias for ScalarMult that makes the "tweak" contract
// from the group primitives specification explicit at call sites: it
// rejects a zero or out-of-range scalar, and by construction (non-zero
// scalar times a non-identity point) the result can never be infinity.
func TweakMul(p *Point, scalar *Scalar) (*Point, error) {
	return newPoint().ScalarMult(scalar, p)
}
