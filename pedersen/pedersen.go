// Package pedersen implements the Pedersen commitment scheme
// PC(v, rho) = v*G + rho*H used to bind amounts and blinding factors
// throughout the module, with H derived via nums so that no party can
// find an alternate opening of a commitment.
package pedersen

import (
	"encoding/binary"
	"errors"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/nums"
)

// ErrInvalidBlinding is returned when the supplied blinding factor is
// not a valid secret scalar (zero, or out of range).
var ErrInvalidBlinding = errors.New("pedersen: invalid blinding factor")

// H returns the NUMS-derived Pedersen blinding base.
func H() *secp256k1.Point {
	return nums.HGenerator()
}

// Commit computes PC(v, rho) = v*G + rho*H.  v is embedded as a 32-byte
// big-endian scalar.  The v == 0 case is special-cased to rho*H, since
// the group primitives layer cannot represent 0*G + rho*H's v*G term
// (a zero-scalar multiply) directly.
func Commit(v uint64, rho *secp256k1.Scalar) (*secp256k1.Point, error) {
	if rho.IsValidSecret() == 0 {
		return nil, ErrInvalidBlinding
	}

	rhoH, err := secp256k1.TweakMul(H(), rho)
	if err != nil {
		return nil, err
	}

	if v == 0 {
		return rhoH, nil
	}

	vScalar := scalarFromUint64(v)
	vG, err := secp256k1.Create(vScalar)
	if err != nil {
		return nil, err
	}

	return secp256k1.Combine(vG, rhoH)
}

// CommitScalar is the general form of Commit where the committed value
// is itself an arbitrary scalar rather than a bounded uint64 amount.
func CommitScalar(v, rho *secp256k1.Scalar) (*secp256k1.Point, error) {
	if rho.IsValidSecret() == 0 {
		return nil, ErrInvalidBlinding
	}

	rhoH, err := secp256k1.TweakMul(H(), rho)
	if err != nil {
		return nil, err
	}

	if v.IsZero() == 1 {
		return rhoH, nil
	}

	vG, err := secp256k1.Create(v)
	if err != nil {
		return nil, err
	}

	return secp256k1.Combine(vG, rhoH)
}

// Add returns PC(v1,rho1) + PC(v2,rho2), exercising the homomorphic sum
// law that the data model declares as an invariant of the scheme.
func Add(a, b *secp256k1.Point) (*secp256k1.Point, error) {
	return secp256k1.Combine(a, b)
}

func scalarFromUint64(v uint64) *secp256k1.Scalar {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], v)
	return secp256k1.Reduce32(&buf)
}
