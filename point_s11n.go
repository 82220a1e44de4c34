package secp256k1

import (
	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// CompressedBytes returns the SEC 1 compressed encoding of v (33 bytes:
// a parity byte followed by the big-endian X coordinate).  v MUST NOT be
// the point at infinity; CompressedBytes panics otherwise, since
// producing that encoding is a contract violation by the caller, not a
// runtime error condition.
func (v *Point) CompressedBytes() []byte {
	assertValid(v)
	if v.IsIdentity() == 1 {
		panic("secp256k1: cannot serialize the point at infinity")
	}

	p := NewPointFrom(v)
	p.j.ToAffine()

	pub := dcrec.NewPublicKey(&p.j.X, &p.j.Y)
	return pub.SerializeCompressed()
}

// Serialize33 is an alias for CompressedBytes, named after the
// "serialize33" operation from the group primitives contract.
func Serialize33(v *Point) []byte {
	return v.CompressedBytes()
}

// SetBytes sets v to the point encoded by the 33-byte SEC 1 compressed
// string src, rejecting the identity encoding (which this format cannot
// represent anyway) and any malformed input.  If src is not a valid
// encoding, SetBytes returns (nil, ErrMalformedPoint) and leaves the
// receiver unchanged.
func (v *Point) SetBytes(src []byte) (*Point, error) {
	if len(src) != CompressedPointSize {
		return nil, ErrMalformedPoint
	}

	pub, err := dcrec.ParsePubKey(src)
	if err != nil {
		return nil, ErrMalformedPoint
	}

	pub.AsJacobian(&v.j)
	v.isValid = true
	return v, nil
}

// Parse33 parses a 33-byte SEC 1 compressed point, per the group
// primitives contract.  It is a free function alias of (*Point).SetBytes
// on a fresh receiver, matching the spec's naming.
func Parse33(src []byte) (*Point, error) {
	return newPoint().SetBytes(src)
}

// NewPointFromBytes creates a new Point from its SEC 1 compressed
// encoding.
func NewPointFromBytes(src []byte) (*Point, error) {
	return Parse33(src)
}
