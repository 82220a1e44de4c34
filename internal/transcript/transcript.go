// Package transcript builds the exact SHA-256 byte sequences that the
// Bulletproof prover and verifier hash to derive Fiat-Shamir
// challenges. It intentionally is not a generic streaming-hash object:
// every challenge in this module is defined as a hash of one fully
// specified byte sequence, and prover and verifier must reproduce that
// sequence byte-for-byte, so Builder just accumulates bytes in a fixed
// order and hashes them once.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// Builder accumulates transcript bytes for a single Fiat-Shamir challenge.
type Builder struct {
	buf []byte
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Bytes appends raw bytes.
func (b *Builder) Bytes(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// String appends the ASCII bytes of a domain-separation tag.
func (b *Builder) String(s string) *Builder {
	b.buf = append(b.buf, s...)
	return b
}

// Point appends a point's 33-byte compressed encoding.
func (b *Builder) Point(p *secp256k1.Point) *Builder {
	b.buf = append(b.buf, p.CompressedBytes()...)
	return b
}

// Points appends each point's compressed encoding in slice order.
func (b *Builder) Points(ps []*secp256k1.Point) *Builder {
	for _, p := range ps {
		b.Point(p)
	}
	return b
}

// Scalar appends a scalar's 32-byte canonical encoding.
func (b *Builder) Scalar(s *secp256k1.Scalar) *Builder {
	b.buf = append(b.buf, s.Bytes()...)
	return b
}

// Uint32BE appends a 4-byte big-endian counter.
func (b *Builder) Uint32BE(v uint32) *Builder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

// Sum returns the SHA-256 digest of everything written so far.
func (b *Builder) Sum() [32]byte {
	return sha256.Sum256(b.buf)
}

// Raw exposes the accumulated bytes, e.g. for chaining one
// transcript's digest into the input of another.
func (b *Builder) Raw() []byte {
	return b.buf
}

// Challenge hashes the accumulated bytes and reduces the digest to a
// scalar mod q. Most Fiat-Shamir challenges in this module are formed
// this way.
func (b *Builder) Challenge() *secp256k1.Scalar {
	digest := b.Sum()
	return secp256k1.Reduce32(&digest)
}

// ChallengeFromBytes is Challenge applied directly to an already-hashed
// or otherwise externally produced 32-byte buffer. The Bulletproof
// challenges, including the IPA's per-round chain, are derived with
// Builder.Challenge rather than this function.
func ChallengeFromBytes(digest [32]byte) *secp256k1.Scalar {
	return secp256k1.Reduce32(&digest)
}
