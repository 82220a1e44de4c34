// Package bulletproof implements an aggregated Bulletproof range proof
// over secp256k1: given m power-of-two-aggregated 64-bit values and
// Pedersen-style commitments V_j = v_j*G + rho_j*H_base, it proves each
// v_j lies in [0, 2^64) in a proof whose size grows with log2(64*m)
// rather than with m. H_base is supplied by the caller (the recipient
// public key, per the ledger's usage), not the package-wide NUMS H.
package bulletproof

import (
	"errors"
	"math/bits"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/nums"
)

// BitsPerValue is the number of bits proven per aggregated value.
const BitsPerValue = 64

// ErrInvalidAggregation is returned when m is not a positive power of two.
var ErrInvalidAggregation = errors.New("bulletproof: aggregation width must be a power of two")

// ErrMalformedProof is returned when a proof's byte length or internal
// structure does not match what m implies.
var ErrMalformedProof = errors.New("bulletproof: malformed proof encoding")

// ErrProofRejected names a rejected proof. Verify and its internal
// helpers report rejection by returning false, and no function in this
// package returns this error.
var ErrProofRejected = errors.New("bulletproof: proof rejected")

// Proof is a serialized aggregated Bulletproof.
type Proof struct {
	A, S   *secp256k1.Point
	T1, T2 *secp256k1.Point
	L, R   []*secp256k1.Point
	AFinal *secp256k1.Scalar
	BFinal *secp256k1.Scalar
	THat   *secp256k1.Scalar
	TauX   *secp256k1.Scalar
	Mu     *secp256k1.Scalar
}

func isPowerOfTwo(m int) bool {
	return m > 0 && m&(m-1) == 0
}

func log2(n int) int {
	return bits.TrailingZeros(uint(n))
}

// Rounds returns log2(64*m), the number of IPA folding rounds for
// aggregation width m.
func Rounds(m int) int {
	return log2(BitsPerValue * m)
}

// ProofSize returns the fixed serialized size of a proof for
// aggregation width m: 292 + 66*rounds bytes.
func ProofSize(m int) int {
	return 292 + 66*Rounds(m)
}

type generators struct {
	gVec []*secp256k1.Point
	hVec []*secp256k1.Point
	u    *secp256k1.Point
}

func fetchGenerators(n int) generators {
	return generators{
		gVec: nums.CachedGeneratorVector(nums.LabelG, n),
		hVec: nums.CachedGeneratorVector(nums.LabelH, n),
		u:    nums.UGenerator(),
	}
}

// normalizeH computes H'[k] = y^{-k}*H[k].
func normalizeH(hVec []*secp256k1.Point, y *secp256k1.Scalar) ([]*secp256k1.Point, error) {
	n := len(hVec)
	yInv := secp256k1.NewScalar().Inverse(y)
	yInvPowers := powers(yInv, n)

	out := make([]*secp256k1.Point, n)
	for k := 0; k < n; k++ {
		hk, err := secp256k1.TweakMul(hVec[k], yInvPowers[k])
		if err != nil {
			return nil, err
		}
		out[k] = hk
	}
	return out, nil
}
