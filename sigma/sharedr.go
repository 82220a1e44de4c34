package sigma

import (
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// SharedRProofSize returns the wire size of an EQ_PT_SHARED_R proof for
// n recipients: 33*(n+1) + 64 bytes.
func SharedRProofSize(n int) int {
	return secp256k1.CompressedPointSize*(n+1) + 2*secp256k1.ScalarSize
}

// SharedRBranch is one recipient's public key together with the
// ciphertext component that used the proof's shared randomness.
type SharedRBranch struct {
	PublicKey *secp256k1.Point
	C2        *secp256k1.Point
}

// SharedRProof proves that a single C1 = r*G and n ciphertext
// components C2_i = m*G + r*P_i all share the same plaintext m and the
// same randomness r, using only two response scalars regardless of n.
type SharedRProof struct {
	Tr *secp256k1.Point
	Tm []*secp256k1.Point
	Sm *secp256k1.Scalar
	Sr *secp256k1.Scalar
}

func sharedRChallenge(c1 *secp256k1.Point, branches []SharedRBranch, tr *secp256k1.Point, tm []*secp256k1.Point, contextID []byte) *secp256k1.Scalar {
	parts := [][]byte{[]byte(domainSharedR), c1.CompressedBytes()}
	for _, b := range branches {
		parts = append(parts, b.PublicKey.CompressedBytes(), b.C2.CompressedBytes())
	}
	parts = append(parts, tr.CompressedBytes())
	for _, p := range tm {
		parts = append(parts, p.CompressedBytes())
	}
	parts = append(parts, contextID)
	return sha256Reduce(parts...)
}

// ProveSharedR proves that c1 = r*G and every branches[i].C2 = m*G +
// r*branches[i].PublicKey.
func ProveSharedR(rand io.Reader, m uint64, r *secp256k1.Scalar, c1 *secp256k1.Point, branches []SharedRBranch, contextID []byte) (*SharedRProof, error) {
	if len(contextID) != ContextIDSize {
		return nil, ErrMalformedProof
	}
	if len(branches) == 0 {
		return nil, ErrMalformedProof
	}

	km, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer km.Scrub()
	kr, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer kr.Scrub()

	tr, err := secp256k1.Create(kr)
	if err != nil {
		return nil, err
	}

	kmG, err := secp256k1.Create(km)
	if err != nil {
		return nil, err
	}

	tm := make([]*secp256k1.Point, len(branches))
	for i, b := range branches {
		krPi, err := secp256k1.TweakMul(b.PublicKey, kr)
		if err != nil {
			return nil, err
		}
		tmi, err := secp256k1.Combine(kmG, krPi)
		if err != nil {
			return nil, err
		}
		tm[i] = tmi
	}

	e := sharedRChallenge(c1, branches, tr, tm, contextID)
	if e.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}

	sm := response(km, e, scalarFromAmount(m))
	sr := response(kr, e, r)

	return &SharedRProof{Tr: tr, Tm: tm, Sm: sm, Sr: sr}, nil
}

// VerifySharedR checks s_r*G == T_r + e*C1 and, for every branch i,
// s_m*G + s_r*P_i == T_m,i + e*C2_i.
func VerifySharedR(proof *SharedRProof, c1 *secp256k1.Point, branches []SharedRBranch, contextID []byte) bool {
	if len(contextID) != ContextIDSize {
		return false
	}
	n := len(branches)
	if n == 0 || len(proof.Tm) != n {
		return false
	}
	if proof.Sm.IsValidSecret() == 0 || proof.Sr.IsValidSecret() == 0 {
		return false
	}

	e := sharedRChallenge(c1, branches, proof.Tr, proof.Tm, contextID)
	if e.IsValidSecret() == 0 {
		return false
	}

	lhs1, err := secp256k1.Create(proof.Sr)
	if err != nil {
		return false
	}
	eC1, err := secp256k1.TweakMul(c1, e)
	if err != nil {
		return false
	}
	rhs1, err := secp256k1.Combine(proof.Tr, eC1)
	if err != nil {
		return false
	}
	if lhs1.Equal(rhs1) != 1 {
		return false
	}

	smG, err := secp256k1.Create(proof.Sm)
	if err != nil {
		return false
	}

	for i, b := range branches {
		srPi, err := secp256k1.TweakMul(b.PublicKey, proof.Sr)
		if err != nil {
			return false
		}
		lhs2, err := secp256k1.Combine(smG, srPi)
		if err != nil {
			return false
		}
		eC2, err := secp256k1.TweakMul(b.C2, e)
		if err != nil {
			return false
		}
		rhs2, err := secp256k1.Combine(proof.Tm[i], eC2)
		if err != nil {
			return false
		}
		if lhs2.Equal(rhs2) != 1 {
			return false
		}
	}

	return true
}

// Bytes serializes the proof as T_r || T_m[0..N) || s_m || s_r.
func (p *SharedRProof) Bytes() []byte {
	n := len(p.Tm)
	out := make([]byte, 0, SharedRProofSize(n))
	out = append(out, p.Tr.CompressedBytes()...)
	for _, pt := range p.Tm {
		out = append(out, pt.CompressedBytes()...)
	}
	out = append(out, p.Sm.Bytes()...)
	out = append(out, p.Sr.Bytes()...)
	return out
}

// ParseSharedRProof decodes a proof serialized by Bytes for n branches.
func ParseSharedRProof(src []byte, n int) (*SharedRProof, error) {
	if n <= 0 || len(src) != SharedRProofSize(n) {
		return nil, ErrMalformedProof
	}

	off := 0
	tr, err := parsePoint(src[off : off+secp256k1.CompressedPointSize])
	if err != nil {
		return nil, err
	}
	off += secp256k1.CompressedPointSize

	tm := make([]*secp256k1.Point, n)
	for i := 0; i < n; i++ {
		p, err := parsePoint(src[off : off+secp256k1.CompressedPointSize])
		if err != nil {
			return nil, err
		}
		tm[i] = p
		off += secp256k1.CompressedPointSize
	}

	sm, err := parseScalar(src[off : off+secp256k1.ScalarSize])
	if err != nil {
		return nil, err
	}
	off += secp256k1.ScalarSize
	sr, err := parseScalar(src[off : off+secp256k1.ScalarSize])
	if err != nil {
		return nil, err
	}

	return &SharedRProof{Tr: tr, Tm: tm, Sm: sm, Sr: sr}, nil
}

