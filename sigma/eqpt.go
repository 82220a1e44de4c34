package sigma

import (
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/elgamal"
)

// EqPTProofSize is the fixed wire size of an EQ_PT proof: T1(33) || T2(33) || s(32).
const EqPTProofSize = 2*secp256k1.CompressedPointSize + secp256k1.ScalarSize

// EqPTProof proves that a ciphertext (C1, C2) encrypts a known plaintext
// m under pk, using known randomness r, without revealing r.
type EqPTProof struct {
	T1 *secp256k1.Point
	T2 *secp256k1.Point
	S  *secp256k1.Scalar
}

func eqPTChallenge(ct *elgamal.Ciphertext, pk *secp256k1.Point, mG, t1, t2 *secp256k1.Point, contextID []byte) *secp256k1.Scalar {
	parts := [][]byte{
		[]byte(domainEqPT),
		ct.C1.CompressedBytes(),
		ct.C2.CompressedBytes(),
		pk.CompressedBytes(),
	}
	if mG != nil {
		parts = append(parts, mG.CompressedBytes())
	}
	parts = append(parts, t1.CompressedBytes(), t2.CompressedBytes(), contextID)
	return sha256Reduce(parts...)
}

// ProveEqPT proves that ct encrypts m under pk using randomness r.
func ProveEqPT(rand io.Reader, pk *secp256k1.Point, m uint64, r *secp256k1.Scalar, ct *elgamal.Ciphertext, contextID []byte) (*EqPTProof, error) {
	if len(contextID) != ContextIDSize {
		return nil, ErrMalformedProof
	}

	t, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer t.Scrub()

	t1, err := secp256k1.Create(t)
	if err != nil {
		return nil, err
	}
	t2, err := secp256k1.TweakMul(pk, t)
	if err != nil {
		return nil, err
	}

	mG, err := amountPoint(m)
	if err != nil {
		return nil, err
	}

	e := eqPTChallenge(ct, pk, mG, t1, t2, contextID)
	if e.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}

	s := response(t, e, r)
	return &EqPTProof{T1: t1, T2: t2, S: s}, nil
}

// VerifyEqPT checks s*G == T1 + e*C1 and s*pk == T2 + e*Y, where
// Y = C2 if m == 0 else C2 - m*G.
func VerifyEqPT(proof *EqPTProof, pk *secp256k1.Point, m uint64, ct *elgamal.Ciphertext, contextID []byte) bool {
	if len(contextID) != ContextIDSize {
		return false
	}
	if proof.S.IsValidSecret() == 0 {
		return false
	}

	mG, err := amountPoint(m)
	if err != nil {
		return false
	}

	e := eqPTChallenge(ct, pk, mG, proof.T1, proof.T2, contextID)
	if e.IsValidSecret() == 0 {
		return false
	}

	lhs1, err := secp256k1.Create(proof.S)
	if err != nil {
		return false
	}
	eC1, err := secp256k1.TweakMul(ct.C1, e)
	if err != nil {
		return false
	}
	rhs1, err := secp256k1.Combine(proof.T1, eC1)
	if err != nil {
		return false
	}
	if lhs1.Equal(rhs1) != 1 {
		return false
	}

	y := ct.C2
	if mG != nil {
		negMG := secp256k1.NewPointFrom(mG).Negate(mG)
		y, err = secp256k1.Combine(ct.C2, negMG)
		if err != nil {
			return false
		}
	}

	lhs2, err := secp256k1.TweakMul(pk, proof.S)
	if err != nil {
		return false
	}
	eY, err := secp256k1.TweakMul(y, e)
	if err != nil {
		return false
	}
	rhs2, err := secp256k1.Combine(proof.T2, eY)
	if err != nil {
		return false
	}

	return lhs2.Equal(rhs2) == 1
}

// Bytes serializes the proof as T1 || T2 || s.
func (p *EqPTProof) Bytes() []byte {
	out := make([]byte, 0, EqPTProofSize)
	out = append(out, p.T1.CompressedBytes()...)
	out = append(out, p.T2.CompressedBytes()...)
	out = append(out, p.S.Bytes()...)
	return out
}

// ParseEqPTProof decodes a proof serialized by Bytes.
func ParseEqPTProof(src []byte) (*EqPTProof, error) {
	if len(src) != EqPTProofSize {
		return nil, ErrMalformedProof
	}

	off := 0
	t1, err := parsePoint(src[off : off+secp256k1.CompressedPointSize])
	if err != nil {
		return nil, err
	}
	off += secp256k1.CompressedPointSize

	t2, err := parsePoint(src[off : off+secp256k1.CompressedPointSize])
	if err != nil {
		return nil, err
	}
	off += secp256k1.CompressedPointSize

	s, err := parseScalar(src[off:])
	if err != nil {
		return nil, err
	}

	return &EqPTProof{T1: t1, T2: t2, S: s}, nil
}
