package sigma

import (
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// PoKSKProofSize is the fixed wire size of a PoK-SK proof: T(33) || s(32).
const PoKSKProofSize = secp256k1.CompressedPointSize + secp256k1.ScalarSize

// PoKSKProof proves knowledge of sk such that pk = sk*G, without
// revealing sk.
type PoKSKProof struct {
	T *secp256k1.Point
	S *secp256k1.Scalar
}

func pokSKChallenge(pk, t *secp256k1.Point, contextID []byte) *secp256k1.Scalar {
	return sha256Reduce([]byte(domainPoKSK), pk.CompressedBytes(), t.CompressedBytes(), contextID)
}

// ProvePoKSK proves knowledge of sk for pk = sk*G.
func ProvePoKSK(rand io.Reader, sk *secp256k1.Scalar, pk *secp256k1.Point, contextID []byte) (*PoKSKProof, error) {
	if len(contextID) != ContextIDSize {
		return nil, ErrMalformedProof
	}

	k, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer k.Scrub()

	t, err := secp256k1.Create(k)
	if err != nil {
		return nil, err
	}

	e := pokSKChallenge(pk, t, contextID)
	if e.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}

	s := response(k, e, sk)
	return &PoKSKProof{T: t, S: s}, nil
}

// VerifyPoKSK checks s*G == T + e*pk.
func VerifyPoKSK(proof *PoKSKProof, pk *secp256k1.Point, contextID []byte) bool {
	if len(contextID) != ContextIDSize {
		return false
	}
	if proof.S.IsValidSecret() == 0 {
		return false
	}

	e := pokSKChallenge(pk, proof.T, contextID)
	if e.IsValidSecret() == 0 {
		return false
	}

	lhs, err := secp256k1.Create(proof.S)
	if err != nil {
		return false
	}

	ePk, err := secp256k1.TweakMul(pk, e)
	if err != nil {
		return false
	}
	rhs, err := secp256k1.Combine(proof.T, ePk)
	if err != nil {
		return false
	}

	return lhs.Equal(rhs) == 1
}

// Bytes serializes the proof as T || s.
func (p *PoKSKProof) Bytes() []byte {
	out := make([]byte, 0, PoKSKProofSize)
	out = append(out, p.T.CompressedBytes()...)
	out = append(out, p.S.Bytes()...)
	return out
}

// ParsePoKSKProof decodes a proof serialized by Bytes.
func ParsePoKSKProof(src []byte) (*PoKSKProof, error) {
	if len(src) != PoKSKProofSize {
		return nil, ErrMalformedProof
	}

	t, err := parsePoint(src[:secp256k1.CompressedPointSize])
	if err != nil {
		return nil, err
	}
	s, err := parseScalar(src[secp256k1.CompressedPointSize:])
	if err != nil {
		return nil, err
	}

	return &PoKSKProof{T: t, S: s}, nil
}
