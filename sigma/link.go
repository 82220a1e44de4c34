package sigma

import (
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/elgamal"
	"github.com/xrplf/mpt-zkp/nums"
)

func hGenerator() *secp256k1.Point {
	return nums.HGenerator()
}

// LinkProofSize is the fixed wire size of a LINK proof:
// T1(33) || T2(33) || T3(33) || s_m(32) || s_r(32) || s_rho(32).
const LinkProofSize = 3*secp256k1.CompressedPointSize + 3*secp256k1.ScalarSize

// LinkProof proves that an ElGamal ciphertext (C1, C2) under pk and a
// Pedersen commitment PC open to the same amount m, with independent
// randomness r (ciphertext) and rho (commitment blinding).
type LinkProof struct {
	T1, T2, T3   *secp256k1.Point
	Sm, Sr, Srho *secp256k1.Scalar
}

func linkChallenge(ct *elgamal.Ciphertext, pk, pc, t1, t2, t3 *secp256k1.Point, contextID []byte) *secp256k1.Scalar {
	return sha256Reduce(
		[]byte(domainLink),
		ct.C1.CompressedBytes(), ct.C2.CompressedBytes(),
		pk.CompressedBytes(), pc.CompressedBytes(),
		t1.CompressedBytes(), t2.CompressedBytes(), t3.CompressedBytes(),
		contextID,
	)
}

// ProveLink proves that ct and pc both open to amount m, under
// ciphertext randomness r and commitment blinding rho.
func ProveLink(rand io.Reader, pk *secp256k1.Point, m uint64, r, rho *secp256k1.Scalar, ct *elgamal.Ciphertext, pc *secp256k1.Point, contextID []byte) (*LinkProof, error) {
	if len(contextID) != ContextIDSize {
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
	krho, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer krho.Scrub()

	t1, err := secp256k1.Create(kr)
	if err != nil {
		return nil, err
	}

	kmG, err := secp256k1.Create(km)
	if err != nil {
		return nil, err
	}
	krPk, err := secp256k1.TweakMul(pk, kr)
	if err != nil {
		return nil, err
	}
	t2, err := secp256k1.Combine(kmG, krPk)
	if err != nil {
		return nil, err
	}

	krhoH, err := secp256k1.TweakMul(hGenerator(), krho)
	if err != nil {
		return nil, err
	}
	t3, err := secp256k1.Combine(kmG, krhoH)
	if err != nil {
		return nil, err
	}

	e := linkChallenge(ct, pk, pc, t1, t2, t3, contextID)
	if e.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}

	mScalar := scalarFromAmount(m)
	sm := response(km, e, mScalar)
	sr := response(kr, e, r)
	srho := response(krho, e, rho)

	return &LinkProof{T1: t1, T2: t2, T3: t3, Sm: sm, Sr: sr, Srho: srho}, nil
}

// VerifyLink checks the three linear equations:
//
//	s_r*G            == T1 + e*C1
//	s_m*G + s_r*pk   == T2 + e*C2
//	s_m*G + s_rho*H  == T3 + e*PC
func VerifyLink(proof *LinkProof, pk *secp256k1.Point, ct *elgamal.Ciphertext, pc *secp256k1.Point, contextID []byte) bool {
	if len(contextID) != ContextIDSize {
		return false
	}
	if proof.Sm.IsValidSecret() == 0 || proof.Sr.IsValidSecret() == 0 || proof.Srho.IsValidSecret() == 0 {
		return false
	}

	e := linkChallenge(ct, pk, pc, proof.T1, proof.T2, proof.T3, contextID)
	if e.IsValidSecret() == 0 {
		return false
	}

	// s_r*G == T1 + e*C1
	lhs1, err := secp256k1.Create(proof.Sr)
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

	// s_m*G + s_r*pk == T2 + e*C2
	smG, err := secp256k1.Create(proof.Sm)
	if err != nil {
		return false
	}
	srPk, err := secp256k1.TweakMul(pk, proof.Sr)
	if err != nil {
		return false
	}
	lhs2, err := secp256k1.Combine(smG, srPk)
	if err != nil {
		return false
	}
	eC2, err := secp256k1.TweakMul(ct.C2, e)
	if err != nil {
		return false
	}
	rhs2, err := secp256k1.Combine(proof.T2, eC2)
	if err != nil {
		return false
	}
	if lhs2.Equal(rhs2) != 1 {
		return false
	}

	// s_m*G + s_rho*H == T3 + e*PC
	srhoH, err := secp256k1.TweakMul(hGenerator(), proof.Srho)
	if err != nil {
		return false
	}
	lhs3, err := secp256k1.Combine(smG, srhoH)
	if err != nil {
		return false
	}
	ePc, err := secp256k1.TweakMul(pc, e)
	if err != nil {
		return false
	}
	rhs3, err := secp256k1.Combine(proof.T3, ePc)
	if err != nil {
		return false
	}

	return lhs3.Equal(rhs3) == 1
}

// Bytes serializes the proof as T1 || T2 || T3 || s_m || s_r || s_rho.
func (p *LinkProof) Bytes() []byte {
	out := make([]byte, 0, LinkProofSize)
	out = append(out, p.T1.CompressedBytes()...)
	out = append(out, p.T2.CompressedBytes()...)
	out = append(out, p.T3.CompressedBytes()...)
	out = append(out, p.Sm.Bytes()...)
	out = append(out, p.Sr.Bytes()...)
	out = append(out, p.Srho.Bytes()...)
	return out
}

// ParseLinkProof decodes a proof serialized by Bytes.
func ParseLinkProof(src []byte) (*LinkProof, error) {
	if len(src) != LinkProofSize {
		return nil, ErrMalformedProof
	}

	off := 0
	next := func(n int) []byte {
		s := src[off : off+n]
		off += n
		return s
	}

	t1, err := parsePoint(next(secp256k1.CompressedPointSize))
	if err != nil {
		return nil, err
	}
	t2, err := parsePoint(next(secp256k1.CompressedPointSize))
	if err != nil {
		return nil, err
	}
	t3, err := parsePoint(next(secp256k1.CompressedPointSize))
	if err != nil {
		return nil, err
	}
	sm, err := parseScalar(next(secp256k1.ScalarSize))
	if err != nil {
		return nil, err
	}
	sr, err := parseScalar(next(secp256k1.ScalarSize))
	if err != nil {
		return nil, err
	}
	srho, err := parseScalar(next(secp256k1.ScalarSize))
	if err != nil {
		return nil, err
	}

	return &LinkProof{T1: t1, T2: t2, T3: t3, Sm: sm, Sr: sr, Srho: srho}, nil
}
