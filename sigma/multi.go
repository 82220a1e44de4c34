package sigma

import (
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// MultiProofSize returns the wire size of an EQ_PT_MULTI proof for n
// branches: (1+2n)*33 + (1+n)*32 bytes.
func MultiProofSize(n int) int {
	return (1+2*n)*secp256k1.CompressedPointSize + (1+n)*secp256k1.ScalarSize
}

// MultiProof proves that n ElGamal ciphertexts, each under its own
// public key and its own randomness, all encrypt the same plaintext m.
type MultiProof struct {
	Tm  *secp256k1.Point
	TrG []*secp256k1.Point
	TrP []*secp256k1.Point
	Sm  *secp256k1.Scalar
	SrI []*secp256k1.Scalar
}

func multiChallenge(branches []EncryptedAmount, tm *secp256k1.Point, trG, trP []*secp256k1.Point, contextID []byte) *secp256k1.Scalar {
	parts := [][]byte{[]byte(domainSamePlaintext)}
	for _, b := range branches {
		parts = append(parts, b.PublicKey.CompressedBytes(), b.Ciphertext.C1.CompressedBytes(), b.Ciphertext.C2.CompressedBytes())
	}
	parts = append(parts, tm.CompressedBytes())
	for _, p := range trG {
		parts = append(parts, p.CompressedBytes())
	}
	for _, p := range trP {
		parts = append(parts, p.CompressedBytes())
	}
	parts = append(parts, contextID)
	return sha256Reduce(parts...)
}

// ProveMulti proves that every branches[i].Ciphertext encrypts m under
// branches[i].PublicKey, using randomness randomness[i].
func ProveMulti(rand io.Reader, m uint64, randomness []*secp256k1.Scalar, branches []EncryptedAmount, contextID []byte) (*MultiProof, error) {
	if len(contextID) != ContextIDSize {
		return nil, ErrMalformedProof
	}
	n := len(branches)
	if n == 0 || len(randomness) != n {
		return nil, ErrMalformedProof
	}

	km, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}
	defer km.Scrub()

	tm, err := secp256k1.Create(km)
	if err != nil {
		return nil, err
	}

	kr := make([]*secp256k1.Scalar, n)
	trG := make([]*secp256k1.Point, n)
	trP := make([]*secp256k1.Point, n)
	for i := 0; i < n; i++ {
		kri, err := secp256k1.SampleScalar(rand)
		if err != nil {
			return nil, err
		}
		kr[i] = kri

		trGi, err := secp256k1.Create(kri)
		if err != nil {
			return nil, err
		}
		trG[i] = trGi

		trPi, err := secp256k1.TweakMul(branches[i].PublicKey, kri)
		if err != nil {
			return nil, err
		}
		trP[i] = trPi
	}
	defer func() {
		for _, k := range kr {
			k.Scrub()
		}
	}()

	e := multiChallenge(branches, tm, trG, trP, contextID)
	if e.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}

	sm := response(km, e, scalarFromAmount(m))
	sr := make([]*secp256k1.Scalar, n)
	for i := 0; i < n; i++ {
		sr[i] = response(kr[i], e, randomness[i])
	}

	return &MultiProof{Tm: tm, TrG: trG, TrP: trP, Sm: sm, SrI: sr}, nil
}

// VerifyMulti checks, for every branch i:
//
//	s_r,i*G          == T_rG,i + e*C1_i
//	s_m*G + s_r,i*P_i == T_m + T_rP,i + e*C2_i
func VerifyMulti(proof *MultiProof, branches []EncryptedAmount, contextID []byte) bool {
	if len(contextID) != ContextIDSize {
		return false
	}
	n := len(branches)
	if n == 0 || len(proof.TrG) != n || len(proof.TrP) != n || len(proof.SrI) != n {
		return false
	}
	if proof.Sm.IsValidSecret() == 0 {
		return false
	}
	for _, s := range proof.SrI {
		if s.IsValidSecret() == 0 {
			return false
		}
	}

	e := multiChallenge(branches, proof.Tm, proof.TrG, proof.TrP, contextID)
	if e.IsValidSecret() == 0 {
		return false
	}

	smG, err := secp256k1.Create(proof.Sm)
	if err != nil {
		return false
	}

	for i := 0; i < n; i++ {
		lhs1, err := secp256k1.Create(proof.SrI[i])
		if err != nil {
			return false
		}
		eC1, err := secp256k1.TweakMul(branches[i].Ciphertext.C1, e)
		if err != nil {
			return false
		}
		rhs1, err := secp256k1.Combine(proof.TrG[i], eC1)
		if err != nil {
			return false
		}
		if lhs1.Equal(rhs1) != 1 {
			return false
		}

		srPi, err := secp256k1.TweakMul(branches[i].PublicKey, proof.SrI[i])
		if err != nil {
			return false
		}
		lhs2, err := secp256k1.Combine(smG, srPi)
		if err != nil {
			return false
		}
		eC2, err := secp256k1.TweakMul(branches[i].Ciphertext.C2, e)
		if err != nil {
			return false
		}
		tSum, err := secp256k1.Combine(proof.Tm, proof.TrP[i])
		if err != nil {
			return false
		}
		rhs2, err := secp256k1.Combine(tSum, eC2)
		if err != nil {
			return false
		}
		if lhs2.Equal(rhs2) != 1 {
			return false
		}
	}

	return true
}

// Bytes serializes the proof as T_m || T_rG[0..N) || T_rP[0..N) || s_m || s_r[0..N).
func (p *MultiProof) Bytes() []byte {
	n := len(p.TrG)
	out := make([]byte, 0, MultiProofSize(n))
	out = append(out, p.Tm.CompressedBytes()...)
	for _, pt := range p.TrG {
		out = append(out, pt.CompressedBytes()...)
	}
	for _, pt := range p.TrP {
		out = append(out, pt.CompressedBytes()...)
	}
	out = append(out, p.Sm.Bytes()...)
	for _, s := range p.SrI {
		out = append(out, s.Bytes()...)
	}
	return out
}

// ParseMultiProof decodes a proof serialized by Bytes for n branches.
func ParseMultiProof(src []byte, n int) (*MultiProof, error) {
	if n <= 0 || len(src) != MultiProofSize(n) {
		return nil, ErrMalformedProof
	}

	off := 0
	nextPoint := func() (*secp256k1.Point, error) {
		p, err := parsePoint(src[off : off+secp256k1.CompressedPointSize])
		off += secp256k1.CompressedPointSize
		return p, err
	}
	nextScalar := func() (*secp256k1.Scalar, error) {
		s, err := parseScalar(src[off : off+secp256k1.ScalarSize])
		off += secp256k1.ScalarSize
		return s, err
	}

	tm, err := nextPoint()
	if err != nil {
		return nil, err
	}

	trG := make([]*secp256k1.Point, n)
	for i := 0; i < n; i++ {
		if trG[i], err = nextPoint(); err != nil {
			return nil, err
		}
	}
	trP := make([]*secp256k1.Point, n)
	for i := 0; i < n; i++ {
		if trP[i], err = nextPoint(); err != nil {
			return nil, err
		}
	}

	sm, err := nextScalar()
	if err != nil {
		return nil, err
	}
	sr := make([]*secp256k1.Scalar, n)
	for i := 0; i < n; i++ {
		if sr[i], err = nextScalar(); err != nil {
			return nil, err
		}
	}

	return &MultiProof{Tm: tm, TrG: trG, TrP: trP, Sm: sm, SrI: sr}, nil
}
