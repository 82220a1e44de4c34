package bulletproof

import (
	secp256k1 "github.com/xrplf/mpt-zkp"
)

// Bytes serializes the proof as
// A || S || T1 || T2 || L[0..rounds) || R[0..rounds) || a_final || b_final || t_hat || tau_x || mu.
func (p *Proof) Bytes() []byte {
	rounds := len(p.L)
	out := make([]byte, 0, 292+66*rounds)

	out = append(out, p.A.CompressedBytes()...)
	out = append(out, p.S.CompressedBytes()...)
	out = append(out, p.T1.CompressedBytes()...)
	out = append(out, p.T2.CompressedBytes()...)
	for _, l := range p.L {
		out = append(out, l.CompressedBytes()...)
	}
	for _, r := range p.R {
		out = append(out, r.CompressedBytes()...)
	}
	out = append(out, p.AFinal.Bytes()...)
	out = append(out, p.BFinal.Bytes()...)
	out = append(out, p.THat.Bytes()...)
	out = append(out, p.TauX.Bytes()...)
	out = append(out, p.Mu.Bytes()...)

	return out
}

// ParseProof decodes a proof for aggregation width m, which fixes the
// expected number of IPA rounds and therefore the expected length.
func ParseProof(src []byte, m int) (*Proof, error) {
	if !isPowerOfTwo(m) {
		return nil, ErrInvalidAggregation
	}
	rounds := Rounds(m)
	if len(src) != ProofSize(m) {
		return nil, ErrMalformedProof
	}

	off := 0
	nextPoint := func() (*secp256k1.Point, error) {
		p, err := secp256k1.NewPointFromBytes(src[off : off+secp256k1.CompressedPointSize])
		off += secp256k1.CompressedPointSize
		if err != nil {
			return nil, ErrMalformedProof
		}
		return p, nil
	}
	nextScalar := func() (*secp256k1.Scalar, error) {
		var buf [secp256k1.ScalarSize]byte
		copy(buf[:], src[off:off+secp256k1.ScalarSize])
		off += secp256k1.ScalarSize
		s, err := secp256k1.NewScalarFromCanonicalBytes(&buf)
		if err != nil {
			return nil, ErrMalformedProof
		}
		return s, nil
	}

	a, err := nextPoint()
	if err != nil {
		return nil, err
	}
	s, err := nextPoint()
	if err != nil {
		return nil, err
	}
	t1, err := nextPoint()
	if err != nil {
		return nil, err
	}
	t2, err := nextPoint()
	if err != nil {
		return nil, err
	}

	l := make([]*secp256k1.Point, rounds)
	for i := 0; i < rounds; i++ {
		if l[i], err = nextPoint(); err != nil {
			return nil, err
		}
	}
	r := make([]*secp256k1.Point, rounds)
	for i := 0; i < rounds; i++ {
		if r[i], err = nextPoint(); err != nil {
			return nil, err
		}
	}

	aFinal, err := nextScalar()
	if err != nil {
		return nil, err
	}
	bFinal, err := nextScalar()
	if err != nil {
		return nil, err
	}
	tHat, err := nextScalar()
	if err != nil {
		return nil, err
	}
	tauX, err := nextScalar()
	if err != nil {
		return nil, err
	}
	mu, err := nextScalar()
	if err != nil {
		return nil, err
	}

	return &Proof{
		A: a, S: s, T1: t1, T2: t2,
		L: l, R: r,
		AFinal: aFinal, BFinal: bFinal,
		THat: tHat, TauX: tauX, Mu: mu,
	}, nil
}
