package bulletproof

import (
	"encoding/binary"
	"errors"
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// ErrRandomnessFailure wraps a failure of the injected randomness
// source during proof generation.
var ErrRandomnessFailure = errors.New("bulletproof: randomness source failed")

// ErrChallengeCollapsed is returned when a Fiat-Shamir challenge that
// the prover must reject (y, z, x, t1, t2, or ux) comes out zero or
// otherwise invalid. A collapsed IPA round challenge surfaces from Prove
// as ErrIPAFailed instead. The prover aborts rather than ever emitting a
// proof built on a degenerate challenge.
var ErrChallengeCollapsed = errors.New("bulletproof: fiat-shamir challenge collapsed")

func commitWithBase(v uint64, rho *secp256k1.Scalar, hBase *secp256k1.Point) (*secp256k1.Point, error) {
	if rho.IsValidSecret() == 0 {
		return nil, errors.New("bulletproof: invalid blinding factor")
	}

	rhoH, err := secp256k1.TweakMul(hBase, rho)
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

func scalarFromUint64(v uint64) *secp256k1.Scalar {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], v)
	return secp256k1.Reduce32(&buf)
}

// Prove builds an aggregated range proof for values[j] in [0, 2^64)
// under blindings[j] and commitments V_j = values[j]*G + blindings[j]*hBase.
// len(values) == len(blindings) must be a power of two.
func Prove(rand io.Reader, values []uint64, blindings []*secp256k1.Scalar, hBase *secp256k1.Point, contextID []byte) (*Proof, []*secp256k1.Point, error) {
	m := len(values)
	if !isPowerOfTwo(m) || len(blindings) != m {
		return nil, nil, ErrInvalidAggregation
	}
	if len(contextID) != 32 {
		return nil, nil, ErrMalformedProof
	}

	n := BitsPerValue * m
	gen := fetchGenerators(n)

	vCommits := make([]*secp256k1.Point, m)
	for j := 0; j < m; j++ {
		v, err := commitWithBase(values[j], blindings[j], hBase)
		if err != nil {
			return nil, nil, err
		}
		vCommits[j] = v
	}

	aL := make([]*secp256k1.Scalar, n)
	aR := make([]*secp256k1.Scalar, n)
	one := secp256k1.NewScalar().One()
	negOne := secp256k1.NewScalar().Negate(one)
	for j := 0; j < m; j++ {
		for i := 0; i < BitsPerValue; i++ {
			k := BitsPerValue*j + i
			bit := (values[j] >> uint(i)) & 1
			if bit == 1 {
				aL[k] = secp256k1.NewScalarFrom(one)
				aR[k] = secp256k1.NewScalar().Zero()
			} else {
				aL[k] = secp256k1.NewScalar().Zero()
				aR[k] = secp256k1.NewScalarFrom(negOne)
			}
		}
	}

	sL, err := sampleScalarVector(rand, n)
	if err != nil {
		return nil, nil, err
	}
	sR, err := sampleScalarVector(rand, n)
	if err != nil {
		return nil, nil, err
	}

	alpha, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, nil, errors.Join(ErrRandomnessFailure, err)
	}
	defer alpha.Scrub()
	rho, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, nil, errors.Join(ErrRandomnessFailure, err)
	}
	defer rho.Scrub()

	a, err := commitBitVectors(alpha, hBase, aL, aR, gen.gVec, gen.hVec)
	if err != nil {
		return nil, nil, err
	}
	s, err := commitBitVectors(rho, hBase, sL, sR, gen.gVec, gen.hVec)
	if err != nil {
		return nil, nil, err
	}

	y, z := challengeYZ(contextID, vCommits, a, s)
	if y.IsValidSecret() == 0 || z.IsValidSecret() == 0 {
		return nil, nil, ErrChallengeCollapsed
	}

	yPowers := powers(y, n)
	zPowers := powers(z, m+3)

	l0 := make([]*secp256k1.Scalar, n)
	l1 := make([]*secp256k1.Scalar, n)
	r0 := make([]*secp256k1.Scalar, n)
	r1 := make([]*secp256k1.Scalar, n)
	two := secp256k1.NewScalar().Add(one, one)
	for j := 0; j < m; j++ {
		twoPow := secp256k1.NewScalar().One()
		zj2 := zPowers[j+2]
		for i := 0; i < BitsPerValue; i++ {
			k := BitsPerValue*j + i
			l0[k] = secp256k1.NewScalar().Subtract(aL[k], z)
			l1[k] = sL[k]

			arPlusZ := secp256k1.NewScalar().Add(aR[k], z)
			ykArPlusZ := secp256k1.NewScalar().Multiply(yPowers[k], arPlusZ)
			zTerm := secp256k1.NewScalar().Multiply(zj2, twoPow)
			r0[k] = secp256k1.NewScalar().Add(ykArPlusZ, zTerm)
			r1[k] = secp256k1.NewScalar().Multiply(sR[k], yPowers[k])

			twoPow = secp256k1.NewScalar().Multiply(twoPow, two)
		}
	}

	t1 := secp256k1.NewScalar().Add(innerProduct(l0, r1), innerProduct(l1, r0))
	t2 := innerProduct(l1, r1)
	if t1.IsZero() == 1 || t2.IsZero() == 1 {
		return nil, nil, ErrChallengeCollapsed
	}

	tau1, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, nil, errors.Join(ErrRandomnessFailure, err)
	}
	defer tau1.Scrub()
	tau2, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, nil, errors.Join(ErrRandomnessFailure, err)
	}
	defer tau2.Scrub()

	t1G, err := secp256k1.Create(t1)
	if err != nil {
		return nil, nil, err
	}
	tau1H, err := secp256k1.TweakMul(hBase, tau1)
	if err != nil {
		return nil, nil, err
	}
	t1Commit, err := secp256k1.Combine(t1G, tau1H)
	if err != nil {
		return nil, nil, err
	}

	t2G, err := secp256k1.Create(t2)
	if err != nil {
		return nil, nil, err
	}
	tau2H, err := secp256k1.TweakMul(hBase, tau2)
	if err != nil {
		return nil, nil, err
	}
	t2Commit, err := secp256k1.Combine(t2G, tau2H)
	if err != nil {
		return nil, nil, err
	}

	x := challengeX(contextID, a, s, y, z, t1Commit, t2Commit)
	if x.IsZero() == 1 {
		return nil, nil, ErrChallengeCollapsed
	}

	lVec := vecAdd(l0, vecScale(l1, x))
	rVec := vecAdd(r0, vecScale(r1, x))
	tHat := innerProduct(lVec, rVec)

	x2 := secp256k1.NewScalar().Multiply(x, x)
	tauX := secp256k1.NewScalar().Multiply(tau2, x2)
	tauX = secp256k1.NewScalar().Add(tauX, secp256k1.NewScalar().Multiply(tau1, x))
	for j := 0; j < m; j++ {
		zj2Rho := secp256k1.NewScalar().Multiply(zPowers[j+2], blindings[j])
		tauX = secp256k1.NewScalar().Add(tauX, zj2Rho)
	}

	mu := secp256k1.NewScalar().Add(alpha, secp256k1.NewScalar().Multiply(rho, x))

	seed, ux := ipaSeed(contextID, a, s, t1Commit, t2Commit, y, z, x, tHat)
	if ux.IsValidSecret() == 0 {
		return nil, nil, ErrChallengeCollapsed
	}

	hPrime, err := normalizeH(gen.hVec, y)
	if err != nil {
		return nil, nil, err
	}

	l, r, aFinal, bFinal, err := ipaProve(gen.gVec, hPrime, lVec, rVec, gen.u, ux, seed)
	if err != nil {
		return nil, nil, err
	}

	proof := &Proof{
		A: a, S: s, T1: t1Commit, T2: t2Commit,
		L: l, R: r,
		AFinal: aFinal, BFinal: bFinal,
		THat: tHat, TauX: tauX, Mu: mu,
	}
	return proof, vCommits, nil
}

func sampleScalarVector(rand io.Reader, n int) ([]*secp256k1.Scalar, error) {
	out := make([]*secp256k1.Scalar, n)
	for i := 0; i < n; i++ {
		s, err := secp256k1.SampleScalar(rand)
		if err != nil {
			return nil, errors.Join(ErrRandomnessFailure, err)
		}
		out[i] = s
	}
	return out, nil
}

func commitBitVectors(blind *secp256k1.Scalar, hBase *secp256k1.Point, left, right []*secp256k1.Scalar, gVec, hVec []*secp256k1.Point) (*secp256k1.Point, error) {
	blindTerm, err := secp256k1.TweakMul(hBase, blind)
	if err != nil {
		return nil, err
	}

	leftTerm, err := weightedSum(left, gVec)
	if err != nil && !errors.Is(err, secp256k1.ErrIdentity) {
		return nil, err
	}
	rightTerm, err := weightedSum(right, hVec)
	if err != nil && !errors.Is(err, secp256k1.ErrIdentity) {
		return nil, err
	}

	return combineNonNil(blindTerm, leftTerm, rightTerm)
}
