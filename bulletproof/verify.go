package bulletproof

import (
	"errors"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// Verify checks proof against commitments[0..m) under blinding base
// hBase and context_id, where m = len(commitments) must be a power of
// two. It returns true iff every value committed to lies in [0, 2^64)
// and every Fiat-Shamir transcript matches.
func Verify(proof *Proof, commitments []*secp256k1.Point, hBase *secp256k1.Point, contextID []byte) bool {
	m := len(commitments)
	if !isPowerOfTwo(m) {
		return false
	}
	if len(contextID) != 32 {
		return false
	}

	n := BitsPerValue * m
	wantRounds := Rounds(m)
	if len(proof.L) != wantRounds || len(proof.R) != wantRounds {
		return false
	}
	if proof.AFinal.IsValidSecret() == 0 || proof.BFinal.IsValidSecret() == 0 {
		return false
	}
	if proof.TauX.IsValidSecret() == 0 || proof.Mu.IsValidSecret() == 0 || proof.THat.IsValidSecret() == 0 {
		return false
	}

	gen := fetchGenerators(n)

	y, z := challengeYZ(contextID, commitments, proof.A, proof.S)
	if y.IsValidSecret() == 0 || z.IsValidSecret() == 0 {
		return false
	}

	x := challengeX(contextID, proof.A, proof.S, y, z, proof.T1, proof.T2)
	if x.IsZero() == 1 {
		return false
	}

	d := delta(y, z, m)

	if !checkPolynomialIdentity(proof, commitments, hBase, x, z, d, m) {
		return false
	}

	seed, ux := ipaSeed(contextID, proof.A, proof.S, proof.T1, proof.T2, y, z, x, proof.THat)
	if ux.IsValidSecret() == 0 {
		return false
	}

	hPrime, err := normalizeH(gen.hVec, y)
	if err != nil {
		return false
	}

	p, err := rebuildIPACommitment(proof, gen, hPrime, hBase, x, y, z, ux, m, n)
	if err != nil {
		return false
	}

	return ipaVerify(gen.gVec, hPrime, gen.u, p, proof.L, proof.R, ux, seed, proof.AFinal, proof.BFinal)
}

// checkPolynomialIdentity checks
// t_hat*G + tau_x*H_base == sum_j z^(j+2)*V_j + delta*G + x*T1 + x^2*T2.
func checkPolynomialIdentity(proof *Proof, commitments []*secp256k1.Point, hBase *secp256k1.Point, x, z, d *secp256k1.Scalar, m int) bool {
	lhsG, err := scalarMultOrNil(proof.THat, secp256k1.NewGeneratorPoint())
	if err != nil {
		return false
	}
	lhsH, err := scalarMultOrNil(proof.TauX, hBase)
	if err != nil {
		return false
	}
	lhs, err := combineNonNil(lhsG, lhsH)
	if err != nil {
		return false
	}

	zPowers := powers(z, m+2)
	vTerms := make([]*secp256k1.Point, m)
	copy(vTerms, commitments)
	weights := make([]*secp256k1.Scalar, m)
	for j := 0; j < m; j++ {
		weights[j] = zPowers[j+2]
	}
	vSum, err := weightedSum(weights, vTerms)
	if err != nil && !errors.Is(err, secp256k1.ErrIdentity) {
		return false
	}

	deltaG, err := scalarMultOrNil(d, secp256k1.NewGeneratorPoint())
	if err != nil {
		return false
	}

	xT1, err := scalarMultOrNil(x, proof.T1)
	if err != nil {
		return false
	}
	x2 := secp256k1.NewScalar().Multiply(x, x)
	x2T2, err := scalarMultOrNil(x2, proof.T2)
	if err != nil {
		return false
	}

	rhs, err := combineNonNil(vSum, deltaG, xT1, x2T2)
	if err != nil {
		return false
	}

	return lhs.Equal(rhs) == 1
}

// rebuildIPACommitment computes
// P = A + x*S + sum_k [-z*G_k + (z*y^k + z^(block+2)*2^i)*H'_k] + t_hat*ux*U - mu*H_base.
func rebuildIPACommitment(proof *Proof, gen generators, hPrime []*secp256k1.Point, hBase *secp256k1.Point, x, y, z, ux *secp256k1.Scalar, m, n int) (*secp256k1.Point, error) {
	xS, err := scalarMultOrNil(x, proof.S)
	if err != nil {
		return nil, err
	}

	yPowers := powers(y, n)
	zPowers := powers(z, m+3)

	negZ := secp256k1.NewScalar().Negate(z)
	terms := make([]*secp256k1.Point, 0, 2*n+6)
	terms = append(terms, proof.A, xS)

	two := secp256k1.NewScalar().Add(secp256k1.NewScalar().One(), secp256k1.NewScalar().One())
	for j := 0; j < m; j++ {
		twoPow := secp256k1.NewScalar().One()
		zj2 := zPowers[j+2]
		for i := 0; i < BitsPerValue; i++ {
			k := BitsPerValue*j + i

			gTerm, err := scalarMultOrNil(negZ, gen.gVec[k])
			if err != nil {
				return nil, err
			}
			terms = append(terms, gTerm)

			zyk := secp256k1.NewScalar().Multiply(z, yPowers[k])
			zBlock2 := secp256k1.NewScalar().Multiply(zj2, twoPow)
			weight := secp256k1.NewScalar().Add(zyk, zBlock2)
			hTerm, err := scalarMultOrNil(weight, hPrime[k])
			if err != nil {
				return nil, err
			}
			terms = append(terms, hTerm)

			twoPow = secp256k1.NewScalar().Multiply(twoPow, two)
		}
	}

	tHatUx := secp256k1.NewScalar().Multiply(proof.THat, ux)
	tHatUxU, err := scalarMultOrNil(tHatUx, gen.u)
	if err != nil {
		return nil, err
	}
	terms = append(terms, tHatUxU)

	negMu := secp256k1.NewScalar().Negate(proof.Mu)
	negMuH, err := scalarMultOrNil(negMu, hBase)
	if err != nil {
		return nil, err
	}
	terms = append(terms, negMuH)

	return combineNonNil(terms...)
}
