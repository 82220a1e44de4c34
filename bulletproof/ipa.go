package bulletproof

import (
	"errors"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// ErrIPAFailed is returned by the IPA prover when any intermediate round
// challenge is not a valid secret. The IPA verifier reports every
// failure, including the final check, by returning false.
var ErrIPAFailed = errors.New("bulletproof: inner product argument failed")

func scalarBytes32(s *secp256k1.Scalar) [32]byte {
	var out [32]byte
	copy(out[:], s.Bytes())
	return out
}

// ipaProve runs the Inner Product Argument prover, folding (a, b, G, H)
// for log2(n) rounds and returning the round commitments plus the final
// scalars.
func ipaProve(gVec, hVec []*secp256k1.Point, aVec, bVec []*secp256k1.Scalar, u *secp256k1.Point, ux *secp256k1.Scalar, seed [32]byte) (L, R []*secp256k1.Point, aFinal, bFinal *secp256k1.Scalar, err error) {
	n := len(aVec)
	a := append([]*secp256k1.Scalar{}, aVec...)
	b := append([]*secp256k1.Scalar{}, bVec...)
	g := append([]*secp256k1.Point{}, gVec...)
	h := append([]*secp256k1.Point{}, hVec...)

	prev := seed

	for n > 1 {
		half := n / 2
		aL, aR := a[:half], a[half:]
		bL, bR := b[:half], b[half:]
		gL, gR := g[:half], g[half:]
		hL, hR := h[:half], h[half:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		t1, err1 := weightedSum(aL, gR)
		if err1 != nil && !errors.Is(err1, secp256k1.ErrIdentity) {
			return nil, nil, nil, nil, err1
		}
		t2, err2 := weightedSum(bR, hL)
		if err2 != nil && !errors.Is(err2, secp256k1.ErrIdentity) {
			return nil, nil, nil, nil, err2
		}
		cLux := secp256k1.NewScalar().Multiply(cL, ux)
		t3, err3 := scalarMultOrNil(cLux, u)
		if err3 != nil {
			return nil, nil, nil, nil, err3
		}
		lj, errL := combineNonNil(t1, t2, t3)
		if errL != nil {
			return nil, nil, nil, nil, errL
		}

		u1, err4 := weightedSum(aR, gL)
		if err4 != nil && !errors.Is(err4, secp256k1.ErrIdentity) {
			return nil, nil, nil, nil, err4
		}
		u2, err5 := weightedSum(bL, hR)
		if err5 != nil && !errors.Is(err5, secp256k1.ErrIdentity) {
			return nil, nil, nil, nil, err5
		}
		cRux := secp256k1.NewScalar().Multiply(cR, ux)
		u3, err6 := scalarMultOrNil(cRux, u)
		if err6 != nil {
			return nil, nil, nil, nil, err6
		}
		rj, errR := combineNonNil(u1, u2, u3)
		if errR != nil {
			return nil, nil, nil, nil, errR
		}

		uj := ipaRoundChallenge(prev, lj, rj)
		if uj.IsValidSecret() == 0 {
			return nil, nil, nil, nil, ErrIPAFailed
		}
		ujInv := secp256k1.NewScalar().Inverse(uj)

		newA := make([]*secp256k1.Scalar, half)
		newB := make([]*secp256k1.Scalar, half)
		newG := make([]*secp256k1.Point, half)
		newH := make([]*secp256k1.Point, half)
		for i := 0; i < half; i++ {
			newA[i] = secp256k1.NewScalar().Add(
				secp256k1.NewScalar().Multiply(aL[i], uj),
				secp256k1.NewScalar().Multiply(aR[i], ujInv),
			)
			newB[i] = secp256k1.NewScalar().Add(
				secp256k1.NewScalar().Multiply(bL[i], ujInv),
				secp256k1.NewScalar().Multiply(bR[i], uj),
			)

			gTerm1, err := scalarMultOrNil(ujInv, gL[i])
			if err != nil {
				return nil, nil, nil, nil, err
			}
			gTerm2, err := scalarMultOrNil(uj, gR[i])
			if err != nil {
				return nil, nil, nil, nil, err
			}
			newGi, err := combineNonNil(gTerm1, gTerm2)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			newG[i] = newGi

			hTerm1, err := scalarMultOrNil(uj, hL[i])
			if err != nil {
				return nil, nil, nil, nil, err
			}
			hTerm2, err := scalarMultOrNil(ujInv, hR[i])
			if err != nil {
				return nil, nil, nil, nil, err
			}
			newHi, err := combineNonNil(hTerm1, hTerm2)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			newH[i] = newHi
		}

		L = append(L, lj)
		R = append(R, rj)

		a, b, g, h = newA, newB, newG, newH
		n = half
		prev = scalarBytes32(uj)
	}

	return L, R, a[0], b[0], nil
}

// ipaVerify re-derives every round challenge from (L, R) and checks the
// final IPA identity without reconstructing the folded generator
// vectors explicitly.
func ipaVerify(gVec, hVec []*secp256k1.Point, u *secp256k1.Point, p *secp256k1.Point, l, r []*secp256k1.Point, ux *secp256k1.Scalar, seed [32]byte, aFinal, bFinal *secp256k1.Scalar) bool {
	n := len(gVec)
	rounds := len(l)
	if len(r) != rounds {
		return false
	}
	if aFinal.IsValidSecret() == 0 || bFinal.IsValidSecret() == 0 {
		return false
	}

	us := make([]*secp256k1.Scalar, rounds)
	usInv := make([]*secp256k1.Scalar, rounds)
	prev := seed
	for j := 0; j < rounds; j++ {
		uj := ipaRoundChallenge(prev, l[j], r[j])
		if uj.IsValidSecret() == 0 {
			return false
		}
		us[j] = uj
		usInv[j] = secp256k1.NewScalar().Inverse(uj)
		prev = scalarBytes32(uj)
	}

	sVec := make([]*secp256k1.Scalar, n)
	for k := 0; k < n; k++ {
		s := secp256k1.NewScalar().One()
		for j := 0; j < rounds; j++ {
			bit := (k >> (rounds - 1 - j)) & 1
			if bit == 1 {
				s = secp256k1.NewScalar().Multiply(s, us[j])
			} else {
				s = secp256k1.NewScalar().Multiply(s, usInv[j])
			}
		}
		sVec[k] = s
	}
	sInvVec := vecInvert(sVec)

	gF, err := weightedSum(sVec, gVec)
	if err != nil {
		return false
	}
	hF, err := weightedSum(sInvVec, hVec)
	if err != nil {
		return false
	}

	acc := secp256k1.NewPointFrom(p)
	for j := 0; j < rounds; j++ {
		uj2 := secp256k1.NewScalar().Multiply(us[j], us[j])
		ujInv2 := secp256k1.NewScalar().Multiply(usInv[j], usInv[j])

		t1, err := scalarMultOrNil(uj2, l[j])
		if err != nil {
			return false
		}
		t2, err := scalarMultOrNil(ujInv2, r[j])
		if err != nil {
			return false
		}
		sum, err := combineNonNil(acc, t1, t2)
		if err != nil {
			return false
		}
		acc = sum
	}

	aG, err := scalarMultOrNil(aFinal, gF)
	if err != nil {
		return false
	}
	bH, err := scalarMultOrNil(bFinal, hF)
	if err != nil {
		return false
	}
	abUx := secp256k1.NewScalar().Multiply(secp256k1.NewScalar().Multiply(aFinal, bFinal), ux)
	abU, err := scalarMultOrNil(abUx, u)
	if err != nil {
		return false
	}

	rhs, err := combineNonNil(aG, bH, abU)
	if err != nil {
		return false
	}

	return acc.Equal(rhs) == 1
}
