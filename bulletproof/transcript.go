package bulletproof

import (
	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/internal/transcript"
)

const domainRange = "MPT_BULLETPROOF_RANGE"

// challengeYZ derives y then z, reusing the same prefix (domain,
// context_id, commitments, A, S) and appending y's bytes for z, exactly
// as specified.
func challengeYZ(contextID []byte, commitments []*secp256k1.Point, a, s *secp256k1.Point) (y, z *secp256k1.Scalar) {
	prefix := transcript.New().
		String(domainRange).
		Bytes(contextID).
		Points(commitments).
		Point(a).
		Point(s)

	y = prefix.Challenge()

	zBuilder := transcript.New().Bytes(prefix.Raw()).Scalar(y)
	z = zBuilder.Challenge()
	return y, z
}

// challengeX derives x from context_id, A, S, y, z, T1, T2.
func challengeX(contextID []byte, a, s *secp256k1.Point, y, z *secp256k1.Scalar, t1, t2 *secp256k1.Point) *secp256k1.Scalar {
	return transcript.New().
		Bytes(contextID).
		Point(a).
		Point(s).
		Scalar(y).
		Scalar(z).
		Point(t1).
		Point(t2).
		Challenge()
}

// ipaSeed computes the 32-byte IPA transcript seed and the IPA binding
// scalar u_x.
func ipaSeed(contextID []byte, a, s, t1, t2 *secp256k1.Point, y, z, x, tHat *secp256k1.Scalar) (seed [32]byte, ux *secp256k1.Scalar) {
	seed = transcript.New().
		Bytes(contextID).
		Point(a).
		Point(s).
		Point(t1).
		Point(t2).
		Scalar(y).
		Scalar(z).
		Scalar(x).
		Scalar(tHat).
		Sum()

	ux = transcript.New().Bytes(seed[:]).Scalar(tHat).Challenge()
	return seed, ux
}

// ipaRoundChallenge derives u_j = reduce32(SHA256(prev || L_j || R_j)).
func ipaRoundChallenge(prev [32]byte, l, r *secp256k1.Point) *secp256k1.Scalar {
	return transcript.New().Bytes(prev[:]).Point(l).Point(r).Challenge()
}

// delta computes δ(y,z) = (z - z^2)*sum(y^k) - sum_j z^(j+3)*sum_i 2^i.
func delta(y, z *secp256k1.Scalar, m int) *secp256k1.Scalar {
	n := 64 * m

	yPowers := powers(y, n)
	sumY := secp256k1.NewScalar().Zero()
	for _, yk := range yPowers {
		sumY = secp256k1.NewScalar().Add(sumY, yk)
	}

	z2 := secp256k1.NewScalar().Multiply(z, z)
	zMinusZ2 := secp256k1.NewScalar().Subtract(z, z2)
	term1 := secp256k1.NewScalar().Multiply(zMinusZ2, sumY)

	sumTwoPowers := secp256k1.NewScalar().Zero()
	two := secp256k1.NewScalar().Set(secp256k1.NewScalar().One())
	two = secp256k1.NewScalar().Add(two, secp256k1.NewScalar().One())
	cur := secp256k1.NewScalar().One()
	for i := 0; i < 64; i++ {
		sumTwoPowers = secp256k1.NewScalar().Add(sumTwoPowers, cur)
		cur = secp256k1.NewScalar().Multiply(cur, two)
	}

	zPowers := powers(z, m+3)
	term2 := secp256k1.NewScalar().Zero()
	for j := 0; j < m; j++ {
		zj3 := zPowers[j+3]
		t := secp256k1.NewScalar().Multiply(zj3, sumTwoPowers)
		term2 = secp256k1.NewScalar().Add(term2, t)
	}

	return secp256k1.NewScalar().Subtract(term1, term2)
}
