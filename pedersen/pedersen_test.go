package pedersen

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

func randomBlinding(t *testing.T) *secp256k1.Scalar {
	t.Helper()
	s, err := secp256k1.SampleScalar(rand.Reader)
	require.NoError(t, err)
	return s
}

// TestCommitZeroIsRhoH is scenario S2 from the spec: commit(0, rho) must
// equal rho*H exactly, and commit(1, rho) must differ from it.
func TestCommitZeroIsRhoH(t *testing.T) {
	rho := randomBlinding(t)

	zeroCommit, err := Commit(0, rho)
	require.NoError(t, err)

	rhoH, err := secp256k1.TweakMul(H(), rho)
	require.NoError(t, err)
	require.EqualValues(t, 1, zeroCommit.Equal(rhoH))

	oneCommit, err := Commit(1, rho)
	require.NoError(t, err)
	require.EqualValues(t, 0, oneCommit.Equal(zeroCommit))
}

// TestHomomorphism is scenario S3: commit(a,ra) + commit(b,rb) ==
// commit(a+b, ra+rb).
func TestHomomorphism(t *testing.T) {
	ra, rb := randomBlinding(t), randomBlinding(t)

	ca, err := Commit(500, ra)
	require.NoError(t, err)
	cb, err := Commit(300, rb)
	require.NoError(t, err)

	sum, err := Add(ca, cb)
	require.NoError(t, err)

	rSum := secp256k1.NewScalar().Add(ra, rb)
	cSum, err := Commit(800, rSum)
	require.NoError(t, err)

	require.EqualValues(t, 1, sum.Equal(cSum))
	require.Equal(t, cSum.CompressedBytes(), sum.CompressedBytes())
}

func TestCommitRejectsInvalidBlinding(t *testing.T) {
	_, err := Commit(10, secp256k1.NewScalar().Zero())
	require.ErrorIs(t, err, ErrInvalidBlinding)
}
