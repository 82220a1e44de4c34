package sigma

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/elgamal"
)

func mustScalar(t *testing.T) *secp256k1.Scalar {
	t.Helper()
	s, err := secp256k1.SampleScalar(rand.Reader)
	require.NoError(t, err)
	return s
}

func mustContextID(t *testing.T, seed byte) []byte {
	t.Helper()
	ctx := make([]byte, ContextIDSize)
	ctx[0] = seed
	return ctx
}

// TestPoKSKHappyAndNegative is scenario S1.
func TestPoKSKHappyAndNegative(t *testing.T) {
	sk := mustScalar(t)
	pk, err := secp256k1.Create(sk)
	require.NoError(t, err)

	ctx := mustContextID(t, 1)
	proof, err := ProvePoKSK(rand.Reader, sk, pk, ctx)
	require.NoError(t, err)
	require.Len(t, proof.Bytes(), PoKSKProofSize)

	require.True(t, VerifyPoKSK(proof, pk, ctx))

	flipped := bytes.Clone(proof.Bytes())
	flipped[64] ^= 0x01
	flippedProof, err := ParsePoKSKProof(flipped)
	if err == nil {
		require.False(t, VerifyPoKSK(flippedProof, pk, ctx))
	}

	otherCtx := mustContextID(t, 2)
	require.False(t, VerifyPoKSK(proof, pk, otherCtx))
}

func TestPoKSKRoundTrip(t *testing.T) {
	sk := mustScalar(t)
	pk, err := secp256k1.Create(sk)
	require.NoError(t, err)
	ctx := mustContextID(t, 3)

	proof, err := ProvePoKSK(rand.Reader, sk, pk, ctx)
	require.NoError(t, err)

	parsed, err := ParsePoKSKProof(proof.Bytes())
	require.NoError(t, err)
	require.Equal(t, proof.Bytes(), parsed.Bytes())
}

func TestEqPTZeroAndNonZero(t *testing.T) {
	sk := mustScalar(t)
	pk, err := secp256k1.Create(sk)
	require.NoError(t, err)
	ctx := mustContextID(t, 4)

	for _, m := range []uint64{0, 777} {
		r := mustScalar(t)
		ct, err := elgamal.Encrypt(pk, m, r)
		require.NoError(t, err)

		proof, err := ProveEqPT(rand.Reader, pk, m, r, ct, ctx)
		require.NoError(t, err)
		require.Len(t, proof.Bytes(), EqPTProofSize)
		require.True(t, VerifyEqPT(proof, pk, m, ct, ctx))
		require.False(t, VerifyEqPT(proof, pk, m+1, ct, ctx))
	}
}

func TestLinkProof(t *testing.T) {
	sk := mustScalar(t)
	pk, err := secp256k1.Create(sk)
	require.NoError(t, err)
	ctx := mustContextID(t, 5)

	m := uint64(42000)
	r := mustScalar(t)
	rho := mustScalar(t)

	ct, err := elgamal.Encrypt(pk, m, r)
	require.NoError(t, err)

	rhoH, err := secp256k1.TweakMul(hGenerator(), rho)
	require.NoError(t, err)
	mG, err := secp256k1.Create(scalarFromAmount(m))
	require.NoError(t, err)
	pc, err := secp256k1.Combine(mG, rhoH)
	require.NoError(t, err)

	proof, err := ProveLink(rand.Reader, pk, m, r, rho, ct, pc, ctx)
	require.NoError(t, err)
	require.Len(t, proof.Bytes(), LinkProofSize)
	require.True(t, VerifyLink(proof, pk, ct, pc, ctx))

	otherPc, err := secp256k1.Create(scalarFromAmount(m + 1))
	require.NoError(t, err)
	require.False(t, VerifyLink(proof, pk, ct, otherPc, ctx))
}

func buildMultiBranches(t *testing.T, m uint64, n int) ([]EncryptedAmount, []*secp256k1.Scalar) {
	t.Helper()
	branches := make([]EncryptedAmount, n)
	randomness := make([]*secp256k1.Scalar, n)
	for i := 0; i < n; i++ {
		sk := mustScalar(t)
		pk, err := secp256k1.Create(sk)
		require.NoError(t, err)
		r := mustScalar(t)
		ct, err := elgamal.Encrypt(pk, m, r)
		require.NoError(t, err)
		branches[i] = EncryptedAmount{PublicKey: pk, Ciphertext: ct}
		randomness[i] = r
	}
	return branches, randomness
}

// TestMultiEquality exercises both N=2 and N=5 per the "two distinct N
// values" requirement.
func TestMultiEquality(t *testing.T) {
	ctx := mustContextID(t, 6)

	for _, n := range []int{2, 5} {
		m := uint64(123456)
		branches, randomness := buildMultiBranches(t, m, n)

		proof, err := ProveMulti(rand.Reader, m, randomness, branches, ctx)
		require.NoError(t, err)
		require.Len(t, proof.Bytes(), MultiProofSize(n))
		require.True(t, VerifyMulti(proof, branches, ctx))

		// Mutate one branch's ciphertext to encrypt a different plaintext.
		otherR := mustScalar(t)
		badCt, err := elgamal.Encrypt(branches[0].PublicKey, m+1, otherR)
		require.NoError(t, err)
		tampered := append([]EncryptedAmount{}, branches...)
		tampered[0] = EncryptedAmount{PublicKey: branches[0].PublicKey, Ciphertext: badCt}
		require.False(t, VerifyMulti(proof, tampered, ctx))
	}
}

func TestMultiRoundTrip(t *testing.T) {
	ctx := mustContextID(t, 7)
	m := uint64(9)
	branches, randomness := buildMultiBranches(t, m, 3)

	proof, err := ProveMulti(rand.Reader, m, randomness, branches, ctx)
	require.NoError(t, err)

	parsed, err := ParseMultiProof(proof.Bytes(), 3)
	require.NoError(t, err)
	require.Equal(t, proof.Bytes(), parsed.Bytes())
}

// TestSharedREquality is scenario S7 with N=3.
func TestSharedREquality(t *testing.T) {
	ctx := mustContextID(t, 8)
	m := uint64(123456789)
	r := mustScalar(t)

	c1, err := secp256k1.Create(r)
	require.NoError(t, err)

	branches := make([]SharedRBranch, 3)
	for i := 0; i < 3; i++ {
		sk := mustScalar(t)
		pk, err := secp256k1.Create(sk)
		require.NoError(t, err)

		ct, err := elgamal.Encrypt(pk, m, r)
		require.NoError(t, err)
		branches[i] = SharedRBranch{PublicKey: pk, C2: ct.C2}
	}

	proof, err := ProveSharedR(rand.Reader, m, r, c1, branches, ctx)
	require.NoError(t, err)
	require.Len(t, proof.Bytes(), SharedRProofSize(3))
	require.True(t, VerifySharedR(proof, c1, branches, ctx))

	// Flip one bit of one C2.
	tampered := append([]SharedRBranch{}, branches...)
	badBytes := bytes.Clone(tampered[1].C2.CompressedBytes())
	badBytes[10] ^= 0x01
	if badPoint, err := secp256k1.NewPointFromBytes(badBytes); err == nil {
		tampered[1] = SharedRBranch{PublicKey: tampered[1].PublicKey, C2: badPoint}
		require.False(t, VerifySharedR(proof, c1, tampered, ctx))
	}

	// Flip one bit of the context.
	otherCtx := bytes.Clone(ctx)
	otherCtx[0] ^= 0x01
	require.False(t, VerifySharedR(proof, c1, branches, otherCtx))
}

func TestSharedRRoundTrip(t *testing.T) {
	ctx := mustContextID(t, 9)
	m := uint64(55)
	r := mustScalar(t)
	c1, err := secp256k1.Create(r)
	require.NoError(t, err)

	branches := make([]SharedRBranch, 2)
	for i := range branches {
		sk := mustScalar(t)
		pk, err := secp256k1.Create(sk)
		require.NoError(t, err)
		ct, err := elgamal.Encrypt(pk, m, r)
		require.NoError(t, err)
		branches[i] = SharedRBranch{PublicKey: pk, C2: ct.C2}
	}

	proof, err := ProveSharedR(rand.Reader, m, r, c1, branches, ctx)
	require.NoError(t, err)

	parsed, err := ParseSharedRProof(proof.Bytes(), 2)
	require.NoError(t, err)
	require.Equal(t, proof.Bytes(), parsed.Bytes())
}
