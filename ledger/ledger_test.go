package ledger

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/elgamal"
	"github.com/xrplf/mpt-zkp/pedersen"
	"github.com/xrplf/mpt-zkp/sigma"
)

func mustKeyPair(t *testing.T) *elgamal.KeyPair {
	t.Helper()
	kp, err := elgamal.KeyGen(rand.Reader)
	require.NoError(t, err)
	return kp
}

func mustScalar(t *testing.T) *secp256k1.Scalar {
	t.Helper()
	s, err := secp256k1.SampleScalar(rand.Reader)
	require.NoError(t, err)
	return s
}

func mustContextHash(t *testing.T, seed byte) []byte {
	t.Helper()
	ctx := make([]byte, 32)
	ctx[0] = seed
	return ctx
}

func TestEncryptAmountAndVerifyEncryption(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)

	ctBytes, err := EncryptAmount(kp.PublicKey.CompressedBytes(), 42, r.Bytes())
	require.NoError(t, err)
	require.Len(t, ctBytes, elgamal.CiphertextSize)

	status := VerifyEncryption(42, r.Bytes(), kp.PublicKey.CompressedBytes(), ctBytes)
	require.Equal(t, Ok, status)

	status = VerifyEncryption(43, r.Bytes(), kp.PublicKey.CompressedBytes(), ctBytes)
	require.Equal(t, BadProof, status)

	status = VerifyEncryption(42, r.Bytes(), kp.PublicKey.CompressedBytes(), ctBytes[:10])
	require.Equal(t, Internal, status)
}

func TestEncryptCanonicalZeroDeterministic(t *testing.T) {
	kp := mustKeyPair(t)
	var accountID [20]byte
	accountID[0] = 7
	var tokenID [24]byte
	tokenID[0] = 9

	a, err := EncryptCanonicalZero(kp.PublicKey.CompressedBytes(), accountID, tokenID)
	require.NoError(t, err)
	b, err := EncryptCanonicalZero(kp.PublicKey.CompressedBytes(), accountID, tokenID)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestHomomorphicAddSubtract(t *testing.T) {
	kp := mustKeyPair(t)
	r1, r2 := mustScalar(t), mustScalar(t)

	ctA, err := EncryptAmount(kp.PublicKey.CompressedBytes(), 10, r1.Bytes())
	require.NoError(t, err)
	ctB, err := EncryptAmount(kp.PublicKey.CompressedBytes(), 32, r2.Bytes())
	require.NoError(t, err)

	sum, err := HomomorphicAdd(ctA, ctB)
	require.NoError(t, err)

	sumScalar := secp256k1.NewScalar().Add(r1, r2)
	status := VerifyEncryption(42, sumScalar.Bytes(), kp.PublicKey.CompressedBytes(), sum)
	require.Equal(t, Ok, status)

	diff, err := HomomorphicSubtract(sum, ctB)
	require.NoError(t, err)
	status = VerifyEncryption(10, r1.Bytes(), kp.PublicKey.CompressedBytes(), diff)
	require.Equal(t, Ok, status)
}

func TestVerifySchnorrPoKSK(t *testing.T) {
	sk := mustScalar(t)
	pk, err := secp256k1.Create(sk)
	require.NoError(t, err)
	ctx := mustContextHash(t, 1)

	proof, err := sigma.ProvePoKSK(rand.Reader, sk, pk, ctx)
	require.NoError(t, err)

	require.Equal(t, Ok, VerifySchnorrPoKSK(pk.CompressedBytes(), proof.Bytes(), ctx))

	otherCtx := mustContextHash(t, 2)
	require.Equal(t, BadProof, VerifySchnorrPoKSK(pk.CompressedBytes(), proof.Bytes(), otherCtx))

	require.Equal(t, Internal, VerifySchnorrPoKSK(pk.CompressedBytes(), proof.Bytes()[:5], ctx))
}

func TestVerifyClawbackEquality(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)
	ctx := mustContextHash(t, 3)

	ct, err := elgamal.Encrypt(kp.PublicKey, 777, r)
	require.NoError(t, err)

	proof, err := sigma.ProveEqPT(rand.Reader, kp.PublicKey, 777, r, ct, ctx)
	require.NoError(t, err)

	status := VerifyClawbackEquality(777, proof.Bytes(), kp.PublicKey.CompressedBytes(), ct.Bytes(), ctx)
	require.Equal(t, Ok, status)

	status = VerifyClawbackEquality(778, proof.Bytes(), kp.PublicKey.CompressedBytes(), ct.Bytes(), ctx)
	require.Equal(t, BadProof, status)
}

func TestVerifyCtPcmLink(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)
	rho := mustScalar(t)
	ctx := mustContextHash(t, 4)

	ct, err := elgamal.Encrypt(kp.PublicKey, 555, r)
	require.NoError(t, err)
	pc, err := pedersen.Commit(555, rho)
	require.NoError(t, err)

	proof, err := sigma.ProveLink(rand.Reader, kp.PublicKey, 555, r, rho, ct, pc, ctx)
	require.NoError(t, err)

	status := VerifyCtPcmLink(proof.Bytes(), ct.Bytes(), kp.PublicKey.CompressedBytes(), pc.CompressedBytes(), ctx)
	require.Equal(t, Ok, status)

	status = VerifyCtPcmLinkBalance(proof.Bytes(), ct.Bytes(), kp.PublicKey.CompressedBytes(), pc.CompressedBytes(), ctx)
	require.Equal(t, Ok, status)
}

func TestVerifyMultiEquality(t *testing.T) {
	ctx := mustContextHash(t, 5)
	const amount = uint64(99)

	var branches []EncryptedAmount
	var sigmaBranches []sigma.EncryptedAmount
	var randomness []*secp256k1.Scalar
	for i := 0; i < 3; i++ {
		kp := mustKeyPair(t)
		r := mustScalar(t)
		ct, err := elgamal.Encrypt(kp.PublicKey, amount, r)
		require.NoError(t, err)

		branches = append(branches, EncryptedAmount{
			PublicKey:  kp.PublicKey.CompressedBytes(),
			Ciphertext: ct.Bytes(),
		})
		sigmaBranches = append(sigmaBranches, sigma.EncryptedAmount{PublicKey: kp.PublicKey, Ciphertext: ct})
		randomness = append(randomness, r)
	}

	proof, err := sigma.ProveMulti(rand.Reader, amount, randomness, sigmaBranches, ctx)
	require.NoError(t, err)

	status := VerifyMultiEquality(proof.Bytes(), branches, ctx)
	require.Equal(t, Ok, status)

	status = VerifyMultiEquality(proof.Bytes(), branches[:2], ctx)
	require.Equal(t, Internal, status)
}

func TestRangeProofSizeBytes(t *testing.T) {
	require.Equal(t, 754, RangeProofSizeBytes(2))
	require.Equal(t, 688, RangeProofSizeBytes(1))
}
