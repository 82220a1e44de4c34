package elgamal

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

func mustKeyPair(t *testing.T) *KeyPair {
	t.Helper()
	kp, err := KeyGen(rand.Reader)
	require.NoError(t, err)
	return kp
}

func mustScalar(t *testing.T) *secp256k1.Scalar {
	t.Helper()
	s, err := secp256k1.SampleScalar(rand.Reader)
	require.NoError(t, err)
	return s
}

// TestEncryptDecryptZero is scenario S4: encrypting 0 and decrypting
// must round-trip to 0 without ever entering the search loop.
func TestEncryptDecryptZero(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)

	ct, err := Encrypt(kp.PublicKey, 0, r)
	require.NoError(t, err)

	m, err := Decrypt(kp.SecretKey, ct)
	require.NoError(t, err)
	require.EqualValues(t, 0, m)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp := mustKeyPair(t)

	for _, amount := range []uint64{1, 2, 42, 1000, 999_999, DecryptSearchWindow} {
		r := mustScalar(t)
		ct, err := Encrypt(kp.PublicKey, amount, r)
		require.NoError(t, err)

		got, err := Decrypt(kp.SecretKey, ct)
		require.NoError(t, err)
		require.Equal(t, amount, got)
	}
}

func TestDecryptNotFoundBeyondWindow(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)

	ct, err := Encrypt(kp.PublicKey, DecryptSearchWindow+1, r)
	require.NoError(t, err)

	_, err = Decrypt(kp.SecretKey, ct)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestHomomorphicAdd checks that Enc(a) + Enc(b) decrypts to a+b
// under the combined randomness ra+rb.
func TestHomomorphicAdd(t *testing.T) {
	kp := mustKeyPair(t)
	ra, rb := mustScalar(t), mustScalar(t)

	ca, err := Encrypt(kp.PublicKey, 100, ra)
	require.NoError(t, err)
	cb, err := Encrypt(kp.PublicKey, 250, rb)
	require.NoError(t, err)

	sum, err := Add(ca, cb)
	require.NoError(t, err)

	got, err := Decrypt(kp.SecretKey, sum)
	require.NoError(t, err)
	require.EqualValues(t, 350, got)
}

func TestHomomorphicSubtract(t *testing.T) {
	kp := mustKeyPair(t)
	ra, rb := mustScalar(t), mustScalar(t)

	ca, err := Encrypt(kp.PublicKey, 500, ra)
	require.NoError(t, err)
	cb, err := Encrypt(kp.PublicKey, 200, rb)
	require.NoError(t, err)

	diff, err := Subtract(ca, cb)
	require.NoError(t, err)

	got, err := Decrypt(kp.SecretKey, diff)
	require.NoError(t, err)
	require.EqualValues(t, 300, got)
}

func TestCanonicalEncryptedZeroIsDeterministic(t *testing.T) {
	kp := mustKeyPair(t)
	accountID := [20]byte{1, 2, 3}
	tokenID := [24]byte{9, 9, 9}

	a, err := CanonicalEncryptedZero(kp.PublicKey, accountID, tokenID)
	require.NoError(t, err)
	b, err := CanonicalEncryptedZero(kp.PublicKey, accountID, tokenID)
	require.NoError(t, err)

	require.Equal(t, a.Bytes(), b.Bytes())

	otherToken := [24]byte{9, 9, 8}
	c, err := CanonicalEncryptedZero(kp.PublicKey, accountID, otherToken)
	require.NoError(t, err)
	require.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestVerifyEncryption(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)

	ct, err := Encrypt(kp.PublicKey, 77, r)
	require.NoError(t, err)

	require.True(t, VerifyEncryption(kp.PublicKey, 77, r, ct))
	require.False(t, VerifyEncryption(kp.PublicKey, 78, r, ct))
}

func TestCiphertextBytesRoundTrip(t *testing.T) {
	kp := mustKeyPair(t)
	r := mustScalar(t)

	ct, err := Encrypt(kp.PublicKey, 55, r)
	require.NoError(t, err)

	parsed, err := ParseCiphertext(ct.Bytes())
	require.NoError(t, err)
	require.EqualValues(t, 1, parsed.C1.Equal(ct.C1))
	require.EqualValues(t, 1, parsed.C2.Equal(ct.C2))
}

func TestParseCiphertextRejectsWrongLength(t *testing.T) {
	_, err := ParseCiphertext(make([]byte, CiphertextSize-1))
	require.Error(t, err)
}
