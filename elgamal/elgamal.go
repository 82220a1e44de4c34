// Package elgamal implements additively-homomorphic EC-ElGamal
// encryption over secp256k1's base point: ciphertexts (C1, C2) with
// C1 = r*G, C2 = m*G + r*P, which add component-wise under the group
// law to add plaintexts.
package elgamal

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// CiphertextSize is the wire size of a ciphertext: C1 (33) || C2 (33).
const CiphertextSize = 2 * secp256k1.CompressedPointSize

// DecryptSearchWindow bounds the brute-force discrete-log search that
// Decrypt performs.  Amounts above this window must be proven via
// Bulletproofs and tracked by ledger-level bookkeeping instead of ever
// being decrypted directly.
const DecryptSearchWindow = 1_000_000

// ErrNotFound is returned by Decrypt when the plaintext does not lie in
// [0, DecryptSearchWindow].
var ErrNotFound = errors.New("elgamal: plaintext not found in search window")

// ErrInvalidKey is returned when a secret or public key argument fails
// validation.
var ErrInvalidKey = errors.New("elgamal: invalid key")

// KeyPair is an EC-ElGamal key pair: PublicKey = SecretKey * G.
type KeyPair struct {
	SecretKey *secp256k1.Scalar
	PublicKey *secp256k1.Point
}

// Ciphertext is the pair (C1, C2) with contract C1 = r*G, C2 = m*G + r*P.
type Ciphertext struct {
	C1 *secp256k1.Point
	C2 *secp256k1.Point
}

// KeyGen rejection-samples a secret key and derives the matching public
// key, per the group primitives create() operation.
func KeyGen(rand io.Reader) (*KeyPair, error) {
	sk, err := secp256k1.SampleScalar(rand)
	if err != nil {
		return nil, err
	}

	pk, err := secp256k1.Create(sk)
	if err != nil {
		return nil, err
	}

	return &KeyPair{SecretKey: sk, PublicKey: pk}, nil
}

// Encrypt computes C1 = r*G, S = r*pk, and C2 = S if m == 0 else m*G + S.
// The m == 0 branch exists because 0*G is the point at infinity, which
// the compressed wire format cannot encode and which Create rejects;
// setting C2 := S never computes that term.
func Encrypt(pk *secp256k1.Point, m uint64, r *secp256k1.Scalar) (*Ciphertext, error) {
	if r.IsValidSecret() == 0 {
		return nil, ErrInvalidKey
	}

	c1, err := secp256k1.Create(r)
	if err != nil {
		return nil, err
	}

	s, err := secp256k1.TweakMul(pk, r)
	if err != nil {
		return nil, err
	}

	if m == 0 {
		return &Ciphertext{C1: c1, C2: s}, nil
	}

	mScalar := scalarFromUint64(m)
	mG, err := secp256k1.Create(mScalar)
	if err != nil {
		return nil, err
	}

	c2, err := secp256k1.Combine(mG, s)
	if err != nil {
		return nil, err
	}

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt computes S = sk*C1 and, if C2 == S, returns 0.  Otherwise it
// forms M = C2 - S and brute-forces m in [1, DecryptSearchWindow] by
// comparing m*G against M, returning the first match or ErrNotFound.
func Decrypt(sk *secp256k1.Scalar, ct *Ciphertext) (uint64, error) {
	if sk.IsValidSecret() == 0 {
		return 0, ErrInvalidKey
	}

	s, err := secp256k1.TweakMul(ct.C1, sk)
	if err != nil {
		return 0, err
	}

	if ct.C2.Equal(s) == 1 {
		return 0, nil
	}

	m := secp256k1.NewPointFrom(ct.C2).Subtract(ct.C2, s)

	acc := secp256k1.NewGeneratorPoint()
	for i := uint64(1); i <= DecryptSearchWindow; i++ {
		if acc.Equal(m) == 1 {
			return i, nil
		}
		acc = secp256k1.NewPointFrom(acc).Add(acc, secp256k1.NewGeneratorPoint())
	}

	return 0, ErrNotFound
}

// Add returns the component-wise sum of two ciphertexts, the additive
// homomorphism the whole scheme exists to provide.
func Add(a, b *Ciphertext) (*Ciphertext, error) {
	c1, err := secp256k1.Combine(a.C1, b.C1)
	if err != nil {
		return nil, err
	}
	c2, err := secp256k1.Combine(a.C2, b.C2)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Subtract returns a - b, component-wise.
func Subtract(a, b *Ciphertext) (*Ciphertext, error) {
	negB1 := secp256k1.NewPointFrom(b.C1).Negate(b.C1)
	negB2 := secp256k1.NewPointFrom(b.C2).Negate(b.C2)
	c1, err := secp256k1.Combine(a.C1, negB1)
	if err != nil {
		return nil, err
	}
	c2, err := secp256k1.Combine(a.C2, negB2)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// CanonicalEncryptedZero derives a deterministic encryption of zero for
// (accountID, tokenID) under pk: the randomness is rejection-sampled
// from a chained SHA-256 of "EncZero" || accountID || tokenID, so that
// two honest parties encrypting "no balance yet" for the same account
// and token always produce byte-identical ciphertexts.
func CanonicalEncryptedZero(pk *secp256k1.Point, accountID [20]byte, tokenID [24]byte) (*Ciphertext, error) {
	r, err := deriveCanonicalZeroScalar(accountID, tokenID)
	if err != nil {
		return nil, err
	}
	return Encrypt(pk, 0, r)
}

func deriveCanonicalZeroScalar(accountID [20]byte, tokenID [24]byte) (*secp256k1.Scalar, error) {
	const maxResamples = 256

	h := sha256.New()
	h.Write([]byte("EncZero"))
	h.Write(accountID[:])
	h.Write(tokenID[:])
	digest := h.Sum(nil)

	for i := 0; i < maxResamples; i++ {
		var buf [32]byte
		copy(buf[:], digest)

		s := secp256k1.NewScalar()
		_, didReduce := s.SetBytes(&buf)
		if didReduce == 0 && s.IsValidSecret() == 1 {
			return s, nil
		}

		digest = hashOnce(digest)
	}

	return nil, secp256k1.ErrRejectionSampling
}

func hashOnce(in []byte) []byte {
	sum := sha256.Sum256(in)
	return sum[:]
}

// VerifyEncryption recomputes Encrypt(pk, m, r) and compares both
// components against ct, in constant time with respect to neither input
// (this is a public recomputation check, not a secret-dependent branch
// on the message it reveals).
func VerifyEncryption(pk *secp256k1.Point, m uint64, r *secp256k1.Scalar, ct *Ciphertext) bool {
	recomputed, err := Encrypt(pk, m, r)
	if err != nil {
		return false
	}
	return recomputed.C1.Equal(ct.C1) == 1 && recomputed.C2.Equal(ct.C2) == 1
}

// Bytes returns the 66-byte wire encoding C1 || C2.
func (c *Ciphertext) Bytes() []byte {
	out := make([]byte, 0, CiphertextSize)
	out = append(out, c.C1.CompressedBytes()...)
	out = append(out, c.C2.CompressedBytes()...)
	return out
}

// ParseCiphertext decodes the 66-byte wire encoding produced by Bytes.
func ParseCiphertext(src []byte) (*Ciphertext, error) {
	if len(src) != CiphertextSize {
		return nil, secp256k1.ErrMalformedPoint
	}
	c1, err := secp256k1.Parse33(src[:secp256k1.CompressedPointSize])
	if err != nil {
		return nil, err
	}
	c2, err := secp256k1.Parse33(src[secp256k1.CompressedPointSize:])
	if err != nil {
		return nil, err
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

func scalarFromUint64(v uint64) *secp256k1.Scalar {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], v)
	return secp256k1.Reduce32(&buf)
}
