// Package sigma implements the five Sigma / Fiat-Shamir non-interactive
// proofs used to authenticate confidential transfers: proof of
// knowledge of a secret key, ciphertext/commitment linkage, plaintext
// equality to a known amount, and two 1-of-N plaintext-equality
// variants. Every proof follows the same shape: sample nonces, form
// commitment points as linear combinations of the nonces and public
// generators, derive a challenge by hashing a fully specified
// transcript, and compute response scalars k + e*witness. Verification
// recomputes the challenge from the proof's own commitments and checks
// the corresponding linear equations.
package sigma

import (
	"crypto/sha256"
	"errors"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/elgamal"
)

// ContextIDSize is the length of the opaque context tag mixed into
// every proof's transcript.
const ContextIDSize = 32

// ErrVerificationFailed is the single error for a rejected Sigma proof
// component: the proof parsers return it for a malformed point or an
// invalid response scalar, and the provers return it when the challenge
// is not a valid secret. The Verify* functions report every rejection,
// including a bad equation, as a plain false.
var ErrVerificationFailed = errors.New("sigma: verification failed")

// ErrMalformedProof is returned when a proof's byte length does not
// match its expected fixed (or N-derived) size.
var ErrMalformedProof = errors.New("sigma: malformed proof encoding")

const (
	domainPoKSK         = "MPT_POK_SK_REGISTER"
	domainEqPT          = "MPT_POK_PLAINTEXT_PROOF"
	domainLink          = "MPT_ELGAMAL_PEDERSEN_LINK"
	domainSamePlaintext = "MPT_POK_SAME_PLAINTEXT_PROOF"
	domainSharedR       = "MPT_POK_SAME_PLAINTEXT_SHARED_R"
)

func sha256Reduce(parts ...[]byte) *secp256k1.Scalar {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)
	var buf [32]byte
	copy(buf[:], digest)
	return secp256k1.Reduce32(&buf)
}

// response computes s = k + e*witness mod q.
func response(k, e, witness *secp256k1.Scalar) *secp256k1.Scalar {
	ew := secp256k1.NewScalar().Multiply(e, witness)
	return secp256k1.NewScalar().Add(k, ew)
}

// parseScalar decodes a 32-byte response and rejects non-canonical or
// non-secret encodings, matching the "every response scalar is checked
// to be a valid secret before use" verification contract.
func parseScalar(src []byte) (*secp256k1.Scalar, error) {
	if len(src) != secp256k1.ScalarSize {
		return nil, ErrMalformedProof
	}
	var buf [secp256k1.ScalarSize]byte
	copy(buf[:], src)
	s, err := secp256k1.NewScalarFromCanonicalBytes(&buf)
	if err != nil {
		return nil, ErrVerificationFailed
	}
	if s.IsValidSecret() == 0 {
		return nil, ErrVerificationFailed
	}
	return s, nil
}

func parsePoint(src []byte) (*secp256k1.Point, error) {
	p, err := secp256k1.NewPointFromBytes(src)
	if err != nil {
		return nil, ErrVerificationFailed
	}
	return p, nil
}

func scalarFromAmount(m uint64) *secp256k1.Scalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[31-i] = byte(m >> (8 * i))
	}
	return secp256k1.Reduce32(&buf)
}

// amountPoint returns m*G, or nil if m == 0 (the transcript and
// verification equations for several proofs omit this term entirely
// when the amount is zero).
func amountPoint(m uint64) (*secp256k1.Point, error) {
	if m == 0 {
		return nil, nil
	}
	return secp256k1.Create(scalarFromAmount(m))
}

// EncryptedAmount is the public (pk, ciphertext) pairing used by the
// 1-of-N equality proofs.
type EncryptedAmount struct {
	PublicKey  *secp256k1.Point
	Ciphertext *elgamal.Ciphertext
}
