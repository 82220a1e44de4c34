// Package ledger exposes the proof engine through the stable
// byte-in/byte-out surface its single caller (the ledger layer) is
// built against: every function takes plain byte slices, the
// encrypt/combine functions return encoded bytes and an error, and every
// verifying function returns a three-valued Status, so that the caller
// never has to import or understand the underlying point/scalar/proof
// types directly.
package ledger

import (
	"crypto/rand"
	"errors"
	"io"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/bulletproof"
	"github.com/xrplf/mpt-zkp/elgamal"
	"github.com/xrplf/mpt-zkp/sigma"
)

// Status is the three-valued outcome every verifying function returns.
type Status int

const (
	// Ok means verification succeeded.
	Ok Status = iota
	// BadProof means the input was well-formed but the proof, equation,
	// or transcript did not check out: a semantic rejection.
	BadProof
	// Internal means the input itself was malformed: wrong lengths,
	// unparseable points, non-canonical scalars, an aggregation width
	// that is not a power of two. The caller should never see this for
	// well-formed ledger input.
	Internal
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case BadProof:
		return "BadProof"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// ErrInvalidInput is returned (possibly joined with the underlying parse
// error) by the encrypt/combine helpers, which report failure as an
// error rather than as a Status.
var ErrInvalidInput = errors.New("ledger: invalid input")

func parsePoint(src []byte) (*secp256k1.Point, error) {
	p, err := secp256k1.NewPointFromBytes(src)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	return p, nil
}

func parseScalar(src []byte) (*secp256k1.Scalar, error) {
	if len(src) != secp256k1.ScalarSize {
		return nil, ErrInvalidInput
	}
	var buf [secp256k1.ScalarSize]byte
	copy(buf[:], src)
	s, err := secp256k1.NewScalarFromCanonicalBytes(&buf)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	return s, nil
}

// EncryptAmount encrypts amount under pk with the given blinding
// randomness, returning the 66-byte ciphertext encoding.
func EncryptAmount(pk []byte, amount uint64, blinding []byte) ([]byte, error) {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return nil, err
	}
	r, err := parseScalar(blinding)
	if err != nil {
		return nil, err
	}

	ct, err := elgamal.Encrypt(pkPoint, amount, r)
	if err != nil {
		return nil, err
	}
	return ct.Bytes(), nil
}

// EncryptCanonicalZero returns the deterministic encryption of zero for
// (accountID, tokenID) under pk.
func EncryptCanonicalZero(pk []byte, accountID [20]byte, tokenID [24]byte) ([]byte, error) {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return nil, err
	}

	ct, err := elgamal.CanonicalEncryptedZero(pkPoint, accountID, tokenID)
	if err != nil {
		return nil, err
	}
	return ct.Bytes(), nil
}

// HomomorphicAdd returns the component-wise sum of two encoded ciphertexts.
func HomomorphicAdd(a, b []byte) ([]byte, error) {
	ctA, err := elgamal.ParseCiphertext(a)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	ctB, err := elgamal.ParseCiphertext(b)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	sum, err := elgamal.Add(ctA, ctB)
	if err != nil {
		return nil, err
	}
	return sum.Bytes(), nil
}

// HomomorphicSubtract returns the component-wise difference of two
// encoded ciphertexts.
func HomomorphicSubtract(a, b []byte) ([]byte, error) {
	ctA, err := elgamal.ParseCiphertext(a)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	ctB, err := elgamal.ParseCiphertext(b)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	diff, err := elgamal.Subtract(ctA, ctB)
	if err != nil {
		return nil, err
	}
	return diff.Bytes(), nil
}

// VerifySchnorrPoKSK verifies a proof of knowledge of the secret key
// behind pk.
func VerifySchnorrPoKSK(pk, proof, contextHash []byte) Status {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return Internal
	}
	p, err := sigma.ParsePoKSKProof(proof)
	if err != nil {
		return Internal
	}
	if len(contextHash) != sigma.ContextIDSize {
		return Internal
	}

	if sigma.VerifyPoKSK(p, pkPoint, contextHash) {
		return Ok
	}
	return BadProof
}

// VerifyEncryption checks that ciphertext encrypts amount under pk
// using blinding as the randomness, by direct recomputation rather than
// a Sigma proof.
func VerifyEncryption(amount uint64, blinding, pk, ciphertext []byte) Status {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return Internal
	}
	r, err := parseScalar(blinding)
	if err != nil {
		return Internal
	}
	ct, err := elgamal.ParseCiphertext(ciphertext)
	if err != nil {
		return Internal
	}

	if elgamal.VerifyEncryption(pkPoint, amount, r, ct) {
		return Ok
	}
	return BadProof
}

// EncryptedAmount pairs a recipient public key with an encoded
// ciphertext, the wire-level counterpart of sigma.EncryptedAmount.
type EncryptedAmount struct {
	PublicKey  []byte
	Ciphertext []byte
}

// VerifyMultiEquality verifies an EQ_PT_MULTI proof over a set of
// (pk, ciphertext) branches that claim to encrypt the same plaintext.
func VerifyMultiEquality(proof []byte, branches []EncryptedAmount, contextHash []byte) Status {
	if len(contextHash) != sigma.ContextIDSize {
		return Internal
	}

	parsed := make([]sigma.EncryptedAmount, len(branches))
	for i, b := range branches {
		pk, err := parsePoint(b.PublicKey)
		if err != nil {
			return Internal
		}
		ct, err := elgamal.ParseCiphertext(b.Ciphertext)
		if err != nil {
			return Internal
		}
		parsed[i] = sigma.EncryptedAmount{PublicKey: pk, Ciphertext: ct}
	}

	p, err := sigma.ParseMultiProof(proof, len(branches))
	if err != nil {
		return Internal
	}

	if sigma.VerifyMulti(p, parsed, contextHash) {
		return Ok
	}
	return BadProof
}

// VerifyCtPcmLink verifies that a ciphertext and a Pedersen commitment
// open to the same amount (the LINK proof), for a transfer amount.
func VerifyCtPcmLink(proof, ciphertext, pk, pcm, contextHash []byte) Status {
	return verifyLink(proof, ciphertext, pk, pcm, contextHash)
}

// VerifyCtPcmLinkBalance is VerifyCtPcmLink applied to a running
// encrypted balance commitment rather than a single transfer amount;
// the underlying LINK construction is identical, only the caller's
// interpretation of pcm differs.
func VerifyCtPcmLinkBalance(proof, ciphertext, pk, pcm, contextHash []byte) Status {
	return verifyLink(proof, ciphertext, pk, pcm, contextHash)
}

func verifyLink(proof, ciphertext, pk, pcm, contextHash []byte) Status {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return Internal
	}
	ct, err := elgamal.ParseCiphertext(ciphertext)
	if err != nil {
		return Internal
	}
	pcmPoint, err := parsePoint(pcm)
	if err != nil {
		return Internal
	}
	p, err := sigma.ParseLinkProof(proof)
	if err != nil {
		return Internal
	}
	if len(contextHash) != sigma.ContextIDSize {
		return Internal
	}

	if sigma.VerifyLink(p, pkPoint, ct, pcmPoint, contextHash) {
		return Ok
	}
	return BadProof
}

// VerifyClawbackEquality verifies that ciphertext encrypts the known
// clawback amount under pk (the EQ_PT proof).
func VerifyClawbackEquality(amount uint64, proof, pk, ciphertext, contextHash []byte) Status {
	pkPoint, err := parsePoint(pk)
	if err != nil {
		return Internal
	}
	ct, err := elgamal.ParseCiphertext(ciphertext)
	if err != nil {
		return Internal
	}
	p, err := sigma.ParseEqPTProof(proof)
	if err != nil {
		return Internal
	}
	if len(contextHash) != sigma.ContextIDSize {
		return Internal
	}

	if sigma.VerifyEqPT(p, pkPoint, amount, ct, contextHash) {
		return Ok
	}
	return BadProof
}

// VerifyRangeAgg verifies an aggregated Bulletproof range proof over
// commitments, using the caller-supplied recipient public key as the
// proof's blinding base.
func VerifyRangeAgg(proof []byte, hBase []byte, commitments [][]byte, contextHash []byte) Status {
	hBasePoint, err := parsePoint(hBase)
	if err != nil {
		return Internal
	}

	m := len(commitments)
	if m == 0 || m&(m-1) != 0 {
		return Internal
	}

	parsedCommitments := make([]*secp256k1.Point, m)
	for i, c := range commitments {
		p, err := parsePoint(c)
		if err != nil {
			return Internal
		}
		parsedCommitments[i] = p
	}

	p, err := bulletproof.ParseProof(proof, m)
	if err != nil {
		return Internal
	}
	if len(contextHash) != 32 {
		return Internal
	}

	if bulletproof.Verify(p, parsedCommitments, hBasePoint, contextHash) {
		return Ok
	}
	return BadProof
}

// RangeProofSizeBytes returns the fixed serialized size of an
// aggregated range proof for width m.
func RangeProofSizeBytes(m int) int {
	return bulletproof.ProofSize(m)
}

// DefaultRandomness is a randomness source (crypto/rand) offered to
// callers that drive the provers themselves; no function in this package
// reads it.
var DefaultRandomness io.Reader = rand.Reader
