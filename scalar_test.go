package secp256k1

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBytesFromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestScalarSanity exercises the "2*3 = 6 mod q" check called out in the
// spec as a guard against limb-layout mistakes, plus the basic field
// axioms the rest of the module leans on.
func TestScalarSanity(t *testing.T) {
	two := NewScalar().Add(NewScalar().One(), NewScalar().One())
	three := NewScalar().Add(two, NewScalar().One())
	six := NewScalar().Multiply(two, three)

	want := NewScalar()
	for i := 0; i < 6; i++ {
		want.Add(want, NewScalar().One())
	}
	require.EqualValues(t, 1, six.Equal(want))
}

func TestScalarReduction(t *testing.T) {
	// N = fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141
	nBytes := mustBytesFromHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	nPlus1 := mustBytesFromHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142")

	s, didReduce := NewScalar().SetBytes((*[ScalarSize]byte)(nBytes))
	require.EqualValues(t, 1, didReduce)
	require.EqualValues(t, 1, s.IsZero())

	s2, didReduce2 := NewScalar().SetBytes((*[ScalarSize]byte)(nPlus1))
	require.EqualValues(t, 1, didReduce2)
	require.EqualValues(t, 1, s2.Equal(NewScalar().One()))

	_, err := NewScalar().SetCanonicalBytes((*[ScalarSize]byte)(nBytes))
	require.ErrorIs(t, err, ErrInvalidScalar)
}

func TestScalarIsValidSecret(t *testing.T) {
	require.EqualValues(t, 0, NewScalar().Zero().IsValidSecret())
	require.EqualValues(t, 1, NewScalar().One().IsValidSecret())

	nBytes := mustBytesFromHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	s, _ := NewScalar().SetBytes((*[ScalarSize]byte)(nBytes))
	require.EqualValues(t, 0, s.IsValidSecret())
}

func TestScalarInverse(t *testing.T) {
	a, err := SampleScalar(rand.Reader)
	require.NoError(t, err)

	inv := NewScalar().Inverse(a)
	product := NewScalar().Multiply(a, inv)
	require.EqualValues(t, 1, product.Equal(NewScalar().One()))
}

func TestScalarRoundTrip(t *testing.T) {
	a, err := SampleScalar(rand.Reader)
	require.NoError(t, err)

	var buf [ScalarSize]byte
	copy(buf[:], a.Bytes())

	b, err := NewScalarFromCanonicalBytes(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 1, a.Equal(b))
}

func TestSampleScalarRejectsBrokenSource(t *testing.T) {
	_, err := SampleScalar(&zeroReader{})
	require.Error(t, err)
}

// zeroReader always yields the all-zero scalar, which SampleScalar must
// reject and eventually give up on.
type zeroReader struct{}

func (*zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
