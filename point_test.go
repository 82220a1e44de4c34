package secp256k1

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointGeneratorRoundTrip(t *testing.T) {
	g := NewGeneratorPoint()
	enc := g.CompressedBytes()
	require.Len(t, enc, CompressedPointSize)

	g2, err := Parse33(enc)
	require.NoError(t, err)
	require.EqualValues(t, 1, g.Equal(g2))
}

func TestPointScalarMultAndCombine(t *testing.T) {
	two := NewScalar().Add(NewScalar().One(), NewScalar().One())

	g := NewGeneratorPoint()
	twoG, err := Create(two)
	require.NoError(t, err)

	gPlusG, err := Combine(g, g)
	require.NoError(t, err)
	require.EqualValues(t, 1, twoG.Equal(gPlusG))
}

func TestPointNegateAndSubtractIsIdentity(t *testing.T) {
	g := NewGeneratorPoint()
	diff := NewPointFrom(g).Subtract(g, g)
	require.EqualValues(t, 1, diff.IsIdentity())
}

func TestPointRejectsZeroScalar(t *testing.T) {
	_, err := Create(NewScalar().Zero())
	require.ErrorIs(t, err, ErrInvalidScalarForPoint)
}

func TestPointRejectsMalformedEncoding(t *testing.T) {
	_, err := Parse33(make([]byte, CompressedPointSize))
	require.ErrorIs(t, err, ErrMalformedPoint)

	_, err = Parse33(make([]byte, 10))
	require.ErrorIs(t, err, ErrMalformedPoint)
}

func TestPointCombineRejectsEmpty(t *testing.T) {
	_, err := Combine()
	require.ErrorIs(t, err, ErrIdentity)
}

func TestPointScalarMultIsDistributive(t *testing.T) {
	a, err := SampleScalar(rand.Reader)
	require.NoError(t, err)
	b, err := SampleScalar(rand.Reader)
	require.NoError(t, err)

	g := NewGeneratorPoint()
	aG, err := newPoint().ScalarMult(a, g)
	require.NoError(t, err)
	bG, err := newPoint().ScalarMult(b, g)
	require.NoError(t, err)

	sum := NewScalar().Add(a, b)
	sumG, err := newPoint().ScalarMult(sum, g)
	require.NoError(t, err)

	combined, err := Combine(aG, bG)
	require.NoError(t, err)
	require.EqualValues(t, 1, sumG.Equal(combined))
}
