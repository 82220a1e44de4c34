package nums

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashToPointDeterministic(t *testing.T) {
	a := HashToPoint(LabelG, 3)
	b := HashToPoint(LabelG, 3)
	require.True(t, a.Equal(b) == 1)
}

func TestHashToPointDistinctIndices(t *testing.T) {
	a := HashToPoint(LabelG, 0)
	b := HashToPoint(LabelG, 1)
	require.False(t, a.Equal(b) == 1)
}

func TestHashToPointDistinctLabels(t *testing.T) {
	g := HashToPoint(LabelG, 0)
	h := HashToPoint(LabelH, 0)
	u := HashToPoint(LabelU, 0)
	require.False(t, g.Equal(h) == 1)
	require.False(t, g.Equal(u) == 1)
	require.False(t, h.Equal(u) == 1)
}

func TestHGeneratorAndUGenerator(t *testing.T) {
	require.True(t, HGenerator().Equal(HashToPoint(LabelH, 0)) == 1)
	require.True(t, UGenerator().Equal(HashToPoint(LabelU, 0)) == 1)
}

func TestGeneratorVectorMatchesHashToPoint(t *testing.T) {
	vec := GeneratorVector(LabelG, 5)
	require.Len(t, vec, 5)
	for i, p := range vec {
		require.True(t, p.Equal(HashToPoint(LabelG, uint32(i))) == 1)
	}
}

func TestCachedGeneratorVectorMatchesUncached(t *testing.T) {
	cached := CachedGeneratorVector(LabelH, 8)
	uncached := GeneratorVector(LabelH, 8)
	require.Len(t, cached, len(uncached))
	for i := range cached {
		require.True(t, cached[i].Equal(uncached[i]) == 1)
	}

	again := CachedGeneratorVector(LabelH, 8)
	require.Same(t, &cached[0], &again[0])
}
