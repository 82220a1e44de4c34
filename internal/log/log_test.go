package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSetsLevel(t *testing.T) {
	Init(LevelDebug)
	require.Equal(t, "debug", Logger().GetLevel().String())

	Init(LevelWarn)
	require.Equal(t, "warn", Logger().GetLevel().String())
}

func TestInitInvalidLevelPanics(t *testing.T) {
	require.Panics(t, func() { Init("bogus") })
}
