package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceForKnownSurfaces(t *testing.T) {
	for _, name := range []string{"paraboloid", "valley", "plane"} {
		objective, err := surfaceFor(name)

		require.NoError(t, err, name)
		require.NotNil(t, objective, name)

		v, err := objective(1.0, 0.5)
		require.NoError(t, err, name)
		assert.False(t, v != v, "objective must not be NaN")
	}
}

func TestSurfaceForUnknownSurface(t *testing.T) {
	_, err := surfaceFor("saddle")

	assert.Error(t, err)
}

func TestParaboloidMinimum(t *testing.T) {
	objective, err := surfaceFor("paraboloid")
	require.NoError(t, err)

	atMinimum, err := objective(1.0, 0.5)
	require.NoError(t, err)

	offMinimum, err := objective(1.3, 0.9)
	require.NoError(t, err)

	assert.Zero(t, atMinimum)
	assert.Greater(t, offMinimum, atMinimum)
}
