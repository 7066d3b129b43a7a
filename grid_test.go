package bandwidth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLinspaceEndpointsAndMonotonicity(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		count      int
	}{
		{"two points", 0.1, 2.0, 2},
		{"default resolution", 0.1, 2.0, 32},
		{"negative window", -1.5, -0.25, 9},
		{"window straddling zero", -0.3, 0.7, 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := Linspace(tc.start, tc.end, tc.count)
			require.NoError(t, err)
			require.Len(t, grid, tc.count)

			// Endpoints are exact, not merely close.
			assert.Equal(t, tc.start, grid[0])
			assert.Equal(t, tc.end, grid[len(grid)-1])

			for i := 1; i < len(grid); i++ {
				assert.Greater(t, grid[i], grid[i-1])
			}
		})
	}
}

func TestLinspaceSpacing(t *testing.T) {
	grid, err := Linspace(0.1, 2.0, 32)
	require.NoError(t, err)

	step := (2.0 - 0.1) / 31.0

	for i, v := range grid {
		assert.InDelta(t, 0.1+float64(i)*step, v, 1e-12)
	}
}

func TestLinspaceRejectsDegenerateCount(t *testing.T) {
	for _, count := range []int{1, 0, -4} {
		_, err := Linspace(0.1, 2.0, count)

		assert.ErrorIs(t, err, ErrInvalidResolution)
	}
}

func TestArgminRowMajorTieBreak(t *testing.T) {
	// Two tied minima; the scan must report the first in row-major order.
	m := mat.NewDense(3, 3, []float64{
		9, 4, 9,
		4, 9, 9,
		9, 9, 9,
	})

	i, j, v := argmin(m)

	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, 4.0, v)
}

func TestArgminSkipsNaN(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		math.NaN(), 5,
		math.NaN(), math.NaN(),
	})

	i, j, v := argmin(m)

	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, 5.0, v)
}
