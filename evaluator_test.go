package bandwidth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPointwiseEvaluatorFillsCartesianProduct(t *testing.T) {
	ev := &PointwiseEvaluator{Objective: func(hc, hp float64) (float64, error) {
		return hc*10 + hp, nil
	}}

	hc := []float64{1, 2, 3}
	hp := []float64{0.1, 0.2}

	out, err := ev.Evaluate(context.Background(), hc, hp)
	require.NoError(t, err)

	rows, cols := out.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 2, cols)

	for i, c := range hc {
		for j, p := range hp {
			assert.Equal(t, c*10+p, out.At(i, j))
		}
	}
}

func TestPointwiseEvaluatorParallelMatchesSequential(t *testing.T) {
	objective := func(hc, hp float64) (float64, error) {
		return (hc-1.0)*(hc-1.0) + (hp-0.5)*(hp-0.5), nil
	}

	hc, err := Linspace(0.1, 2.0, 32)
	require.NoError(t, err)

	hp, err := Linspace(0.1, 2.0, 32)
	require.NoError(t, err)

	sequential := &PointwiseEvaluator{Objective: objective}
	parallel := &PointwiseEvaluator{Objective: objective, Workers: 8}

	want, err := sequential.Evaluate(context.Background(), hc, hp)
	require.NoError(t, err)

	got, err := parallel.Evaluate(context.Background(), hc, hp)
	require.NoError(t, err)

	// Per-cell arithmetic is identical on both paths, so the matrices must
	// match exactly.
	assert.True(t, mat.Equal(want, got))
}

func TestPointwiseEvaluatorSurfacesObjectiveError(t *testing.T) {
	errNonConvergence := errors.New("estimator did not converge")

	objective := func(hc, hp float64) (float64, error) {
		if hc > 1.5 {
			return 0, errNonConvergence
		}

		return hc + hp, nil
	}

	hc := []float64{1.0, 1.6}
	hp := []float64{0.5}

	for _, workers := range []int{0, 4} {
		ev := &PointwiseEvaluator{Objective: objective, Workers: workers}

		out, err := ev.Evaluate(context.Background(), hc, hp)

		assert.ErrorIs(t, err, errNonConvergence)
		assert.Nil(t, out)
	}
}

func TestPointwiseEvaluatorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	objective := func(hc, hp float64) (float64, error) {
		return hc + hp, nil
	}

	for _, workers := range []int{0, 4} {
		ev := &PointwiseEvaluator{Objective: objective, Workers: workers}

		_, err := ev.Evaluate(ctx, []float64{1, 2}, []float64{3, 4})

		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestEvaluatorFuncAdapter(t *testing.T) {
	called := false

	ev := EvaluatorFunc(func(ctx context.Context, hc, hp []float64) (*mat.Dense, error) {
		called = true

		return mat.NewDense(len(hc), len(hp), nil), nil
	})

	out, err := ev.Evaluate(context.Background(), []float64{1}, []float64{2})

	require.NoError(t, err)
	assert.True(t, called)

	rows, cols := out.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)
}
