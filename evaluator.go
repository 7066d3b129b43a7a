package bandwidth

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//////
// Evaluator contract.
//////

// Evaluator computes the cross-validation objective for a cartesian product
// of candidate bandwidths. This is the single collaborator of the adaptive
// search: the optimizer never evaluates one point at a time, so an
// implementation is free to vectorize or parallelize the whole batch
// internally.
//
// Contract:
//   - Evaluate returns a dense len(hcCandidates) x len(hpCandidates) matrix
//     where entry (i, j) is the objective for the pair
//     (hcCandidates[i], hpCandidates[j]).
//   - Every cell must be populated on a nil-error return; there is no
//     partial-result mode. Evaluation order within the batch is unspecified.
//   - Any internal failure (singular covariance, non-convergence, ...) must
//     surface as an error. The optimizer does not retry or suppress it.
//
// Thread safety:
//   - Evaluate must be safe for the optimizer to call twice in sequence on
//     the same receiver; it owns the returned matrix and never mutates the
//     candidate slices.
type Evaluator interface {
	Evaluate(ctx context.Context, hcCandidates, hpCandidates []float64) (*mat.Dense, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
//
// Usage example:
//
//	ev := bandwidth.EvaluatorFunc(func(ctx context.Context, hc, hp []float64) (*mat.Dense, error) {
//	    out := mat.NewDense(len(hc), len(hp), nil)
//	    // ... fill out ...
//	    return out, nil
//	})
type EvaluatorFunc func(ctx context.Context, hcCandidates, hpCandidates []float64) (*mat.Dense, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, hcCandidates, hpCandidates []float64) (*mat.Dense, error) {
	return f(ctx, hcCandidates, hpCandidates)
}

// PointwiseEvaluator lifts a per-point objective function into the bulk
// Evaluator contract, optionally fanning the cartesian product out across a
// bounded pool of workers. One worker handles one row (one hc candidate
// against every hp candidate), which keeps writes to the output matrix
// disjoint.
//
// Fields:
// - Objective: The per-point objective; must be safe for concurrent calls
//   when Workers > 1
// - Workers: Upper bound on concurrent rows; values below 2 evaluate
//   sequentially
//
// Usage example:
//
//	ev := &bandwidth.PointwiseEvaluator{
//	    Objective: func(hc, hp float64) (float64, error) {
//	        return crossValidate(data, hc, hp)
//	    },
//	    Workers: runtime.NumCPU(),
//	}
//
// Important notes:
//   - The first error aborts the batch and is returned as-is; the partially
//     filled matrix is discarded.
//   - Context cancellation is honored between rows.
type PointwiseEvaluator struct {
	// Objective computes the cross-validation score for one bandwidth pair.
	Objective func(hc, hp float64) (float64, error)

	// Workers bounds the number of rows evaluated concurrently.
	Workers int
}

// Evaluate computes the full objective matrix for the cartesian product of
// the candidate grids.
func (e *PointwiseEvaluator) Evaluate(ctx context.Context, hcCandidates, hpCandidates []float64) (*mat.Dense, error) {
	out := mat.NewDense(len(hcCandidates), len(hpCandidates), nil)

	if e.Workers < 2 {
		for i, hc := range hcCandidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if err := e.evaluateRow(out, i, hc, hpCandidates); err != nil {
				return nil, err
			}
		}

		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)

	for i, hc := range hcCandidates {
		i, hc := i, hc

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return e.evaluateRow(out, i, hc, hpCandidates)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// evaluateRow fills row i of the output matrix: the objective of hc paired
// with every hp candidate.
func (e *PointwiseEvaluator) evaluateRow(out *mat.Dense, i int, hc float64, hpCandidates []float64) error {
	for j, hp := range hpCandidates {
		v, err := e.Objective(hc, hp)
		if err != nil {
			return err
		}

		out.Set(i, j, v)
	}

	return nil
}
