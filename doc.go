// Package bandwidth selects the smoothing-bandwidth pair (hc, hp) of a
// non-parametric regression/density estimator by minimizing its
// cross-validation objective with an adaptive, two-stage grid search.
//
// # Features
//
// The package includes the following key features:
//
//   - Coarse-to-Fine Search: A uniform coarse grid over the caller's search
//     box locates a candidate optimum, then a fine grid one coarse cell wide
//     refines it
//   - Bulk Evaluation Contract: The objective is always requested for the
//     full cartesian product of candidates, letting estimators vectorize or
//     parallelize the batch internally
//   - Deterministic: Given a deterministic evaluator, identical inputs
//     produce bit-identical results; ties break toward the first cell in
//     row-major scan order
//   - Progress Monitoring: Optional per-pass updates via channels
//   - Parallel Convenience Evaluator: PointwiseEvaluator fans a per-point
//     objective out across a bounded worker pool
//   - Robust Error Handling: Invalid ranges and resolutions are rejected
//     before any evaluation; evaluator failures propagate unchanged
//
// # Usage
//
// The estimator side implements Evaluator (or uses PointwiseEvaluator), and
// the caller runs one search per dataset:
//
//	ev := &bandwidth.PointwiseEvaluator{
//	    Objective: func(hc, hp float64) (float64, error) {
//	        return estimator.CrossValidate(hc, hp)
//	    },
//	    Workers: runtime.NumCPU(),
//	}
//
//	result, err := bandwidth.Search(
//	    ctx,
//	    bandwidth.DefaultConfig(),
//	    ev,
//	    bandwidth.Range[float64]{Min: 0.1, Max: 2.0},
//	    bandwidth.Range[float64]{Min: 0.1, Max: 2.0},
//	)
//	if err != nil {
//	    return err
//	}
//
//	fmt.Printf("hc: %f hp: %f\n", result.HC, result.HP)
//
// # Search semantics
//
// Two details of the refinement are deliberate and callers should be aware
// of them:
//
//  1. The fine window is centered on the coarse optimum with half-width
//     (max - min) / n per axis and is not clamped to the caller's box, so
//     the final pair can sit slightly outside the requested ranges when the
//     coarse optimum lands on an edge.
//  2. The result is always the fine pass's minimum; the coarse score is
//     never compared against it. Under a noisy evaluator the fine pass can
//     therefore commit a worse score than the coarse pass found.
//
// # Thread Safety
//
// The search itself is single-threaded and synchronous: it issues exactly
// two blocking bulk evaluations and holds no state across invocations, so
// concurrent searches with separate configs are safe. Any parallelism lives
// inside the evaluator, behind the bulk contract.
package bandwidth
