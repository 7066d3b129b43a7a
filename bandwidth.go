package bandwidth

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//////
// Exported functionalities.
//////

// DefaultGridResolution is the per-axis candidate count used when
// SearchConfig.GridResolution is zero.
const DefaultGridResolution = 32

// DefaultConfig returns a default configuration.
func DefaultConfig() SearchConfig {
	return SearchConfig{
		GridResolution: DefaultGridResolution,
		ProgressChan:   nil, // Default to no progress updates.
	}
}

// Search selects the bandwidth pair (hc, hp) that minimizes the evaluator's
// cross-validation objective, using a coarse-then-fine grid search over the
// two axis ranges.
//
// Parameters:
// - ctx: Passed through to the evaluator's bulk calls
// - config: SearchConfig controlling the grid resolution and progress updates
// - evaluator: The objective evaluator (see Evaluator for the contract)
// - hcRange: Search interval for the control bandwidth; Min < Max
// - hpRange: Search interval for the predictor bandwidth; Min < Max
//
// Returns:
// - Result: The optimal (HC, HP) pair and its fine-pass objective
// - error: Validation failure, or the evaluator's error propagated unchanged
//
// Usage example:
//
//	result, err := bandwidth.Search(
//	    ctx,
//	    bandwidth.DefaultConfig(),
//	    estimator,
//	    bandwidth.Range[float64]{Min: 0.1, Max: 2.0},
//	    bandwidth.Range[float64]{Min: 0.1, Max: 2.0},
//	)
//
// How it works:
//  1. Builds an n x n coarse grid spanning both ranges and requests the full
//     objective matrix in one bulk call.
//  2. Scans the matrix in row-major order for its minimum, breaking ties in
//     favor of the first occurrence (lowest hc index, then lowest hp index).
//  3. Centers a fine window on the coarse optimum, one coarse cell wide per
//     axis: [best - (max-min)/n, best + (max-min)/n].
//  4. Repeats the bulk evaluation and scan over an n x n grid of the fine
//     window and returns that pass's minimum.
//
// Important notes:
//   - Exactly two evaluator calls are issued, each for n*n candidate pairs.
//     The evaluator is expected to batch or vectorize internally; the search
//     never evaluates one point at a time.
//   - The fine window is NOT clamped to the caller's ranges. When the coarse
//     optimum sits on the edge of the search box, the window extends past it
//     by design, letting the search escape a slightly too-narrow initial box.
//   - The result always comes from the fine pass. The coarse score only
//     positions the window and is never compared against the fine score.
//   - Deterministic: with a deterministic evaluator, identical inputs yield
//     bit-identical results. No retries, no partial results: the first
//     evaluator error aborts the search.
func Search(
	ctx context.Context,
	config SearchConfig,
	evaluator Evaluator,
	hcRange, hpRange Range[float64],
) (Result, error) {
	if evaluator == nil {
		return Result{}, ErrNilEvaluator
	}

	n := config.GridResolution
	if n == 0 {
		n = DefaultGridResolution
	}

	if n < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidResolution, n)
	}

	if err := hcRange.Validate(); err != nil {
		return Result{}, fmt.Errorf("hc [%v, %v]: %w", hcRange.Min, hcRange.Max, err)
	}

	if err := hpRange.Validate(); err != nil {
		return Result{}, fmt.Errorf("hp [%v, %v]: %w", hpRange.Min, hpRange.Max, err)
	}

	// runPass evaluates one n x n window and extracts its row-major minimum.
	// The objective matrix is scoped to the pass: it is released as soon as
	// the minimum has been extracted.
	runPass := func(phase string, hcWindow, hpWindow Range[float64]) (float64, float64, float64, error) {
		hcGrid, err := Linspace(hcWindow.Min, hcWindow.Max, n)
		if err != nil {
			return 0, 0, 0, err
		}

		hpGrid, err := Linspace(hpWindow.Min, hpWindow.Max, n)
		if err != nil {
			return 0, 0, 0, err
		}

		objective, err := evaluator.Evaluate(ctx, hcGrid, hpGrid)
		if err != nil {
			return 0, 0, 0, err
		}

		if err := checkDims(objective, n); err != nil {
			return 0, 0, 0, err
		}

		i, j, bestObj := argmin(objective)

		bestHC := hcGrid[i]
		bestHP := hpGrid[j]

		sendProgress(config.ProgressChan, ProgressUpdate{
			Phase:         phase,
			HCWindow:      hcWindow,
			HPWindow:      hpWindow,
			BestHC:        bestHC,
			BestHP:        bestHP,
			BestObjective: bestObj,
		})

		return bestHC, bestHP, bestObj, nil
	}

	// Coarse pass over the full caller-supplied box.
	coarseHC, coarseHP, _, err := runPass(PhaseCoarse, hcRange, hpRange)
	if err != nil {
		return Result{}, err
	}

	// Fine window: one coarse cell on each side of the coarse optimum,
	// deliberately unclamped to the caller's box.
	widthHC := (hcRange.Max - hcRange.Min) / float64(n)
	widthHP := (hpRange.Max - hpRange.Min) / float64(n)

	fineHC, fineHP, fineObj, err := runPass(
		PhaseFine,
		Range[float64]{Min: coarseHC - widthHC, Max: coarseHC + widthHC},
		Range[float64]{Min: coarseHP - widthHP, Max: coarseHP + widthHP},
	)
	if err != nil {
		return Result{}, err
	}

	return Result{HC: fineHC, HP: fineHP, Objective: fineObj}, nil
}

//////
// Helper functions.
//////

// checkDims verifies the evaluator honored the bulk contract: a dense n x n
// matrix with every requested cell populated.
func checkDims(m *mat.Dense, n int) error {
	rows, cols := m.Dims()
	if rows != n || cols != n {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrBadMatrix, rows, cols, n, n)
	}

	return nil
}

// sendProgress delivers a progress update without ever blocking the search.
func sendProgress(ch chan<- ProgressUpdate, update ProgressUpdate) {
	if ch == nil {
		return
	}

	select {
	case ch <- update:
	default:
		// Skip update if channel is full.
	}
}
