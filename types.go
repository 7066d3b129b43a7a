package bandwidth

import (
	"errors"

	"golang.org/x/exp/constraints"
)

//////
// Errors.
//////

var (
	// ErrInvalidRange is returned when an axis range is inverted or
	// degenerate (Min >= Max). Validation happens before any evaluator
	// call is issued.
	ErrInvalidRange = errors.New("invalid range: min must be less than max")

	// ErrInvalidResolution is returned when the grid resolution is below 2.
	// A single-point grid is undefined: the grid step is computed as
	// (max - min) / (count - 1).
	ErrInvalidResolution = errors.New("invalid grid resolution: must be at least 2")

	// ErrNilEvaluator is returned when Search is called without an evaluator.
	ErrNilEvaluator = errors.New("nil evaluator")

	// ErrBadMatrix is returned when the evaluator produces an objective
	// matrix whose dimensions do not match the requested candidate grids.
	ErrBadMatrix = errors.New("objective matrix dimensions do not match candidate grids")
)

//////
// Types.
//////

// Range defines the valid search interval for one bandwidth parameter.
// Each axis of the search must have a minimum and maximum value to define
// its search space.
//
// Type Parameter:
//   - T: The floating-point type for this range (float32 or float64)
//
// Fields:
// - Min: The minimum (inclusive) value for this parameter
// - Max: The maximum (inclusive) value for this parameter
//
// Usage:
//
//	// Control bandwidth from 0.1 to 2.0
//	hcRange := bandwidth.Range[float64]{
//	    Min: 0.1,
//	    Max: 2.0,
//	}
//
// Validation:
// - Min must be strictly less than Max
// - The range is inclusive of both Min and Max values
//
// Note:
//   - The fine pass of the search is windowed around the coarse optimum and
//     is NOT clamped to this range; the final answer may sit slightly outside
//     it when the optimum lies at the edge of the coarse grid.
type Range[T constraints.Float] struct {
	// Min defines the minimum allowed value (inclusive) for this parameter.
	Min T

	// Max defines the maximum allowed value (inclusive) for this parameter.
	Max T
}

// Validate checks that the range is well-formed (Min strictly less than Max).
//
// Returns:
// - error: nil if valid, ErrInvalidRange otherwise
func (r Range[T]) Validate() error {
	if r.Min >= r.Max {
		return ErrInvalidRange
	}

	return nil
}

// Result holds the outcome of an adaptive bandwidth search.
//
// Fields:
// - HC: The optimal control bandwidth
// - HP: The optimal predictor bandwidth
// - Objective: The cross-validation objective at (HC, HP)
//
// Important notes:
//   - The pair is always taken from the fine pass. The coarse pass only
//     locates the fine window; its score is never compared against the fine
//     pass's score. Under a deterministic evaluator the fine pass is at
//     least as good at the window center; under a noisy evaluator it may
//     come out worse, and is still returned.
type Result struct {
	// HC is the selected control bandwidth.
	HC float64

	// HP is the selected predictor bandwidth.
	HP float64

	// Objective is the evaluator's score at (HC, HP) during the fine pass.
	Objective float64
}

// ProgressUpdate represents the state of the search after one pass.
type ProgressUpdate struct {
	// Phase is the pass that just completed: PhaseCoarse or PhaseFine.
	Phase string

	// HCWindow is the hc interval the pass searched.
	HCWindow Range[float64]

	// HPWindow is the hp interval the pass searched.
	HPWindow Range[float64]

	// BestHC is the best control bandwidth found in this pass.
	BestHC float64

	// BestHP is the best predictor bandwidth found in this pass.
	BestHP float64

	// BestObjective is the objective value at (BestHC, BestHP).
	BestObjective float64
}

// Phase names reported through SearchConfig.ProgressChan.
const (
	PhaseCoarse = "Coarse"
	PhaseFine   = "Fine"
)

// SearchConfig holds all configuration parameters for the adaptive search.
//
// Fields explanation:
// - GridResolution: Number of candidates per axis, used by both passes
// - ProgressChan: Optional channel for per-pass progress updates
//
// Usage example:
//
//	config := bandwidth.DefaultConfig()
//	config.GridResolution = 48
//
// Performance impact notes:
//   - Each pass issues exactly one bulk evaluation of GridResolution squared
//     candidate pairs, so doubling the resolution quadruples evaluator work.
type SearchConfig struct {
	// GridResolution determines how many candidate values each axis gets in
	// each pass; the evaluator sees an n x n cartesian product per pass.
	// Zero means DefaultGridResolution. Values below 2 are rejected.
	GridResolution int

	// ProgressChan is used to send progress updates after each pass.
	// If nil, no updates will be sent. Sends never block: updates are
	// dropped when the channel is full.
	ProgressChan chan<- ProgressUpdate
}
