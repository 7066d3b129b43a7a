package bandwidth

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//////
// Grid helpers.
//////

// Linspace generates count evenly spaced values spanning [start, end],
// inclusive of both endpoints. The step between consecutive values is
// (end - start) / (count - 1).
//
// Parameters:
// - start: First value of the grid
// - end: Last value of the grid
// - count: Number of values to generate; must be at least 2
//
// Returns:
// - []float64: The generated grid, strictly increasing when start < end
// - error: ErrInvalidResolution when count < 2
//
// Important notes:
// - Pure and deterministic: identical inputs always produce identical output
// - The first element is exactly start and the last is exactly end.
func Linspace(start, end float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, ErrInvalidResolution
	}

	grid := floats.Span(make([]float64, count), start, end)

	// Pin the endpoints: the step arithmetic can drift the last element by
	// an ulp, and the contract is exact inclusion of both bounds.
	grid[0] = start
	grid[count-1] = end

	return grid, nil
}

// argmin scans a dense objective matrix in row-major order and returns the
// indices and value of its minimum. Ties go to the first occurrence in scan
// order: lowest row index, then lowest column index.
//
// NaN cells never win: every comparison against NaN is false, so they are
// skipped the same way the scan skips any non-improving cell.
func argmin(m *mat.Dense) (row, col int, value float64) {
	rows, cols := m.Dims()

	value = math.Inf(1)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v < value {
				value = v
				row = i
				col = j
			}
		}
	}

	return row, col, value
}
