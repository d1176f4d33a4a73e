package main

import "fmt"

const (
	gridSize  = 7
	gridCells = gridSize * gridSize

	// referenceIndex is the cell that sounds the base frequency itself.
	// Cells above it walk up the harmonic series, cells below walk down
	// the subharmonic series.
	referenceIndex = 21

	baseFreq   = 440.0
	sampleRate = 44100
	nyquist    = sampleRate / 2
)

// cellIndex converts a (column, row) pair to a linear cell index. Rows are
// counted from the top of the grid, so index 0 is the bottom-left cell and
// index gridCells-1 is the top-right cell.
func cellIndex(col, row int) int {
	return (gridSize-1-row)*gridSize + col
}

// cellForIndex is the inverse of cellIndex.
func cellForIndex(index int) (col, row int) {
	col = index % gridSize
	row = gridSize - 1 - index/gridSize
	return col, row
}

// ratioForIndex returns the frequency multiplier for a cell. The reference
// cell is exactly 1; cells above it are integer harmonics, cells below are
// unit-numerator subharmonics. Strictly increasing in index.
func ratioForIndex(index, ref int) float64 {
	switch {
	case index == ref:
		return 1
	case index > ref:
		return float64(index - ref + 1)
	default:
		// index < ref, so the divisor is always >= 2.
		return 1 / float64(ref-index+1)
	}
}

// ratioLabel renders a cell's ratio as a short caption like "28" or "1/22".
func ratioLabel(index int) string {
	switch {
	case index == referenceIndex:
		return "1"
	case index > referenceIndex:
		return fmt.Sprintf("%d", index-referenceIndex+1)
	default:
		return fmt.Sprintf("1/%d", referenceIndex-index+1)
	}
}

func frequencyForIndex(index int) float64 {
	return ratioForIndex(index, referenceIndex) * baseFreq
}

// playable reports whether a frequency can be rendered at the current
// sample rate.
func playable(freq float64) bool {
	return freq > 0 && freq < nyquist
}
