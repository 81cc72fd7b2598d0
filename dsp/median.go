package dsp

import "sort"

// Axis selects the direction a median filter slides over a [frame][bin]
// magnitude matrix.
type Axis int

const (
	AxisTime Axis = iota
	AxisFreq
)

// MedianFilter applies a running median of the given kernel size along one
// axis of a [frame][bin] matrix. Windows are truncated at the edges; for
// even-length windows the lower median is taken. The input is not modified.
func MedianFilter(m [][]float64, axis Axis, kernel int) [][]float64 {
	if kernel < 1 {
		kernel = 1
	}
	numFrames := len(m)
	if numFrames == 0 {
		return nil
	}
	numBins := len(m[0])
	half := kernel / 2

	out := make([][]float64, numFrames)
	scratch := make([]float64, 0, kernel)
	for t := 0; t < numFrames; t++ {
		row := make([]float64, numBins)
		for b := 0; b < numBins; b++ {
			scratch = scratch[:0]
			if axis == AxisTime {
				for k := t - half; k <= t+half; k++ {
					if k >= 0 && k < numFrames {
						scratch = append(scratch, m[k][b])
					}
				}
			} else {
				for k := b - half; k <= b+half; k++ {
					if k >= 0 && k < numBins {
						scratch = append(scratch, m[t][k])
					}
				}
			}
			sort.Float64s(scratch)
			row[b] = scratch[(len(scratch)-1)/2]
		}
		out[t] = row
	}
	return out
}
