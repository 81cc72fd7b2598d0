// Package onset derives a one-dimensional novelty curve from the
// percussive spectrogram via half-wave-rectified spectral flux.
package onset

import "beatmark/dsp"

// Curve is the onset-strength signal: one non-negative value per analysis
// frame, normalized to a unit ceiling.
type Curve struct {
	Values     []float64
	HopSize    int
	SampleRate int
}

func (c Curve) NumFrames() int {
	return len(c.Values)
}

// FrameSample returns the sample index a curve frame is centered on.
func (c Curve) FrameSample(i int) int {
	return i * c.HopSize
}

func (c Curve) FrameTime(i int) float64 {
	return float64(i*c.HopSize) / float64(c.SampleRate)
}

// Strength computes the onset curve of a spectrogram: the per-frame sum of
// positive magnitude increases, smoothed with a two-tap trailing average,
// then normalized so the strongest onset is 1. The trailing average keeps
// a transient's peak on the frame its window weight is centered on instead
// of the rising edge one frame earlier. A curve of all zeros (silence) is
// returned as-is.
func Strength(spec dsp.Spectrogram) Curve {
	mag := spec.Magnitudes()
	n := len(mag)
	flux := make([]float64, n)
	for t := 1; t < n; t++ {
		var sum float64
		for b := range mag[t] {
			if d := mag[t][b] - mag[t-1][b]; d > 0 {
				sum += d
			}
		}
		flux[t] = sum
	}

	smoothed := make([]float64, n)
	for t := range flux {
		if t == 0 {
			smoothed[t] = flux[t] / 2
		} else {
			smoothed[t] = (flux[t] + flux[t-1]) / 2
		}
	}

	var max float64
	for _, v := range smoothed {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for t := range smoothed {
			smoothed[t] /= max
		}
	}

	return Curve{Values: smoothed, HopSize: spec.HopSize, SampleRate: spec.SampleRate}
}
