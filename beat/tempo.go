// Package beat estimates a global tempo from an onset curve and tracks
// beat positions consistent with it.
package beat

import (
	"math"

	"beatmark/constants"
	"beatmark/onset"
)

// TempoEstimate is the dominant beat rate plus how trustworthy the
// periodicity evidence behind it is. Fallback is set when no usable
// periodicity was found and the default tempo was substituted.
type TempoEstimate struct {
	BPM        float64
	Confidence float64
	Fallback   bool
}

// minConfidence is the normalized autocorrelation a periodicity peak must
// reach before it is trusted over the fallback tempo.
const minConfidence = 0.1

func lagToBPM(lag int, hop, sr int) float64 {
	return 60 * float64(sr) / (float64(hop) * float64(lag))
}

func bpmToLag(bpm float64, hop, sr int) float64 {
	return 60 * float64(sr) / (float64(hop) * bpm)
}

// autocorrelate computes the autocorrelation of x, mean-removed, for lags
// 0..maxLag inclusive.
func autocorrelate(x []float64, maxLag int) []float64 {
	n := len(x)
	var mean float64
	for _, v := range x {
		mean += v
	}
	if n > 0 {
		mean /= float64(n)
	}

	ac := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for t := 0; t+lag < n; t++ {
			sum += (x[t] - mean) * (x[t+lag] - mean)
		}
		ac[lag] = sum
	}
	return ac
}

func inBiasRange(bpm float64) bool {
	return bpm >= constants.BiasLowTempo && bpm <= constants.BiasHighTempo
}

// EstimateTempo picks the dominant periodicity of the onset curve within
// the plausible tempo range (50-220 BPM). Octave ambiguity is resolved by
// biasing toward 80-160 BPM: when the strongest peak maps outside that
// range, its double or half lag is adopted if it lies in range and keeps
// at least 70% of the peak score. Degenerate curves (silence, no
// periodicity) yield the fallback tempo flagged low-confidence, never an
// error.
func EstimateTempo(c onset.Curve) TempoEstimate {
	fallback := TempoEstimate{BPM: constants.FallbackTempo, Fallback: true}

	n := c.NumFrames()
	if n == 0 {
		return fallback
	}

	minLag := int(math.Ceil(bpmToLag(constants.MaxTempo, c.HopSize, c.SampleRate)))
	maxLag := int(math.Floor(bpmToLag(constants.MinTempo, c.HopSize, c.SampleRate)))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < minLag {
		return fallback
	}

	ac := autocorrelate(c.Values, maxLag)
	if ac[0] <= 1e-12 {
		return fallback
	}

	bestLag := minLag
	for lag := minLag + 1; lag <= maxLag; lag++ {
		if ac[lag] > ac[bestLag] {
			bestLag = lag
		}
	}
	score := ac[bestLag]
	confidence := score / ac[0]
	if score <= 0 || confidence < minConfidence {
		fallback.Confidence = math.Max(confidence, 0)
		return fallback
	}

	if bpm := lagToBPM(bestLag, c.HopSize, c.SampleRate); !inBiasRange(bpm) {
		for _, cand := range []int{bestLag * 2, bestLag / 2} {
			if cand < minLag || cand > maxLag {
				continue
			}
			if inBiasRange(lagToBPM(cand, c.HopSize, c.SampleRate)) && ac[cand] >= 0.7*score {
				bestLag = cand
				break
			}
		}
	}

	return TempoEstimate{
		BPM:        lagToBPM(bestLag, c.HopSize, c.SampleRate),
		Confidence: confidence,
	}
}
