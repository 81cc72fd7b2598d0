package dsp

import "math"

// Separation holds the masked harmonic and percussive spectra produced by
// median-filtering HPSS.
type Separation struct {
	Harmonic   Spectrogram
	Percussive Spectrogram
}

// HPSS splits a spectrogram into harmonic and percussive components.
// Median filtering along the time axis passes sustained tonal energy;
// along the frequency axis it passes broadband transient energy. The two
// estimates are turned into soft ratio masks (margin > 1 demands a cleaner
// majority before energy is assigned) applied to the original complex
// frames, so phase is preserved.
func HPSS(spec Spectrogram, kernel int, margin, power float64) Separation {
	mag := spec.Magnitudes()
	harmEst := MedianFilter(mag, AxisTime, kernel)
	percEst := MedianFilter(mag, AxisFreq, kernel)

	harmonic := make([][]complex128, len(spec.Frames))
	percussive := make([][]complex128, len(spec.Frames))
	for t, frame := range spec.Frames {
		hRow := make([]complex128, len(frame))
		pRow := make([]complex128, len(frame))
		for b, c := range frame {
			h := math.Pow(harmEst[t][b], power)
			p := math.Pow(percEst[t][b], power)
			mh := math.Pow(margin*percEst[t][b], power)
			mp := math.Pow(margin*harmEst[t][b], power)

			var maskH, maskP float64
			if d := h + mh; d > 0 {
				maskH = h / d
			}
			if d := p + mp; d > 0 {
				maskP = p / d
			}
			hRow[b] = c * complex(maskH, 0)
			pRow[b] = c * complex(maskP, 0)
		}
		harmonic[t] = hRow
		percussive[t] = pRow
	}

	meta := spec
	meta.Frames = nil
	harm := meta
	harm.Frames = harmonic
	perc := meta
	perc.Frames = percussive
	return Separation{Harmonic: harm, Percussive: perc}
}
