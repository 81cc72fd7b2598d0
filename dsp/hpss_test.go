package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beatmark/audio"
)

func clickTrain(spacing float64, seconds float64, sr int) audio.Waveform {
	n := int(seconds * float64(sr))
	samples := make([]float64, n)
	step := int(spacing * float64(sr))
	for i := 0; i < n; i += step {
		samples[i] = 1
	}
	return audio.Waveform{Samples: samples, SampleRate: sr}
}

func totalMagnitude(s Spectrogram) float64 {
	var sum float64
	for _, row := range s.Magnitudes() {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

func TestHPSSSineIsMostlyHarmonic(t *testing.T) {
	spec := STFT(sineWave(220, 2.0, 44100), 2048, 512)
	sep := HPSS(spec, 17, 3.0, 2.0)

	harm := totalMagnitude(sep.Harmonic)
	perc := totalMagnitude(sep.Percussive)
	assert.Greater(t, harm, perc*2)
}

func TestHPSSClickTrainIsMostlyPercussive(t *testing.T) {
	spec := STFT(clickTrain(0.25, 2.0, 44100), 2048, 512)
	sep := HPSS(spec, 17, 3.0, 2.0)

	harm := totalMagnitude(sep.Harmonic)
	perc := totalMagnitude(sep.Percussive)
	assert.Greater(t, perc, harm*2)
}

func TestHPSSPreservesGeometryAndPhase(t *testing.T) {
	spec := STFT(clickTrain(0.25, 1.0, 44100), 2048, 512)
	sep := HPSS(spec, 17, 3.0, 2.0)

	assert := assert.New(t)
	assert.Equal(spec.NumFrames(), sep.Percussive.NumFrames())
	assert.Equal(spec.NumBins(), sep.Percussive.NumBins())
	assert.Equal(spec.HopSize, sep.Percussive.HopSize)
	assert.Equal(spec.SampleRate, sep.Percussive.SampleRate)

	// masks are non-negative reals, so phase must carry over wherever
	// energy survives
	for t2, frame := range sep.Percussive.Frames {
		for b, c := range frame {
			orig := spec.Frames[t2][b]
			if real(c) != 0 || imag(c) != 0 {
				cross := real(c)*imag(orig) - imag(c)*real(orig)
				assert.InDelta(0, cross, 1e-9)
			}
		}
	}
}

func TestHPSSSilence(t *testing.T) {
	w := audio.Waveform{Samples: make([]float64, 44100), SampleRate: 44100}
	sep := HPSS(STFT(w, 2048, 512), 17, 3.0, 2.0)
	assert.Zero(t, totalMagnitude(sep.Percussive))
	assert.Zero(t, totalMagnitude(sep.Harmonic))
}
