package onset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beatmark/dsp"
)

// synthSpectrogram builds a spectrogram whose per-frame magnitude is given
// directly, spread flat across a few bins.
func synthSpectrogram(frameMags []float64) dsp.Spectrogram {
	frames := make([][]complex128, len(frameMags))
	for t, m := range frameMags {
		row := make([]complex128, 8)
		for b := range row {
			row[b] = complex(m, 0)
		}
		frames[t] = row
	}
	return dsp.Spectrogram{Frames: frames, WindowSize: 2048, HopSize: 512, SampleRate: 44100}
}

func TestStrengthLengthMatchesFrames(t *testing.T) {
	c := Strength(synthSpectrogram(make([]float64, 20)))
	assert.Equal(t, 20, c.NumFrames())
}

func TestStrengthSilenceIsAllZeros(t *testing.T) {
	c := Strength(synthSpectrogram(make([]float64, 20)))
	for _, v := range c.Values {
		assert.Zero(t, v)
	}
}

func TestStrengthPeaksOnTransientFrame(t *testing.T) {
	mags := make([]float64, 20)
	mags[10] = 5 // sharp transient at frame 10
	c := Strength(synthSpectrogram(mags))

	best := 0
	for i, v := range c.Values {
		if v > c.Values[best] {
			best = i
		}
	}

	assert := assert.New(t)
	assert.Equal(10, best)
	assert.InDelta(1.0, c.Values[best], 1e-12)
}

func TestStrengthIgnoresMagnitudeDecreases(t *testing.T) {
	// monotonically decaying signal has no positive flux
	c := Strength(synthSpectrogram([]float64{5, 4, 3, 2, 1}))
	for i := 1; i < len(c.Values); i++ {
		assert.Zero(t, c.Values[i])
	}
}

func TestStrengthValuesNonNegativeAndUnitMax(t *testing.T) {
	mags := []float64{0, 1, 0, 3, 0, 2, 0}
	c := Strength(synthSpectrogram(mags))

	var max float64
	for _, v := range c.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		if v > max {
			max = v
		}
	}
	assert.InDelta(t, 1.0, max, 1e-12)
}

func TestCurveGeometry(t *testing.T) {
	c := Curve{Values: make([]float64, 10), HopSize: 512, SampleRate: 44100}
	assert.Equal(t, 1024, c.FrameSample(2))
	assert.InDelta(t, float64(1024)/44100, c.FrameTime(2), 1e-12)
}
