package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"beatmark/audio"
	"beatmark/fcpxml"
)

// clickTrack is impulses every half second: 120 BPM.
func clickTrack(seconds float64, sr int) audio.Waveform {
	n := int(seconds * float64(sr))
	samples := make([]float64, n)
	for i := 0; i < n; i += sr / 2 {
		samples[i] = 1
	}
	return audio.Waveform{Samples: samples, SampleRate: sr}
}

func silence(seconds float64, sr int) audio.Waveform {
	return audio.Waveform{Samples: make([]float64, int(seconds*float64(sr))), SampleRate: sr}
}

func TestRunClickTrackTempoAndBeats(t *testing.T) {
	w := clickTrack(10, 44100)
	res, err := Run(context.Background(), w, Options{SourceName: "clicks.wav"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.False(res.Tempo.Fallback)
	assert.InDelta(120, res.Tempo.BPM, 1.0)

	// beats land within 10ms of the half-second click grid
	assert.GreaterOrEqual(len(res.Beats), 19)
	for _, b := range res.Beats {
		nearest := math.Round(b.Seconds*2) / 2
		assert.InDelta(nearest, b.Seconds, 0.010)
	}
}

func TestRunBeatInvariants(t *testing.T) {
	w := clickTrack(10, 44100)
	res, err := Run(context.Background(), w, Options{})
	assert.NoError(t, err)

	prev := -1
	for _, b := range res.Beats {
		assert.Greater(t, b.Sample, prev)
		assert.LessOrEqual(t, b.Sample, len(w.Samples))
		prev = b.Sample
	}

	prevFrame := 0
	for _, m := range res.Document.Markers {
		assert.GreaterOrEqual(t, m.Frame, prevFrame)
		assert.LessOrEqual(t, m.Frame, res.Document.DurationFrames)
		prevFrame = m.Frame
	}
}

func TestRunSilenceFallsBackToGrid(t *testing.T) {
	w := silence(10, 44100)
	res, err := Run(context.Background(), w, Options{SourceName: "silence.wav"})

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(res.Tempo.Fallback)
	assert.True(res.Summary.LowConfidence)
	assert.InDelta(120, res.Tempo.BPM, 1e-9)
	assert.NotEmpty(res.Beats)
	assert.NotEmpty(res.Document.Markers)
}

func TestRunDeterministic(t *testing.T) {
	w := clickTrack(10, 44100)
	a, err := Run(context.Background(), w, Options{SourceName: "clicks.wav", SourcePath: "clicks.wav"})
	assert.NoError(t, err)
	b, err := Run(context.Background(), w, Options{SourceName: "clicks.wav", SourcePath: "clicks.wav"})
	assert.NoError(t, err)

	assert.Equal(t, a.Document, b.Document)
	assert.Equal(t, a.Beats, b.Beats)
	assert.Equal(t, a.Tempo, b.Tempo)

	enc1, err := fcpxml.Encode(a.Document)
	assert.NoError(t, err)
	enc2, err := fcpxml.Encode(b.Document)
	assert.NoError(t, err)
	assert.Equal(t, enc1, enc2)
}

func TestRunFrameRateOnlyRescalesMarkers(t *testing.T) {
	w := clickTrack(10, 44100)
	at30, err := Run(context.Background(), w, Options{FrameRate: 30})
	assert.NoError(t, err)
	at24, err := Run(context.Background(), w, Options{FrameRate: 24})
	assert.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(at30.Beats, at24.Beats)
	assert.Equal(at30.Tempo, at24.Tempo)
	assert.Equal(24, at24.Document.FrameRate)
	for i := range at30.Document.Markers {
		f30 := at30.Document.Markers[i]
		f24 := at24.Document.Markers[i]
		assert.InDelta(f30.Seconds*30, float64(f30.Frame), 0.5+1e-9)
		assert.InDelta(f24.Seconds*24, float64(f24.Frame), 0.5+1e-9)
	}
}

func TestRunProgressReportsStagesInOrder(t *testing.T) {
	var names []string
	var fractions []float64
	opts := Options{Progress: func(stage string, fraction float64) {
		names = append(names, stage)
		fractions = append(fractions, fraction)
	}}
	_, err := Run(context.Background(), clickTrack(2, 44100), opts)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"separate", "onset", "track", "markers"}, names)
	assert.Equal([]float64{0.25, 0.5, 0.75, 1}, fractions)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, clickTrack(2, 44100), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyWaveformIsAnError(t *testing.T) {
	_, err := Run(context.Background(), audio.Waveform{SampleRate: 44100}, Options{})
	assert.Error(t, err)
}

func TestRunShortInputDegradesGracefully(t *testing.T) {
	// shorter than one analysis window
	w := audio.Waveform{Samples: make([]float64, 1000), SampleRate: 44100}
	res, err := Run(context.Background(), w, Options{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.NotNil(res)
	assert.True(res.Tempo.Fallback)
}
