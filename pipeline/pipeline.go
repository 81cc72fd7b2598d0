// Package pipeline runs the full beat-detection chain: HPSS, onset
// strength, tempo/beat tracking, and marker document construction.
package pipeline

import (
	"context"
	"errors"

	"beatmark/audio"
	"beatmark/beat"
	"beatmark/constants"
	"beatmark/dsp"
	"beatmark/fcpxml"
	"beatmark/model"
	"beatmark/onset"
)

// ProgressFunc is notified at stage boundaries with the stage that just
// completed and the fraction of the pipeline done. It is optional and has
// no effect on the result.
type ProgressFunc func(stage string, fraction float64)

type Options struct {
	// FrameRate is the marker timeline fps; DefaultFrameRate when zero.
	FrameRate  int
	SourceName string
	SourcePath string
	Progress   ProgressFunc
}

type Result struct {
	Tempo    beat.TempoEstimate
	Beats    []beat.Event
	Document fcpxml.Document
	Summary  model.Summary
}

var stages = [...]string{"separate", "onset", "track", "markers"}

// Run executes the pipeline on a decoded waveform. It is deterministic,
// blocking, and CPU-bound; the context is checked between stages, never
// mid-stage, so cancellation granularity is one stage. Degenerate signals
// (silence, no periodicity) produce a low-confidence fallback result, not
// an error.
func Run(ctx context.Context, w audio.Waveform, opts Options) (*Result, error) {
	if len(w.Samples) == 0 {
		return nil, errors.New("empty waveform")
	}
	if w.SampleRate <= 0 {
		return nil, errors.New("waveform has no sample rate")
	}
	fps := opts.FrameRate
	if fps == 0 {
		fps = constants.DefaultFrameRate
	}
	if fps < 0 {
		return nil, errors.New("frame rate must be positive")
	}

	report := func(i int) {
		if opts.Progress != nil {
			opts.Progress(stages[i], float64(i+1)/float64(len(stages)))
		}
	}

	spec := dsp.STFT(w, constants.WindowSize, constants.HopSize)
	sep := dsp.HPSS(spec, constants.MedianKernel, constants.HPSSMargin, constants.HPSSPower)
	report(0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	curve := onset.Strength(sep.Percussive)
	report(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tempo := beat.EstimateTempo(curve)
	beats := beat.Track(curve, tempo)
	report(2)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fcpxml.Build(beats, w, tempo, fps, opts.SourceName, opts.SourcePath)
	report(3)

	return &Result{
		Tempo:    tempo,
		Beats:    beats,
		Document: doc,
		Summary: model.Summary{
			File:            opts.SourceName,
			DurationSeconds: w.Duration(),
			TempoBPM:        tempo.BPM,
			LowConfidence:   tempo.Fallback,
			SampleRate:      w.SampleRate,
			BeatCount:       len(beats),
		},
	}, nil
}
