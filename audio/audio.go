package audio

// Waveform is a decoded mono sample buffer tagged with its sample rate.
// It is immutable once loaded; the pipeline treats it read-only for the
// whole run.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}
