package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"beatmark/audio"
)

// Spectrogram is an ordered sequence of complex spectra, one per analysis
// frame, plus the geometry needed to map a frame index back to sample time.
type Spectrogram struct {
	Frames     [][]complex128 // [frame][bin], WindowSize/2+1 bins
	WindowSize int
	HopSize    int
	SampleRate int
}

func (s Spectrogram) NumFrames() int {
	return len(s.Frames)
}

func (s Spectrogram) NumBins() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return len(s.Frames[0])
}

// FrameSample returns the sample index a frame is centered on.
func (s Spectrogram) FrameSample(i int) int {
	return i * s.HopSize
}

func (s Spectrogram) FrameTime(i int) float64 {
	return float64(i*s.HopSize) / float64(s.SampleRate)
}

// Magnitudes returns the magnitude spectrum per frame.
func (s Spectrogram) Magnitudes() [][]float64 {
	mags := make([][]float64, len(s.Frames))
	for i, frame := range s.Frames {
		row := make([]float64, len(frame))
		for j, c := range frame {
			row[j] = math.Hypot(real(c), imag(c))
		}
		mags[i] = row
	}
	return mags
}

// HannWindow returns an n-point Hann window.
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// STFT computes a centered short-time Fourier transform: the signal is
// zero-padded by half a window on both ends, so frame i is centered on
// sample i*hopSize and any non-empty input yields at least one frame.
func STFT(w audio.Waveform, windowSize, hopSize int) Spectrogram {
	win := HannWindow(windowSize)
	fft := fourier.NewFFT(windowSize)
	half := windowSize / 2
	n := len(w.Samples)

	numFrames := 1 + n/hopSize
	frames := make([][]complex128, 0, numFrames)
	buf := make([]float64, windowSize)
	for f := 0; f < numFrames; f++ {
		start := f*hopSize - half
		for j := 0; j < windowSize; j++ {
			idx := start + j
			if idx < 0 || idx >= n {
				buf[j] = 0
			} else {
				buf[j] = w.Samples[idx] * win[j]
			}
		}
		frames = append(frames, fft.Coefficients(nil, buf))
	}

	return Spectrogram{
		Frames:     frames,
		WindowSize: windowSize,
		HopSize:    hopSize,
		SampleRate: w.SampleRate,
	}
}
