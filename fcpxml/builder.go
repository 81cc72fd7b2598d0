// Package fcpxml projects beat events onto a frame-rate timeline and
// serializes them as an FCPXML marker document.
package fcpxml

import (
	"math"

	"beatmark/audio"
	"beatmark/beat"
)

// Marker is a beat event rounded onto the frame grid. Seconds keeps the
// original beat time for the marker note text.
type Marker struct {
	Frame   int
	Label   string
	Seconds float64
}

// Document is the terminal artifact of a pipeline run: the ordered marker
// set plus the metadata the FCPXML serialization needs. It is built once
// and never mutated.
type Document struct {
	SourceName      string
	SourcePath      string
	FrameRate       int
	DurationFrames  int
	DurationSeconds float64
	SampleRate      int
	TempoBPM        float64
	Markers         []Marker
}

// RoundHalfAway rounds to the nearest integer with halves away from zero.
func RoundHalfAway(v float64) int {
	if v < 0 {
		return -int(math.Floor(-v + 0.5))
	}
	return int(math.Floor(v + 0.5))
}

// Build converts beat events into a marker document at the given frame
// rate. Frame numbers are non-decreasing: a rounding inversion is clamped
// to the previous frame plus one, and ties are allowed to collapse onto
// the same frame. Total duration is rounded up to whole frames.
func Build(beats []beat.Event, w audio.Waveform, tempo beat.TempoEstimate, fps int, sourceName, sourcePath string) Document {
	durSeconds := w.Duration()
	durFrames := int(math.Ceil(durSeconds * float64(fps)))

	markers := make([]Marker, 0, len(beats))
	prev := 0
	for i, b := range beats {
		frame := RoundHalfAway(b.Seconds * float64(fps))
		if i > 0 && frame < prev {
			frame = prev + 1
		}
		if frame > durFrames {
			frame = durFrames
		}
		markers = append(markers, Marker{
			Frame:   frame,
			Label:   beatLabel(i),
			Seconds: b.Seconds,
		})
		prev = frame
	}

	return Document{
		SourceName:      sourceName,
		SourcePath:      sourcePath,
		FrameRate:       fps,
		DurationFrames:  durFrames,
		DurationSeconds: durSeconds,
		SampleRate:      w.SampleRate,
		TempoBPM:        tempo.BPM,
		Markers:         markers,
	}
}
