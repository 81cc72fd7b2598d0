// Package click exports a detected beat list as a standard MIDI file, so
// the grid can be audited against the source audio in a DAW.
package click

import (
	"errors"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"beatmark/beat"
)

const (
	ticksPerQuarter = 960
	clickKey        = 37 // side stick
	clickChannel    = 9  // percussion
	clickVelocity   = 100
	gateTicks       = 60
)

// beatTicks places a beat's wall-clock time on the tick grid implied by
// the tempo meta event, so one beat spans roughly one quarter note.
func beatTicks(seconds, bpm float64) int {
	return int(math.Round(seconds * bpm / 60 * ticksPerQuarter))
}

// WriteSMF writes a single-track click at the detected beat positions,
// carrying the tempo estimate as the file's tempo meta event.
func WriteSMF(beats []beat.Event, tempo beat.TempoEstimate, path string) error {
	if len(beats) == 0 {
		return errors.New("no beats to export")
	}

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("beatmark click"))
	track.Add(0, smf.MetaTempo(tempo.BPM))

	var cursor int
	for _, b := range beats {
		abs := beatTicks(b.Seconds, tempo.BPM)
		delta := abs - cursor
		if delta < 0 {
			delta = 0
		}
		track.Add(uint32(delta), midi.NoteOn(clickChannel, clickKey, clickVelocity))
		track.Add(gateTicks, midi.NoteOff(clickChannel, clickKey))
		cursor = abs + gateTicks
	}
	track.Close(0)

	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	s.Tracks = append(s.Tracks, track)
	return s.WriteFile(path)
}
