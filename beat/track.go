package beat

import (
	"math"

	"beatmark/onset"
	"beatmark/util"
)

// Event is a sample-accurate beat position.
type Event struct {
	Sample  int
	Seconds float64
}

// fraction of the curve maximum an onset must reach for a beat to snap to
// it instead of the nominal grid position
const snapThreshold = 0.1

// Track walks the onset curve at the nominal tempo period, snapping each
// beat to the strongest onset within ±period/6 of the prediction so small
// tempo drift and humanized timing are tolerated. Windows with no
// significant onset (silence, ambiguous sections) fall back to the grid
// position rather than dropping the beat, so the sequence always covers
// the full duration. The result is strictly increasing in sample position.
func Track(c onset.Curve, tempo TempoEstimate) []Event {
	n := c.NumFrames()
	if n == 0 || tempo.BPM <= 0 {
		return nil
	}

	period := util.Max(bpmToLag(tempo.BPM, c.HopSize, c.SampleRate), 1)
	tol := util.Max(period/6, 1)

	var curveMax float64
	for _, v := range c.Values {
		if v > curveMax {
			curveMax = v
		}
	}
	threshold := snapThreshold * curveMax

	// first beat: strongest onset within the first period and a half,
	// grid origin when nothing stands out
	firstEnd := util.Min(int(1.5*period)+1, n)
	first := 0
	for f := 1; f < firstEnd; f++ {
		if c.Values[f] > c.Values[first] {
			first = f
		}
	}
	if curveMax == 0 || c.Values[first] < threshold {
		first = 0
	}

	var beats []Event
	prev := -1
	pos := float64(first)
	for {
		grid := int(math.Round(pos))
		if grid >= n {
			break
		}

		choice := grid
		lo := util.Max(int(math.Ceil(pos-tol)), prev+1)
		hi := util.Min(int(math.Floor(pos+tol)), n-1)
		if lo <= hi {
			best := lo
			for f := lo + 1; f <= hi; f++ {
				if c.Values[f] > c.Values[best] {
					best = f
				}
			}
			if c.Values[best] >= threshold && threshold > 0 {
				choice = best
			}
		}

		if choice <= prev {
			choice = prev + 1
		}
		if choice >= n {
			break
		}

		beats = append(beats, Event{
			Sample:  c.FrameSample(choice),
			Seconds: c.FrameTime(choice),
		})
		prev = choice
		pos = float64(choice) + period
	}

	return beats
}
