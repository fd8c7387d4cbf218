// Package chord segments a recorded loop into fixed-duration windows and
// classifies each window's chromagram against a small set of triad and
// seventh-chord interval templates, producing a collapsed, timestamped
// chord timeline.
package chord

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-loop/dsp/chroma"
)

// NoChordLabel is emitted when no window produced a classifiable chord.
const NoChordLabel = "N.C."

// Event is one entry of a chord timeline.
type Event struct {
	// Time is the window start offset in seconds.
	Time float64
	// Label is the chord name, e.g. "C", "Am", "G7".
	Label string
}

// template pairs an interval set (relative to the lowest of the three
// strongest pitch classes) with a chord-quality suffix. Templates are
// matched in order; the first match wins.
type template struct {
	intervals [3]int
	suffix    string
}

var templates = []template{
	{[3]int{0, 4, 7}, ""},      // major triad
	{[3]int{0, 3, 7}, "m"},     // minor triad
	{[3]int{0, 4, 10}, "7"},    // dominant seventh
	{[3]int{0, 4, 11}, "maj7"}, // major seventh
	{[3]int{0, 3, 10}, "m7"},   // minor seventh
}

// Identify classifies a single chromagram. The three strongest pitch
// classes are sorted ascending, the lowest is taken as the candidate root,
// and the interval pattern is matched against the template list. With no
// template match the bare root name is returned.
func Identify(v chroma.Vector) string {
	top := topThree(v)
	sort.Ints(top[:])

	// top is sorted and the root is its minimum, so the interval pattern
	// is already ascending.
	root := top[0]
	var intervals [3]int
	for i, pc := range top {
		intervals[i] = pc - root
	}

	name := chroma.NoteName(root)
	for _, t := range templates {
		if intervals == t.intervals {
			return name + t.suffix
		}
	}
	return name
}

// topThree returns the indices of the three largest elements, ties
// resolving to the lowest pitch class.
func topThree(v chroma.Vector) [3]int {
	var out [3]int
	used := [chroma.Bins]bool{}
	for n := 0; n < 3; n++ {
		best := -1
		for pc := 0; pc < chroma.Bins; pc++ {
			if used[pc] {
				continue
			}
			if best < 0 || v[pc] > v[best] {
				best = pc
			}
		}
		used[best] = true
		out[n] = best
	}
	return out
}

// Segment splits samples into fixed non-overlapping windows, classifies
// each, and collapses adjacent duplicates. Trailing windows shorter than
// half the nominal window are dropped. If no window survives, a single
// fallback event at time 0 is returned so callers always get a timeline.
func Segment(samples []float64, sampleRate float64, opts ...Option) ([]Event, error) {
	cfg := ApplyOptions(opts...)

	if sampleRate <= 0 {
		return nil, fmt.Errorf("chord: sample rate must be > 0: %g", sampleRate)
	}

	windowSamples := int(cfg.WindowDuration * sampleRate)
	if windowSamples <= 0 {
		return nil, fmt.Errorf("chord: window duration %gs too short at %g Hz", cfg.WindowDuration, sampleRate)
	}

	var events []Event
	for start := 0; start < len(samples); start += windowSamples {
		end := start + windowSamples
		if end > len(samples) {
			end = len(samples)
		}
		if end-start < windowSamples/2 {
			break
		}

		v, err := chroma.Compute(samples[start:end], sampleRate, cfg.Chroma...)
		if err != nil {
			return nil, fmt.Errorf("chord: %w", err)
		}

		label := Identify(v)
		if len(events) > 0 && events[len(events)-1].Label == label {
			continue
		}
		events = append(events, Event{
			Time:  float64(start) / sampleRate,
			Label: label,
		})
	}

	if len(events) == 0 {
		events = []Event{{Time: 0, Label: NoChordLabel}}
	}

	return events, nil
}
