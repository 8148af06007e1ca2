// SPDX-License-Identifier: Unlicense OR MIT

package chart

import "math"

// BPMPoint marks a tempo change at a given beat. Beats must be sorted
// ascending and BPM must be positive.
type BPMPoint struct {
	Beat float64
	BPM  float64
}

// PosKeyframe anchors the line's position at a beat; PiecewiseLine linearly
// interpolates between consecutive keyframes.
type PosKeyframe struct {
	Beat float64
	X, Y float64
}

// RotKeyframe anchors the line's rotation, in degrees, at a beat.
type RotKeyframe struct {
	Beat    float64
	Degrees float64
}

// PiecewiseLine is a deliberately simple JudgmentLine: straight-line
// interpolation between position/rotation keyframes, and a piecewise-constant
// BPM timeline for beat/second conversion. Real chart formats layer easing
// curves on top of this; PiecewiseLine exists so the module has a concrete,
// testable line without reimplementing a full chart parser, which stays out
// of the core's scope.
type PiecewiseLine struct {
	BPM      []BPMPoint
	Position []PosKeyframe
	Rotation []RotKeyframe
	NoteList []Note

	// cumSeconds[i] is the time in seconds at which BPM[i] begins.
	// Computed lazily by ensurePrepared.
	cumSeconds []float64
	prepared   bool
}

func (l *PiecewiseLine) ensurePrepared() {
	if l.prepared {
		return
	}
	l.cumSeconds = make([]float64, len(l.BPM))
	var acc float64
	for i := range l.BPM {
		l.cumSeconds[i] = acc
		if i+1 < len(l.BPM) {
			beats := l.BPM[i+1].Beat - l.BPM[i].Beat
			acc += beats * 60 / l.BPM[i].BPM
		}
	}
	l.prepared = true
}

// Seconds converts chart time (beats) to seconds by integrating the
// piecewise-constant BPM timeline.
func (l *PiecewiseLine) Seconds(beat float64) float64 {
	l.ensurePrepared()
	if len(l.BPM) == 0 {
		return 0
	}
	i := l.segmentForBeat(beat)
	return l.cumSeconds[i] + (beat-l.BPM[i].Beat)*60/l.BPM[i].BPM
}

// Time is the inverse of Seconds.
func (l *PiecewiseLine) Time(sec float64) float64 {
	l.ensurePrepared()
	if len(l.BPM) == 0 {
		return 0
	}
	i := 0
	for i+1 < len(l.cumSeconds) && l.cumSeconds[i+1] <= sec {
		i++
	}
	return l.BPM[i].Beat + (sec-l.cumSeconds[i])*l.BPM[i].BPM/60
}

func (l *PiecewiseLine) segmentForBeat(beat float64) int {
	i := 0
	for i+1 < len(l.BPM) && l.BPM[i+1].Beat <= beat {
		i++
	}
	return i
}

// Pos returns the line's anchor position at chart time t, linearly
// interpolated between position keyframes.
func (l *PiecewiseLine) Pos(t float64) (x, y float64) {
	if len(l.Position) == 0 {
		return 0, 0
	}
	a, b, f := interpolationSpan(len(l.Position), func(i int) float64 { return l.Position[i].Beat }, t)
	pa, pb := l.Position[a], l.Position[b]
	return lerp(pa.X, pb.X, f), lerp(pa.Y, pb.Y, f)
}

// Angle returns the line's rotation in degrees at chart time t.
func (l *PiecewiseLine) Angle(t float64) float64 {
	if len(l.Rotation) == 0 {
		return 0
	}
	a, b, f := interpolationSpan(len(l.Rotation), func(i int) float64 { return l.Rotation[i].Beat }, t)
	return lerp(l.Rotation[a].Degrees, l.Rotation[b].Degrees, f)
}

// PosOf returns the screen position of note n's judgment point at chart time
// t, using the same lane-offset projection the frame synthesizer applies to
// a note's own start time. HOLD tails call this repeatedly as t advances so
// the tracked point follows a moving line.
func (l *PiecewiseLine) PosOf(n Note, t float64) (x, y float64) {
	lx, ly := l.Pos(t)
	alpha := -l.Angle(t) * math.Pi / 180
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	offX := n.X * 72
	return lx + offX*ca, ly + offX*sa
}

// Notes returns the line's notes in chart order.
func (l *PiecewiseLine) Notes() []Note {
	return l.NoteList
}

// interpolationSpan finds the keyframe pair bracketing beat t and the
// interpolation fraction between them. keyAt(i) must be sorted ascending.
func interpolationSpan(n int, keyAt func(i int) float64, t float64) (a, b int, frac float64) {
	if n == 1 {
		return 0, 0, 0
	}
	i := 0
	for i+1 < n && keyAt(i+1) <= t {
		i++
	}
	if i+1 >= n {
		return n - 1, n - 1, 0
	}
	span := keyAt(i+1) - keyAt(i)
	if span <= 0 {
		return i, i + 1, 0
	}
	f := (t - keyAt(i)) / span
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return i, i + 1, f
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
