// SPDX-License-Identifier: Unlicense OR MIT

package frame

import (
	"math"

	"github.com/kaedeflow/touchplan/chart"
	"github.com/kaedeflow/touchplan/diag"
	"github.com/kaedeflow/touchplan/geom"
)

// Synthesizer walks a chart's notes and resolves each one's screen position
// at judgment time, producing the per-millisecond FrameEvent stream the
// touch package plans pointers from.
type Synthesizer struct {
	Bounds      geom.Bounds
	Diagnostics diag.Sink
}

// NewSynthesizer returns a Synthesizer with the given screen bounds. A nil
// sink is replaced with diag.Nop.
func NewSynthesizer(bounds geom.Bounds, sink diag.Sink) *Synthesizer {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Synthesizer{Bounds: bounds, Diagnostics: sink}
}

// judgment is the geometry resolved for a note at its own judgment time.
type judgment struct {
	ms     int
	px, py float64
	sa, ca float64
}

// Synthesize produces the frame stream for every note across every judgment
// line of c. Event IDs are assigned in chart order (line order, then note
// order within a line) and are therefore deterministic for a given chart.
func (s *Synthesizer) Synthesize(c *chart.Chart) (Frames, error) {
	frames := make(Frames)
	var nextID ID
	for _, line := range c.Lines {
		for _, note := range line.Notes() {
			j := s.judge(line, note)
			s.emitNote(frames, line, note, j, nextID)
			nextID++
		}
	}
	return frames, nil
}

func (s *Synthesizer) judge(line chart.JudgmentLine, note chart.Note) judgment {
	ms := roundHalfUp(line.Seconds(note.Time) * 1000)
	offX := note.X * LaneOffsetScale
	lx, ly := line.Pos(note.Time)
	alpha := -line.Angle(note.Time) * math.Pi / 180
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	px, py := lx+offX*ca, ly+offX*sa
	return judgment{ms: ms, px: px, py: py, sa: sa, ca: ca}
}

func (s *Synthesizer) emitNote(frames Frames, line chart.JudgmentLine, note chart.Note, j judgment, id ID) {
	add := func(ms int, action Action, p geom.Point) {
		frames[ms] = append(frames[ms], Event{Action: action, Point: p, ID: id})
	}
	switch note.Type {
	case chart.TAP:
		add(j.ms, TAP, s.Bounds.RecalcPos(geom.Pt(j.px, j.py), j.sa, j.ca))
	case chart.DRAG:
		add(j.ms, DRAG, s.Bounds.RecalcPos(geom.Pt(j.px, j.py), j.sa, j.ca))
	case chart.FLICK:
		s.emitFlick(frames, line, note, j, id)
	case chart.HOLD:
		s.emitHold(frames, line, note, j, id)
	}
}

// emitFlick resolves the off-screen rescue window and then emits the
// FLICK_START/FLICK/FLICK_END samples.
func (s *Synthesizer) emitFlick(frames Frames, line chart.JudgmentLine, note chart.Note, j judgment, id ID) {
	px, py, sa, ca := j.px, j.py, j.sa, j.ca
	origin := geom.Pt(j.px, j.py)
	if !s.Bounds.InScreen(origin) {
		px, py, sa, ca = s.rescueFlick(line, note, j)
	}

	add := func(ms int, action Action, p geom.Point) {
		frames[ms] = append(frames[ms], Event{Action: action, Point: p, ID: id})
	}
	sample := func(offset int) geom.Point {
		return s.Bounds.RecalcPos(flickPos(px, py, offset, sa, ca), sa, ca)
	}

	add(j.ms+FlickStartOffset, FlickStart, sample(FlickStartOffset))
	for offset := FlickStartOffset + 1; offset < FlickEndOffset; offset++ {
		if offset%2 == 0 || offset == FlickEndOffset-1 {
			add(j.ms+offset, Flick, sample(offset))
		}
	}
	add(j.ms+FlickEndOffset, FlickEnd, sample(FlickEndOffset))
}

// rescueFlick tries dt in [-FlickRescueWindow, +FlickRescueWindow] (in that
// order) looking for a chart time near note.Time whose judgment point lands
// on screen. It always reports a diag.Event describing the attempt; when no
// candidate lands on screen it falls back to clamping the original point.
func (s *Synthesizer) rescueFlick(line chart.JudgmentLine, note chart.Note, j judgment) (px, py, sa, ca float64) {
	offX := note.X * LaneOffsetScale
	original := geom.Pt(j.px, j.py)
	for dt := -FlickRescueWindow; dt <= FlickRescueWindow; dt++ {
		t2 := note.Time + float64(dt)
		x2, y2 := line.Pos(t2)
		alpha2 := -line.Angle(t2) * math.Pi / 180
		sa2, ca2 := math.Sin(alpha2), math.Cos(alpha2)
		px2, py2 := x2+offX*ca2, y2+offX*sa2
		candidate := geom.Pt(px2, py2)
		if s.Bounds.InScreen(candidate) {
			s.Diagnostics.Warn(diag.Event{
				Kind:     diag.OffScreenFlick,
				MS:       j.ms,
				Message:  "flick judgment point off-screen; rescued with a nearby chart time",
				Original: original,
				Adjusted: candidate,
				Rescued:  true,
			})
			return px2, py2, sa2, ca2
		}
	}
	fallback := s.Bounds.RecalcPos(original, j.sa, j.ca)
	s.Diagnostics.Warn(diag.Event{
		Kind:     diag.OffScreenFlick,
		MS:       j.ms,
		Message:  "flick judgment point off-screen; no rescue candidate found, falling back to a clamped projection",
		Original: original,
		Adjusted: fallback,
		Rescued:  false,
	})
	return fallback.X, fallback.Y, j.sa, j.ca
}

func flickPos(px, py float64, offset int, sa, ca float64) geom.Point {
	rate := 1 - 2*math.Abs(float64(offset))/float64(FlickDuration)
	return geom.Pt(px-sa*FlickRadius*rate, py+ca*FlickRadius*rate)
}

func (s *Synthesizer) emitHold(frames Frames, line chart.JudgmentLine, note chart.Note, j judgment, id ID) {
	add := func(ms int, action Action, p geom.Point) {
		frames[ms] = append(frames[ms], Event{Action: action, Point: p, ID: id})
	}
	holdMs := int(math.Ceil(line.Seconds(note.Hold) * 1000))
	start := s.Bounds.RecalcPos(geom.Pt(j.px, j.py), j.sa, j.ca)
	if holdMs <= 0 {
		s.Diagnostics.Warn(diag.Event{
			Kind:    diag.DegenerateHold,
			MS:      j.ms,
			Message: "hold duration rounded to zero or less; collapsing to an instant tap-like gesture",
		})
		add(j.ms, HoldStart, start)
		add(j.ms, HoldEnd, start)
		return
	}

	add(j.ms, HoldStart, start)
	step := holdMs / HoldMaxSamples
	if step < 1 {
		step = 1
	}
	for offset := 1; offset < holdMs; offset++ {
		if offset%step == 0 || offset == holdMs-1 {
			t := line.Time(float64(j.ms+offset) / 1000)
			hx, hy := line.PosOf(note, t)
			add(j.ms+offset, Hold, s.Bounds.RecalcPos(geom.Pt(hx, hy), j.sa, j.ca))
		}
	}
	tEnd := line.Time(float64(j.ms+holdMs) / 1000)
	ex, ey := line.PosOf(note, tEnd)
	add(j.ms+holdMs, HoldEnd, s.Bounds.RecalcPos(geom.Pt(ex, ey), j.sa, j.ca))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
