// SPDX-License-Identifier: Unlicense OR MIT

package frame

import (
	"math"
	"sort"
	"testing"

	"github.com/kaedeflow/touchplan/chart"
	"github.com/kaedeflow/touchplan/diag"
	"github.com/kaedeflow/touchplan/geom"
)

// flatLine is a fixed-geometry JudgmentLine for tests that don't need real
// interpolation: one chart-time unit equals one second, the line never
// moves, and PosOf reapplies the same lane-offset projection as the
// synthesizer's own judge() so HOLD tail sampling is exercised faithfully.
type flatLine struct {
	x, y, degrees float64
	notes         []chart.Note
}

func (l *flatLine) Seconds(t float64) float64 { return t }
func (l *flatLine) Time(sec float64) float64  { return sec }
func (l *flatLine) Pos(t float64) (float64, float64) { return l.x, l.y }
func (l *flatLine) Angle(t float64) float64   { return l.degrees }
func (l *flatLine) PosOf(n chart.Note, t float64) (float64, float64) {
	alpha := -l.degrees * math.Pi / 180
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	offX := n.X * LaneOffsetScale
	return l.x + offX*ca, l.y + offX*sa
}
func (l *flatLine) Notes() []chart.Note { return l.notes }

func sortedMS(f Frames) []int {
	ms := make([]int, 0, len(f))
	for k := range f {
		ms = append(ms, k)
	}
	sort.Ints(ms)
	return ms
}

func TestSynthesizeTAP(t *testing.T) {
	line := &flatLine{x: 500, y: 800, notes: []chart.Note{{Type: chart.TAP, Time: 1, X: 0}}}
	s := NewSynthesizer(geom.Bounds{Width: 1080, Height: 2340}, nil)
	frames, err := s.Synthesize(&chart.Chart{Lines: []chart.JudgmentLine{line}})
	if err != nil {
		t.Fatal(err)
	}
	evs, ok := frames[1000]
	if !ok || len(evs) != 1 {
		t.Fatalf("frames[1000] = %v, want exactly one event", evs)
	}
	if evs[0].Action != TAP || evs[0].Point != geom.Pt(500, 800) {
		t.Fatalf("got %+v", evs[0])
	}
}

func TestSynthesizeFlickCenteredAtMS500(t *testing.T) {
	// angle=0 => sa=0, ca=1, so the judge point is exactly (x,y); pick
	// x=400,y=400 as the projected center.
	line := &flatLine{x: 400, y: 400, notes: []chart.Note{{Type: chart.FLICK, Time: 0.5, X: 0}}}
	s := NewSynthesizer(geom.Bounds{Width: 1080, Height: 2340}, nil)
	frames, err := s.Synthesize(&chart.Chart{Lines: []chart.JudgmentLine{line}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := frames[480]; !ok {
		t.Error("expected a FLICK_START at ms 480")
	}
	if _, ok := frames[520]; !ok {
		t.Error("expected a FLICK_END at ms 520")
	}
	sawIntermediate := false
	for _, ms := range sortedMS(frames) {
		for _, e := range frames[ms] {
			if e.Action != Flick && e.Action != FlickStart && e.Action != FlickEnd {
				continue
			}
			d := geom.Distance(e.Point, geom.Pt(400, 400))
			if d > FlickRadius+1e-9 {
				t.Errorf("ms %d: point %v is %v from center, want <= %v", ms, e.Point, d, FlickRadius)
			}
			if e.Action == Flick && ms > 480 && ms < 520 {
				sawIntermediate = true
			}
		}
	}
	if !sawIntermediate {
		t.Error("expected at least one intermediate FLICK sample")
	}
	// Exactly one event id should be used across the whole gesture.
	ids := map[ID]bool{}
	for _, ms := range sortedMS(frames) {
		for _, e := range frames[ms] {
			ids[e.ID] = true
		}
	}
	if len(ids) != 1 {
		t.Errorf("got %d distinct event ids, want 1", len(ids))
	}
}

func TestSynthesizeHoldSpansStartToEnd(t *testing.T) {
	line := &flatLine{x: 300, y: 300, notes: []chart.Note{{Type: chart.HOLD, Time: 2, X: 0, Hold: 0.1}}}
	s := NewSynthesizer(geom.Bounds{Width: 1080, Height: 2340}, nil)
	frames, err := s.Synthesize(&chart.Chart{Lines: []chart.JudgmentLine{line}})
	if err != nil {
		t.Fatal(err)
	}
	if evs, ok := frames[2000]; !ok || evs[0].Action != HoldStart {
		t.Fatalf("expected HOLD_START at ms 2000, got %v", frames[2000])
	}
	if evs, ok := frames[2100]; !ok || evs[0].Action != HoldEnd {
		t.Fatalf("expected HOLD_END at ms 2100, got %v", frames[2100])
	}
	sampleCount := 0
	for ms := 2001; ms < 2100; ms++ {
		if evs, ok := frames[ms]; ok {
			for _, e := range evs {
				if e.Action == Hold {
					sampleCount++
				}
			}
		}
	}
	if sampleCount == 0 {
		t.Error("expected at least one intermediate HOLD sample")
	}
	// step = max(1, 100/20) = 5, so spacing must never exceed 6 (step+1
	// slack for the forced hold_ms-1 sample).
	maxSpacing := 100/HoldMaxSamples + 1
	last := 2000
	for ms := 2001; ms <= 2100; ms++ {
		if _, ok := frames[ms]; ok {
			if ms-last > maxSpacing {
				t.Errorf("gap from %d to %d exceeds %d", last, ms, maxSpacing)
			}
			last = ms
		}
	}
}

func TestSynthesizeDegenerateHold(t *testing.T) {
	line := &flatLine{x: 100, y: 100, notes: []chart.Note{{Type: chart.HOLD, Time: 1, X: 0, Hold: 0}}}
	collector := &diag.Collector{}
	s := NewSynthesizer(geom.Bounds{Width: 1080, Height: 2340}, collector)
	frames, err := s.Synthesize(&chart.Chart{Lines: []chart.JudgmentLine{line}})
	if err != nil {
		t.Fatal(err)
	}
	evs := frames[1000]
	if len(evs) != 2 || evs[0].Action != HoldStart || evs[1].Action != HoldEnd {
		t.Fatalf("got %+v, want HOLD_START then HOLD_END at ms 1000", evs)
	}
	if len(collector.Events) != 1 || collector.Events[0].Kind != diag.DegenerateHold {
		t.Fatalf("expected one DegenerateHold diagnostic, got %+v", collector.Events)
	}
}

// offScreenLine is off-screen at its own note time but on-screen three
// chart-time units later, to exercise the flick rescue window.
type offScreenLine struct {
	flatLine
}

func (l *offScreenLine) Pos(t float64) (float64, float64) {
	if t < 10 {
		return -500, -500
	}
	return 400, 400
}

func TestSynthesizeFlickOffScreenRescue(t *testing.T) {
	line := &offScreenLine{flatLine{notes: []chart.Note{{Type: chart.FLICK, Time: 7, X: 0}}}}
	collector := &diag.Collector{}
	s := NewSynthesizer(geom.Bounds{Width: 1080, Height: 2340}, collector)
	frames, err := s.Synthesize(&chart.Chart{Lines: []chart.JudgmentLine{line}})
	if err != nil {
		t.Fatal(err)
	}
	if len(collector.Events) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(collector.Events))
	}
	e := collector.Events[0]
	if e.Kind != diag.OffScreenFlick || !e.Rescued {
		t.Fatalf("got %+v, want a rescued OffScreenFlick", e)
	}
	found := false
	for _, ms := range sortedMS(frames) {
		for _, ev := range frames[ms] {
			if geom.Distance(ev.Point, geom.Pt(400, 400)) <= FlickRadius+1e-9 {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected rescued samples centered near (400,400)")
	}
}
