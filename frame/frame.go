// SPDX-License-Identifier: Unlicense OR MIT

// Package frame implements the Frame Synthesizer: it walks a chart's notes
// and produces per-millisecond FrameEvents, the internal intent stream the
// touch package turns into real DOWN/MOVE/UP pointer actions.
package frame

import "github.com/kaedeflow/touchplan/geom"

// Action is the kind of intent a FrameEvent carries.
type Action uint8

const (
	TAP Action = iota
	DRAG
	FlickStart
	Flick
	FlickEnd
	HoldStart
	Hold
	HoldEnd
)

func (a Action) String() string {
	switch a {
	case TAP:
		return "TAP"
	case DRAG:
		return "DRAG"
	case FlickStart:
		return "FLICK_START"
	case Flick:
		return "FLICK"
	case FlickEnd:
		return "FLICK_END"
	case HoldStart:
		return "HOLD_START"
	case Hold:
		return "HOLD"
	case HoldEnd:
		return "HOLD_END"
	default:
		return "unknown"
	}
}

// ID uniquely identifies the note a FrameEvent originated from. All
// FrameEvents sharing an ID belong to the same gesture and must be served by
// the same pointer.
type ID uint32

// Event is a single per-millisecond intent.
type Event struct {
	Action Action
	Point  geom.Point
	ID     ID
}

// Frames maps a millisecond to the events scheduled at it.
type Frames map[int][]Event

// Tuning constants, part of the output contract for reproducibility.
const (
	// FlickStartOffset and FlickEndOffset bracket a FLICK's synthetic
	// swipe relative to the note's judgment ms.
	FlickStartOffset = -20
	FlickEndOffset   = 20
	// FlickDuration is the span a FLICK's motion curve is normalized
	// against.
	FlickDuration = FlickEndOffset - FlickStartOffset
	// FlickRadius is the amplitude, in screen units, of a FLICK's
	// synthetic swipe.
	FlickRadius = 40.0
	// FlickRescueWindow is the number of chart-time units, on either
	// side of a note's own time, tried when its judgment point is
	// off-screen.
	FlickRescueWindow = 5
	// HoldMaxSamples bounds how densely a HOLD's intermediate motion is
	// sampled; step = max(1, hold_ms/HoldMaxSamples).
	HoldMaxSamples = 20
)

// LaneOffsetScale converts a note's lane offset into screen units.
const LaneOffsetScale = 72.0
