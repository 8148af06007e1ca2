// SPDX-License-Identifier: Unlicense OR MIT

// Package chart holds the input data model the touch-planning core consumes:
// notes, judgment lines, and the chart that groups them.
//
// Chart parsing proper (reading a real rhythm-game chart format) is out of
// scope for the core, which treats JudgmentLine as an external collaborator;
// this package only defines the contract plus one concrete, deliberately
// simple implementation in line.go so the module is runnable end to end.
package chart

// NoteType identifies the gesture a Note asks the player (or the autoplay
// engine) to perform.
type NoteType uint8

const (
	TAP NoteType = iota
	DRAG
	FLICK
	HOLD
)

func (t NoteType) String() string {
	switch t {
	case TAP:
		return "TAP"
	case DRAG:
		return "DRAG"
	case FLICK:
		return "FLICK"
	case HOLD:
		return "HOLD"
	default:
		return "unknown"
	}
}

// Note is a single scheduled input event, anchored to a JudgmentLine by its
// lane offset X.
type Note struct {
	Type NoteType
	// Time is chart time (beats), not seconds; use the owning line's
	// Seconds to convert.
	Time float64
	// X is the lane offset; the synthesizer multiplies it by 72 to get
	// screen units.
	X float64
	// Hold is the HOLD duration in chart time. Ignored for other types.
	Hold float64
}

// JudgmentLine is a moving, rotating segment that notes are anchored to.
// It is an external collaborator the core never constructs itself: the
// core only ever calls these six methods.
type JudgmentLine interface {
	// Seconds converts chart time t (beats) to seconds.
	Seconds(t float64) float64
	// Time is the inverse of Seconds: seconds to chart time.
	Time(sec float64) float64
	// Pos returns the line's anchor position at chart time t.
	Pos(t float64) (x, y float64)
	// Angle returns the line's rotation, in degrees, at chart time t.
	Angle(t float64) float64
	// PosOf returns the screen position of note n's judgment point at
	// chart time t. Used by HOLD tails, which must track a moving line
	// rather than the line's position at the note's own start time.
	PosOf(n Note, t float64) (x, y float64)
	// Notes returns the line's notes in chart order.
	Notes() []Note
}

// Chart is the scored sequence of notes across all of its judgment lines.
type Chart struct {
	Lines []JudgmentLine
}
