// SPDX-License-Identifier: Unlicense OR MIT

// Package touch implements the Pointer Planner: it consumes the frame
// package's per-millisecond FrameEvents and emits a bounded, well-formed
// stream of DOWN/MOVE/UP touch events, each bound to a small pool of reused
// pointer ids.
package touch

import "github.com/kaedeflow/touchplan/geom"

// Action is a low-level touch action, the kind a device-injection layer
// would replay directly.
type Action uint8

const (
	Down Action = iota
	Move
	Up
)

func (a Action) String() string {
	switch a {
	case Down:
		return "DOWN"
	case Move:
		return "MOVE"
	case Up:
		return "UP"
	default:
		return "unknown"
	}
}

// PointerID is a logical multi-touch slot handed to the injection layer.
type PointerID int

// Event is one low-level touch action.
type Event struct {
	Pos       geom.Point
	Action    Action
	PointerID PointerID
}

// Tuning constants, part of the output contract for reproducibility.
const (
	// ReuseDistanceThreshold caps how far a released pointer may be from
	// a new gesture's first point for acquire(new=false) to reuse it.
	ReuseDistanceThreshold = 120.0
	// ReuseTimePenaltyDivisor converts the idle duration (ms) of a
	// released pointer into a distance-equivalent penalty added to its
	// reuse score, biasing reuse toward recently-released pointers.
	ReuseTimePenaltyDivisor = 50.0
	// IdleKeyframeTolerance is how many keyframes an idle released
	// pointer survives before recycle() emits its UP.
	IdleKeyframeTolerance = 1
	// MaxLivePointers is the hard cap on simultaneously-tracked pointers
	// (active + quarantined). Exceeding it is a fatal planning error.
	MaxLivePointers = 15
	// DefaultPointerIDBase is the id allocator's default starting pid.
	DefaultPointerIDBase PointerID = 1000
)
