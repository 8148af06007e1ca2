// SPDX-License-Identifier: Unlicense OR MIT

// Package plan wires the Frame Synthesizer to the Pointer Planner, turning a
// chart into a bounded touch stream in one call.
package plan

import (
	"fmt"

	"github.com/kaedeflow/touchplan/chart"
	"github.com/kaedeflow/touchplan/diag"
	"github.com/kaedeflow/touchplan/frame"
	"github.com/kaedeflow/touchplan/geom"
	"github.com/kaedeflow/touchplan/touch"
)

// Config tunes the engine: the screen bounds notes are projected into, and
// the pointer id range the device-injection layer reserves for it.
type Config struct {
	Bounds        geom.Bounds
	PointerIDBase touch.PointerID
	PointerIDStep touch.PointerID
}

// DefaultConfig matches the constants baked into the frame and touch
// packages.
func DefaultConfig() Config {
	return Config{
		Bounds:        geom.DefaultBounds,
		PointerIDBase: touch.DefaultPointerIDBase,
		PointerIDStep: 1,
	}
}

// Result is a fully planned touch stream, keyed by millisecond.
type Result struct {
	Events map[int][]touch.Event
}

// Engine combines a Synthesizer and a Planner behind a single entry point.
type Engine struct {
	cfg         Config
	diagnostics diag.Sink
}

// New returns an Engine configured by cfg. A nil sink discards diagnostics.
func New(cfg Config, sink diag.Sink) *Engine {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Engine{cfg: cfg, diagnostics: sink}
}

// Plan synthesizes c's notes into a FrameEvent stream and plans that stream
// into touch events. Either stage's fatal errors abort with no partial
// Result; recoverable conditions (off-screen flicks, degenerate holds) are
// reported through the Engine's diag.Sink rather than returned here.
func (e *Engine) Plan(c *chart.Chart) (*Result, error) {
	synth := frame.NewSynthesizer(e.cfg.Bounds, e.diagnostics)
	frames, err := synth.Synthesize(c)
	if err != nil {
		return nil, fmt.Errorf("plan: synthesizing frames: %w", err)
	}

	planner := touch.NewPlannerWithBase(e.cfg.PointerIDBase, e.cfg.PointerIDStep)
	events, err := planner.Plan(frames)
	if err != nil {
		return nil, fmt.Errorf("plan: planning pointers: %w", err)
	}
	return &Result{Events: events}, nil
}
