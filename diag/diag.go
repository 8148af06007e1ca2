// SPDX-License-Identifier: Unlicense OR MIT

// Package diag is the caller-injected diagnostic channel: warnings flow
// through it without stopping planning, fatal errors still return as plain
// errors from the packages that detect them.
package diag

import (
	"fmt"
	"log/slog"

	"github.com/kaedeflow/touchplan/geom"
)

// Kind identifies a recoverable condition worth surfacing to an operator.
type Kind uint8

const (
	// OffScreenFlick: a FLICK's judge point was off-screen and the rescue
	// window of ±5 chart-time units did (or did not) bring it back on screen.
	OffScreenFlick Kind = iota
	// DegenerateHold: a HOLD's duration rounded to zero or negative
	// milliseconds.
	DegenerateHold
)

func (k Kind) String() string {
	switch k {
	case OffScreenFlick:
		return "off_screen_flick"
	case DegenerateHold:
		return "degenerate_hold"
	default:
		return "unknown"
	}
}

// MarshalYAML renders Kind as its string name rather than its numeric value,
// so a dumped diagnostics report reads "off_screen_flick" instead of "0".
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Event is one diagnostic occurrence. Original and Adjusted are populated
// for OffScreenFlick; both are the zero Point otherwise.
type Event struct {
	Kind     Kind       `yaml:"kind"`
	MS       int        `yaml:"ms"`
	Message  string     `yaml:"message"`
	Original geom.Point `yaml:"original,omitempty"`
	Adjusted geom.Point `yaml:"adjusted,omitempty"`
	Rescued  bool       `yaml:"rescued"`
}

// Sink receives diagnostic events as planning runs. Implementations must not
// block the caller for long: planning is synchronous and single-threaded.
type Sink interface {
	Warn(Event)
}

// Nop discards every event. Useful in tests that don't care about
// diagnostics.
type Nop struct{}

func (Nop) Warn(Event) {}

// Collector appends every event it receives, for tests that assert on
// diagnostic output.
type Collector struct {
	Events []Event
}

func (c *Collector) Warn(e Event) {
	c.Events = append(c.Events, e)
}

// Multi fans a Warn call out to every Sink in the slice, in order.
type Multi []Sink

func (m Multi) Warn(e Event) {
	for _, s := range m {
		s.Warn(e)
	}
}

// Slog logs each event through a *slog.Logger at Warn level.
type Slog struct {
	Logger *slog.Logger
}

func (s Slog) Warn(e Event) {
	s.Logger.Warn(e.Message,
		slog.String("kind", e.Kind.String()),
		slog.Int("ms", e.MS),
		slog.Float64("original_x", e.Original.X),
		slog.Float64("original_y", e.Original.Y),
		slog.Float64("adjusted_x", e.Adjusted.X),
		slog.Float64("adjusted_y", e.Adjusted.Y),
		slog.Bool("rescued", e.Rescued),
	)
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%dms: %s", e.Kind, e.MS, e.Message)
}
