// SPDX-License-Identifier: Unlicense OR MIT

// Package chartfile loads a simplified JSON chart format into a chart.Chart
// backed by chart.PiecewiseLine values.
package chartfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kaedeflow/touchplan/chart"
)

type document struct {
	Lines []lineDoc `json:"lines"`
}

type lineDoc struct {
	BPM      []bpmDoc  `json:"bpm"`
	Position []posDoc  `json:"position"`
	Rotation []rotDoc  `json:"rotation"`
	Notes    []noteDoc `json:"notes"`
}

type bpmDoc struct {
	Beat float64 `json:"beat"`
	BPM  float64 `json:"bpm"`
}

type posDoc struct {
	Beat float64 `json:"beat"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type rotDoc struct {
	Beat    float64 `json:"beat"`
	Degrees float64 `json:"degrees"`
}

type noteDoc struct {
	Type string  `json:"type"`
	Time float64 `json:"time"`
	X    float64 `json:"x"`
	Hold float64 `json:"hold"`
}

// Load reads and parses a chart file from path.
func Load(path string) (*chart.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chartfile: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a chart document from r.
func Decode(r io.Reader) (*chart.Chart, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("chartfile: decode: %w", err)
	}
	c := &chart.Chart{Lines: make([]chart.JudgmentLine, 0, len(doc.Lines))}
	for i, ld := range doc.Lines {
		line, err := toLine(ld)
		if err != nil {
			return nil, fmt.Errorf("chartfile: line %d: %w", i, err)
		}
		c.Lines = append(c.Lines, line)
	}
	return c, nil
}

func toLine(ld lineDoc) (*chart.PiecewiseLine, error) {
	bpm := make([]chart.BPMPoint, len(ld.BPM))
	for i, b := range ld.BPM {
		if b.BPM <= 0 {
			return nil, fmt.Errorf("bpm[%d]: must be positive, got %v", i, b.BPM)
		}
		bpm[i] = chart.BPMPoint{Beat: b.Beat, BPM: b.BPM}
	}
	pos := make([]chart.PosKeyframe, len(ld.Position))
	for i, p := range ld.Position {
		pos[i] = chart.PosKeyframe{Beat: p.Beat, X: p.X, Y: p.Y}
	}
	rot := make([]chart.RotKeyframe, len(ld.Rotation))
	for i, r := range ld.Rotation {
		rot[i] = chart.RotKeyframe{Beat: r.Beat, Degrees: r.Degrees}
	}
	notes := make([]chart.Note, len(ld.Notes))
	for i, n := range ld.Notes {
		nt, err := parseNoteType(n.Type)
		if err != nil {
			return nil, fmt.Errorf("notes[%d]: %w", i, err)
		}
		notes[i] = chart.Note{Type: nt, Time: n.Time, X: n.X, Hold: n.Hold}
	}
	return &chart.PiecewiseLine{BPM: bpm, Position: pos, Rotation: rot, NoteList: notes}, nil
}

func parseNoteType(s string) (chart.NoteType, error) {
	switch s {
	case "tap":
		return chart.TAP, nil
	case "drag":
		return chart.DRAG, nil
	case "flick":
		return chart.FLICK, nil
	case "hold":
		return chart.HOLD, nil
	default:
		return 0, fmt.Errorf("unknown note type %q", s)
	}
}
