// SPDX-License-Identifier: Unlicense OR MIT

package chartfile

import (
	"strings"
	"testing"

	"github.com/kaedeflow/touchplan/chart"
)

const sample = `{
  "lines": [
    {
      "bpm": [{"beat": 0, "bpm": 120}],
      "position": [{"beat": 0, "x": 540, "y": 1000}],
      "rotation": [{"beat": 0, "degrees": 0}],
      "notes": [
        {"type": "tap", "time": 2, "x": 0},
        {"type": "hold", "time": 4, "x": -1, "hold": 4}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(c.Lines))
	}
	notes := c.Lines[0].Notes()
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	if notes[0].Type != chart.TAP {
		t.Errorf("notes[0].Type = %v, want TAP", notes[0].Type)
	}
	if notes[1].Type != chart.HOLD || notes[1].Hold != 4 {
		t.Errorf("notes[1] = %+v, want HOLD with hold=4", notes[1])
	}
}

func TestDecodeRejectsUnknownNoteType(t *testing.T) {
	bad := strings.Replace(sample, `"tap"`, `"spin"`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for unknown note type")
	}
}

func TestDecodeRejectsNonPositiveBPM(t *testing.T) {
	bad := strings.Replace(sample, `"bpm": 120`, `"bpm": 0`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for non-positive bpm")
	}
}
