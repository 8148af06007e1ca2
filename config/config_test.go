// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(\"\") = %+v, want Default()", cfg)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want Default()", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	contents := "screen:\n  width: 720\n  height: 1280\npointer:\n  id_base: 2000\n  id_step: 2\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 720 || cfg.Screen.Height != 1280 {
		t.Fatalf("screen = %+v, want 720x1280", cfg.Screen)
	}
	if cfg.Pointer.IDBase != 2000 || cfg.Pointer.IDStep != 2 {
		t.Fatalf("pointer = %+v, want base=2000 step=2", cfg.Pointer)
	}

	pc := cfg.PlanConfig()
	if pc.Bounds.Width != 720 || pc.Bounds.Height != 1280 {
		t.Fatalf("PlanConfig bounds = %+v", pc.Bounds)
	}
	if pc.PointerIDBase != 2000 || pc.PointerIDStep != 2 {
		t.Fatalf("PlanConfig pointer ids = base %d step %d", pc.PointerIDBase, pc.PointerIDStep)
	}
}
