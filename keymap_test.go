package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCellForKeyBase(t *testing.T) {
	cases := []struct {
		key   ebiten.Key
		shift int
		want  int
	}{
		{ebiten.KeyZ, 0, 14},
		{ebiten.KeyM, 0, 20},
		{ebiten.KeyA, 0, 21},
		{ebiten.KeyJ, 0, 27},
		{ebiten.KeyQ, 0, 28},
		{ebiten.KeyU, 0, 34},
		{ebiten.KeyZ, 1, 21},
		{ebiten.KeyA, -1, 14},
		{ebiten.KeyU, 2, 48},
	}
	for _, c := range cases {
		got, ok := cellForKey(c.key, c.shift)
		if !ok {
			t.Fatalf("cellForKey(%v, %d) unmapped", c.key, c.shift)
		}
		if got != c.want {
			t.Fatalf("cellForKey(%v, %d) = %d, want %d", c.key, c.shift, got, c.want)
		}
	}
}

func TestCellForKeyClampsToGrid(t *testing.T) {
	if got, ok := cellForKey(ebiten.KeyU, 3); !ok || got != gridCells-1 {
		t.Fatalf("KeyU at +3 = %d,%v; want %d", got, ok, gridCells-1)
	}
	if got, ok := cellForKey(ebiten.KeyZ, -3); !ok || got != 0 {
		t.Fatalf("KeyZ at -3 = %d,%v; want 0", got, ok)
	}
}

func TestCellForKeyUnmapped(t *testing.T) {
	for _, k := range []ebiten.Key{ebiten.KeyP, ebiten.KeySpace, ebiten.Key1, ebiten.KeyEnter} {
		if _, ok := cellForKey(k, 0); ok {
			t.Fatalf("key %v should be unmapped", k)
		}
	}
}

func TestClampShift(t *testing.T) {
	if got := clampShift(5); got != maxShift {
		t.Fatalf("clampShift(5) = %d, want %d", got, maxShift)
	}
	if got := clampShift(-9); got != minShift {
		t.Fatalf("clampShift(-9) = %d, want %d", got, minShift)
	}
	if got := clampShift(2); got != 2 {
		t.Fatalf("clampShift(2) = %d, want 2", got)
	}
}

func TestKeycapForCells(t *testing.T) {
	caps := keycapForCells(0)
	if caps[14] != "Z" || caps[21] != "A" || caps[34] != "U" {
		t.Fatalf("unexpected keycaps at shift 0: %v", caps)
	}
	if len(caps) != len(keyboardLayout) {
		t.Fatalf("got %d keycaps, want %d", len(caps), len(keyboardLayout))
	}

	// At +3 the whole top row clamps onto the top-right cell; exactly one
	// keycap may claim it.
	caps = keycapForCells(3)
	if _, ok := caps[gridCells-1]; !ok {
		t.Fatalf("no keycap on top-right cell at +3: %v", caps)
	}
	if len(caps) >= len(keyboardLayout) {
		t.Fatalf("clamped layout should fold keys together, got %d entries", len(caps))
	}
}
