package main

import "github.com/hajimehoshi/ebiten/v2"

// The keyboard plays three grid rows at a time: the Z row is the lowest,
// the home row sits on the reference row, and the Q row is above it. The
// shift offset moves the whole window up or down one grid row per step.
const (
	minShift = -3
	maxShift = 3
)

var (
	shiftUpKey   = ebiten.KeyArrowUp
	shiftDownKey = ebiten.KeyArrowDown
)

type keyBinding struct {
	key   ebiten.Key
	label string
	base  int
}

// keyboardLayout assigns each playable key its base cell index at shift 0.
// Lower rows of keycaps map to lower cell indices.
var keyboardLayout = []keyBinding{
	{ebiten.KeyZ, "Z", 14}, {ebiten.KeyX, "X", 15}, {ebiten.KeyC, "C", 16},
	{ebiten.KeyV, "V", 17}, {ebiten.KeyB, "B", 18}, {ebiten.KeyN, "N", 19},
	{ebiten.KeyM, "M", 20},

	{ebiten.KeyA, "A", 21}, {ebiten.KeyS, "S", 22}, {ebiten.KeyD, "D", 23},
	{ebiten.KeyF, "F", 24}, {ebiten.KeyG, "G", 25}, {ebiten.KeyH, "H", 26},
	{ebiten.KeyJ, "J", 27},

	{ebiten.KeyQ, "Q", 28}, {ebiten.KeyW, "W", 29}, {ebiten.KeyE, "E", 30},
	{ebiten.KeyR, "R", 31}, {ebiten.KeyT, "T", 32}, {ebiten.KeyY, "Y", 33},
	{ebiten.KeyU, "U", 34},
}

var keyBaseIndex = func() map[ebiten.Key]int {
	m := make(map[ebiten.Key]int, len(keyboardLayout))
	for _, b := range keyboardLayout {
		m[b.key] = b.base
	}
	return m
}()

// cellForKey maps a physical key to the cell it plays under the given shift
// offset. The effective index is clamped to the grid; ok is false for keys
// outside the playable table.
func cellForKey(key ebiten.Key, shift int) (int, bool) {
	base, ok := keyBaseIndex[key]
	if !ok {
		return 0, false
	}
	index := base + shift*gridSize
	if index < 0 {
		index = 0
	} else if index > gridCells-1 {
		index = gridCells - 1
	}
	return index, true
}

// keycapForCells maps each cell reachable under the given shift offset to
// the key character that plays it. Where clamping folds several keys onto
// one edge cell, the first binding in layout order wins.
func keycapForCells(shift int) map[int]string {
	m := make(map[int]string, len(keyboardLayout))
	for _, b := range keyboardLayout {
		index, ok := cellForKey(b.key, shift)
		if !ok {
			continue
		}
		if _, taken := m[index]; !taken {
			m[index] = b.label
		}
	}
	return m
}

func clampShift(n int) int {
	if n < minShift {
		return minShift
	}
	if n > maxShift {
		return maxShift
	}
	return n
}
