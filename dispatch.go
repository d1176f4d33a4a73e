package main

import "github.com/hajimehoshi/ebiten/v2"

// pressedKey remembers what a held key actually triggered. Releases target
// the press-time frequency, so shifting the keyboard while a key is held
// can never strand its voice.
type pressedKey struct {
	index    int
	freq     float64
	sounding bool
}

// dispatcher owns all input-driven state: the voice registry, the keyboard
// shift offset, the held-key table and the pointer drag state. Pointer and
// touch input share one monophonic voice; keyboard input is polyphonic.
type dispatcher struct {
	reg    *voiceRegistry
	source func() sourceKind

	shift   int
	pressed map[ebiten.Key]pressedKey

	dragging         bool
	dragCol, dragRow int
	dragFreq         float64

	// lastIndex/lastFreq feed the status bar; -1 means nothing played yet.
	lastIndex int
	lastFreq  float64
}

func newDispatcher(reg *voiceRegistry, source func() sourceKind) *dispatcher {
	return &dispatcher{
		reg:       reg,
		source:    source,
		pressed:   make(map[ebiten.Key]pressedKey),
		lastIndex: -1,
	}
}

// triggerIndex starts a voice for a cell and reports the frequency and
// whether a voice was actually started. Frequencies outside the playable
// range are skipped with a diagnostic.
func (d *dispatcher) triggerIndex(index int) (float64, bool) {
	freq := frequencyForIndex(index)
	if !playable(freq) {
		logDebug("cell %d maps to unplayable %.2f Hz, skipping", index, freq)
		return freq, false
	}
	d.reg.trigger(freq, d.source())
	d.lastIndex = index
	d.lastFreq = freq
	return freq, true
}

// pointerDown begins a drag on the given cell.
func (d *dispatcher) pointerDown(col, row int) {
	if d.dragging {
		d.pointerUp()
	}
	freq, ok := d.triggerIndex(cellIndex(col, row))
	if !ok {
		return
	}
	d.dragging = true
	d.dragCol, d.dragRow = col, row
	d.dragFreq = freq
}

// pointerMove tracks the pointer while a drag is active. Moving onto a new
// cell releases the previous cell's voice before triggering the new one;
// leaving the grid ends the drag.
func (d *dispatcher) pointerMove(col, row int, inside bool) {
	if !d.dragging {
		return
	}
	if !inside {
		d.pointerUp()
		return
	}
	if col == d.dragCol && row == d.dragRow {
		return
	}
	d.reg.release(d.dragFreq)
	freq, ok := d.triggerIndex(cellIndex(col, row))
	if !ok {
		d.dragging = false
		return
	}
	d.dragCol, d.dragRow = col, row
	d.dragFreq = freq
}

// pointerUp ends the drag and releases its voice.
func (d *dispatcher) pointerUp() {
	if !d.dragging {
		return
	}
	d.reg.release(d.dragFreq)
	d.dragging = false
}

// keyDown handles a just-pressed key: shift keys move the keyboard window,
// mapped keys trigger their cell, anything else is ignored. A key already
// held is a repeat and does nothing.
func (d *dispatcher) keyDown(key ebiten.Key) {
	switch key {
	case shiftUpKey:
		d.shift = clampShift(d.shift + 1)
		return
	case shiftDownKey:
		d.shift = clampShift(d.shift - 1)
		return
	}
	if _, held := d.pressed[key]; held {
		return
	}
	index, ok := cellForKey(key, d.shift)
	if !ok {
		return
	}
	freq, sounding := d.triggerIndex(index)
	d.pressed[key] = pressedKey{index: index, freq: freq, sounding: sounding}
}

// keyUp releases the voice the key triggered when it was pressed.
func (d *dispatcher) keyUp(key ebiten.Key) {
	pk, held := d.pressed[key]
	if !held {
		return
	}
	delete(d.pressed, key)
	if pk.sounding {
		d.reg.release(pk.freq)
	}
}

// reset drops all input state and silences the registry.
func (d *dispatcher) reset() {
	d.dragging = false
	d.pressed = make(map[ebiten.Key]pressedKey)
	d.reg.stopAll()
}

// activeCells returns the set of cell indices that should be highlighted:
// the pointer drag cell plus every held key's press-time cell.
func (d *dispatcher) activeCells() map[int]bool {
	cells := make(map[int]bool, len(d.pressed)+1)
	if d.dragging {
		cells[cellIndex(d.dragCol, d.dragRow)] = true
	}
	for _, pk := range d.pressed {
		if pk.sounding {
			cells[pk.index] = true
		}
	}
	return cells
}
