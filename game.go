package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/browser"
	"github.com/sqweek/dialog"
	dark "github.com/thiagokokada/dark-mode-go"
	clipboard "golang.design/x/clipboard"
)

const helpURL = "https://en.wikipedia.org/wiki/Harmonic_series_(music)"

type Game struct {
	reg   *voiceRegistry
	disp  *dispatcher
	piano *pianoBackend

	w, h int

	touchActive bool
	touchID     ebiten.TouchID
}

func newGame() *Game {
	g := &Game{
		reg:   newVoiceRegistry(),
		piano: newPianoBackend(audioContext),
		w:     gs.WindowWidth,
		h:     gs.WindowHeight,
	}
	g.reg.setBackend(sourceSine, newSineBackend(audioContext))
	g.reg.setBackend(sourcePiano, g.piano)
	g.disp = newDispatcher(g.reg, func() sourceKind {
		return sourceKindFromString(gs.Source)
	})
	return g
}

func (g *Game) Update() error {
	geom := computeGeom(g.w, g.h)

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		switch k {
		case ebiten.KeyF1:
			if err := browser.OpenURL(helpURL); err != nil {
				logError("open help page: %v", err)
			}
		case ebiten.KeyF2:
			gs.Mute = !gs.Mute
		case ebiten.KeyF11:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		case ebiten.KeyEscape:
			g.disp.reset()
		case ebiten.KeyMinus:
			gs.MasterVolume = clampVolume(gs.MasterVolume - 0.1)
		case ebiten.KeyEqual:
			gs.MasterVolume = clampVolume(gs.MasterVolume + 0.1)
		default:
			g.disp.keyDown(k)
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		g.disp.keyUp(k)
	}

	mx, my := ebiten.CursorPosition()
	col, row, inside := geom.cellAt(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if clicked := g.sourceButtonAt(mx, my); clicked != nil {
			g.selectSource(clicked.kind)
		} else if inside {
			g.disp.pointerDown(col, row)
		}
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.disp.pointerMove(col, row, inside)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.disp.pointerUp()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && inside {
		freq := frequencyForIndex(cellIndex(col, row))
		clipboard.Write(clipboard.FmtText, []byte(formatFrequency(freq)))
	}

	g.updateTouch(geom)

	return nil
}

// updateTouch drives the shared pointer state machine from the first
// active touch point.
func (g *Game) updateTouch(geom gridGeom) {
	if !g.touchActive {
		for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
			tx, ty := ebiten.TouchPosition(id)
			col, row, inside := geom.cellAt(tx, ty)
			if !inside {
				continue
			}
			g.touchActive = true
			g.touchID = id
			g.disp.pointerDown(col, row)
			break
		}
		return
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		g.touchActive = false
		g.disp.pointerUp()
		return
	}
	tx, ty := ebiten.TouchPosition(g.touchID)
	col, row, inside := geom.cellAt(tx, ty)
	g.disp.pointerMove(col, row, inside)
}

func (g *Game) sourceButtonAt(x, y int) *sourceButton {
	for _, b := range sourceButtons(g.w) {
		if b.hit(x, y) {
			return &b
		}
	}
	return nil
}

// selectSource switches the tone source. Choosing piano without a usable
// SoundFont offers a file picker once; a missing font is not fatal, the
// registry falls back to sine per trigger.
func (g *Game) selectSource(kind sourceKind) {
	gs.Source = kind.String()
	if kind != sourcePiano {
		return
	}
	if err := g.piano.ensureLoaded(); err == nil {
		return
	}
	if !pickSoundFont() {
		logWarn("no SoundFont selected, piano triggers will fall back to sine")
		return
	}
	g.piano.reload()
	if err := g.piano.ensureLoaded(); err != nil {
		logWarn("piano source unavailable: %v", err)
	}
}

func pickSoundFont() bool {
	filename, err := dialog.File().Filter("SoundFont files", "sf2").Load()
	if err != nil {
		if err != dialog.Cancelled {
			logError("soundfont dialog: %v", err)
		}
		return false
	}
	gs.SoundFontPath = filename
	saveSettings()
	return true
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScreen(screen, g)
}

// Layout keeps logical coordinates identical to the on-screen size so the
// pointer-to-cell mapping holds under any window scaling.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func applyTheme() {
	th := gs.Theme
	if th == "" {
		darkMode, err := dark.IsDarkMode()
		if err == nil && !darkMode {
			th = "light"
		} else {
			th = "dark"
		}
	}
	if th == "light" {
		theme = &lightPalette
	} else {
		theme = &darkPalette
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
